package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alamana-org/charity-server/pkg/charity"
	"github.com/alamana-org/charity-server/pkg/charity/api"
	"github.com/alamana-org/charity-server/pkg/charity/auth"
	"github.com/alamana-org/charity-server/pkg/charity/repo/memory"
	memorystorage "github.com/alamana-org/charity-server/pkg/charity/storage/memory"
	"github.com/alamana-org/charity-server/pkg/charity/urlstrategy"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()

	repo := memory.New()
	store := memorystorage.New()

	svc, err := charity.New(
		charity.WithRepository(repo),
		charity.WithBlobStore(store),
		charity.WithURLStrategy(urlstrategy.NewPublicBaseStrategy("/uploads")),
	)
	require.NoError(t, err)

	authService, err := auth.New(repo, "test-secret",
		auth.WithBootstrapAdmin("admin@example.org", "admin-pw"))
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Service:   svc,
		Auth:      authService,
		BlobStore: store,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func adminToken(t *testing.T, server *httptest.Server) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"email":    "admin@example.org",
		"password": "admin-pw",
	})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	require.NotEmpty(t, login.Token)
	return login.Token
}

func doAuthed(t *testing.T, method, url, token string, contentType string, body io.Reader) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func productForm(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if withImage {
		part, err := w.CreateFormFile("image", "photo.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestHealth(t *testing.T) {
	server := setupServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	server := setupServer(t)

	body, contentType := productForm(t, map[string]string{"name": "x"}, true)
	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/admin/products", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestNonAdminTokenForbidden(t *testing.T) {
	server := setupServer(t)

	// Register a regular account and log in with it.
	body, _ := json.Marshal(map[string]string{
		"name": "User", "email": "user@example.org", "password": "pw",
	})
	resp, err := http.Post(server.URL+"/api/auth/register", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	loginBody, _ := json.Marshal(map[string]string{
		"email": "user@example.org", "password": "pw",
	})
	resp, err = http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(loginBody))
	require.NoError(t, err)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	resp.Body.Close()

	form, contentType := productForm(t, map[string]string{"name": "x"}, true)
	resp = doAuthed(t, http.MethodPost, server.URL+"/api/admin/products", login.Token, contentType, form)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProductLifecycleOverHTTP(t *testing.T) {
	server := setupServer(t)
	token := adminToken(t, server)

	// Create two products.
	var created []charity.Product
	for _, name := range []string{"wells", "orphans"} {
		form, contentType := productForm(t, map[string]string{
			"name":        name,
			"description": "about " + name,
			"category":    "education",
		}, true)
		resp := doAuthed(t, http.MethodPost, server.URL+"/api/admin/products", token, contentType, form)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var p charity.Product
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
		resp.Body.Close()
		created = append(created, p)
	}
	assert.Equal(t, 0, created[0].Rang)
	assert.Equal(t, 1, created[1].Rang)

	// Public listing, ordered by rang.
	resp, err := http.Get(server.URL + "/api/products")
	require.NoError(t, err)
	var listed []charity.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	resp.Body.Close()
	require.Len(t, listed, 2)
	assert.Equal(t, created[0].ID, listed[0].ID)

	// Move the second one up.
	moveBody, _ := json.Marshal(map[string]string{"direction": "up"})
	resp = doAuthed(t, http.MethodPost,
		server.URL+"/api/admin/products/"+created[1].ID.String()+"/move",
		token, "application/json", bytes.NewReader(moveBody))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var move api.MoveResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&move))
	resp.Body.Close()
	assert.True(t, move.Moved)
	assert.Equal(t, 0, move.Current.Rang)

	// Moving up again is a boundary no-op.
	moveBody, _ = json.Marshal(map[string]string{"direction": "up"})
	resp = doAuthed(t, http.MethodPost,
		server.URL+"/api/admin/products/"+created[1].ID.String()+"/move",
		token, "application/json", bytes.NewReader(moveBody))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&move))
	resp.Body.Close()
	assert.False(t, move.Moved)

	// Self-swap via explicit target is a 400.
	swapBody, _ := json.Marshal(map[string]string{"targetId": created[1].ID.String()})
	resp = doAuthed(t, http.MethodPost,
		server.URL+"/api/admin/products/"+created[1].ID.String()+"/move",
		token, "application/json", bytes.NewReader(swapBody))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Update keeps omitted fields.
	form, contentType := productForm(t, map[string]string{"name": "deep wells"}, false)
	resp = doAuthed(t, http.MethodPut,
		server.URL+"/api/admin/products/"+created[0].ID.String(),
		token, contentType, form)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated charity.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	resp.Body.Close()
	assert.Equal(t, "deep wells", updated.Name)
	assert.Equal(t, created[0].ImageURL, updated.ImageURL)

	// Delete, then 404 on fetch.
	resp = doAuthed(t, http.MethodDelete,
		server.URL+"/api/admin/products/"+created[0].ID.String(), token, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(server.URL + "/api/products/" + created[0].ID.String())
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestPageContentOverHTTP(t *testing.T) {
	server := setupServer(t)
	token := adminToken(t, server)

	// Unknown page responds 200 with a null body.
	resp, err := http.Get(server.URL + "/api/page-content?pageName=about")
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "null", string(bytes.TrimSpace(raw)))

	saveBody, _ := json.Marshal(map[string]string{
		"pageName": "about",
		"content":  "<p>who we are</p>",
	})
	resp = doAuthed(t, http.MethodPost, server.URL+"/api/admin/page-content",
		token, "application/json", bytes.NewReader(saveBody))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(server.URL + "/api/page-content?pageName=about")
	require.NoError(t, err)
	var page charity.PageContent
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	resp.Body.Close()
	assert.Equal(t, "<p>who we are</p>", page.Content)
}

func TestContactFormOverHTTP(t *testing.T) {
	server := setupServer(t)
	token := adminToken(t, server)

	body, _ := json.Marshal(map[string]string{
		"name":    "Amina",
		"email":   "amina@example.org",
		"message": "How can I donate?",
	})
	resp, err := http.Post(server.URL+"/api/contact", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Missing fields rejected.
	bad, _ := json.Marshal(map[string]string{"name": "x"})
	resp, err = http.Post(server.URL+"/api/contact", "application/json", bytes.NewReader(bad))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// The inbox is admin-only.
	resp, err = http.Get(server.URL + "/api/admin/contact")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doAuthed(t, http.MethodGet, server.URL+"/api/admin/contact", token, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var msgs []charity.ContactMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&msgs))
	resp.Body.Close()
	assert.Len(t, msgs, 1)
}

func TestUploadsServeStoredObjects(t *testing.T) {
	server := setupServer(t)
	token := adminToken(t, server)

	form, contentType := productForm(t, map[string]string{
		"name":        "wells",
		"description": "d",
		"category":    "education",
	}, true)
	resp := doAuthed(t, http.MethodPost, server.URL+"/api/admin/products", token, contentType, form)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p charity.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	resp.Body.Close()

	// ImageURL is /uploads/<key>; the uploads mount serves it back.
	resp, err := http.Get(server.URL + p.ImageURL)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "fake image bytes", string(raw))
}
