package fs

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alamana-org/charity-server/pkg/charity"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()

	backend, err := New(Config{BaseDir: t.TempDir(), URLPrefix: "/uploads"})
	require.NoError(t, err)
	return backend
}

func TestUploadDownloadDelete(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	err := backend.UploadWithParams(ctx, strings.NewReader("hello"), charity.UploadParams{
		ObjectKey: "projects-images/a.jpg",
		MimeType:  "image/jpeg",
	})
	require.NoError(t, err)

	body, err := backend.Download(ctx, "projects-images/a.jpg")
	require.NoError(t, err)
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	body.Close()
	assert.Equal(t, "hello", string(data))

	meta, err := backend.GetObjectMeta(ctx, "projects-images/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, int64(5), meta.Size)

	require.NoError(t, backend.Delete(ctx, "projects-images/a.jpg"))

	_, err = backend.Download(ctx, "projects-images/a.jpg")
	assert.Error(t, err)
}

func TestDownloadURLUsesPrefix(t *testing.T) {
	backend := newTestBackend(t)

	url, err := backend.GetDownloadURL(context.Background(), "carousel-images/b.png", "")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/carousel-images/b.png", url)
}

func TestRejectsTraversalKeys(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	err := backend.Upload(ctx, "../escape.txt", strings.NewReader("x"))
	assert.Error(t, err)

	_, err = backend.Download(ctx, "../../etc/passwd")
	assert.Error(t, err)
}

func TestRequiresBaseDir(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}
