package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/alamana-org/charity-server/pkg/charity"
)

// PagesHandler handles HTTP requests for static page content and documents
type PagesHandler struct {
	service charity.Service
	logger  *slog.Logger
}

// NewPagesHandler creates a new pages handler
func NewPagesHandler(service charity.Service, logger *slog.Logger) *PagesHandler {
	return &PagesHandler{service: service, logger: logger}
}

// PublicRoutes returns the read-only routes for page content
func (h *PagesHandler) PublicRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetPage)
	return r
}

// AdminRoutes returns the mutating routes for page content
func (h *PagesHandler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.SaveRichText)
	r.Post("/documents", h.AddPageDocument)
	r.Delete("/documents/{id}", h.DeletePageDocument)
	return r
}

// GetPage returns the content record for a page name. An unknown page name
// responds 200 with a null body so the site renders its defaults.
func (h *PagesHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	pageName := r.URL.Query().Get("pageName")

	page, err := h.service.GetPage(r.Context(), pageName)
	if err != nil {
		if errors.Is(err, charity.ErrPageContentNotFound) {
			render.JSON(w, r, nil)
			return
		}
		respondError(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, page)
}

// SavePageRequest is the request body for saving a page's rich text
type SavePageRequest struct {
	PageName string `json:"pageName"`
	Content  string `json:"content"`
}

// SaveRichText upserts the rich-text body for a page name
func (h *PagesHandler) SaveRichText(w http.ResponseWriter, r *http.Request) {
	var req SavePageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	page, err := h.service.SaveRichText(r.Context(), req.PageName, req.Content)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, page)
}

// AddPageDocument attaches an uploaded document to a page
func (h *PagesHandler) AddPageDocument(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(r); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	file, err := fileFromForm(r, "file")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	req := charity.AddPageDocumentRequest{
		PageName: r.FormValue("pageName"),
		Title:    r.FormValue("title"),
		File:     file,
	}

	doc, err := h.service.AddPageDocument(r.Context(), req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, doc)
}

// DeletePageDocument removes a document and its stored file
func (h *PagesHandler) DeletePageDocument(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if err := h.service.DeletePageDocument(r.Context(), id); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	render.NoContent(w, r)
}
