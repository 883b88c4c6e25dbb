package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alamana-org/charity-server/pkg/charity"
)

// UploadsHandler streams stored objects over HTTP. It backs the public base
// URL in deployments without a CDN or bucket website, and local development
// with the memory or filesystem backend.
type UploadsHandler struct {
	store  charity.BlobStore
	logger *slog.Logger
}

// NewUploadsHandler creates a new uploads handler
func NewUploadsHandler(store charity.BlobStore, logger *slog.Logger) *UploadsHandler {
	return &UploadsHandler{store: store, logger: logger}
}

// Routes returns the upload-serving routes
func (h *UploadsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/*", h.ServeObject)
	return r
}

// ServeObject streams one object, with its stored content type when known
func (h *UploadsHandler) ServeObject(w http.ResponseWriter, r *http.Request) {
	objectKey := chi.URLParam(r, "*")
	if objectKey == "" {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	if meta, err := h.store.GetObjectMeta(r.Context(), objectKey); err == nil && meta.ContentType != "" {
		w.Header().Set("Content-Type", meta.ContentType)
	}

	body, err := h.store.Download(r.Context(), objectKey)
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	defer body.Close()

	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn("failed to stream object", "key", objectKey, "error", err)
	}
}
