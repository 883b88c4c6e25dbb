package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/alamana-org/charity-server/pkg/charity"
)

// CarouselHandler handles HTTP requests for the home-page carousel
type CarouselHandler struct {
	service charity.Service
	logger  *slog.Logger
}

// NewCarouselHandler creates a new carousel handler
func NewCarouselHandler(service charity.Service, logger *slog.Logger) *CarouselHandler {
	return &CarouselHandler{service: service, logger: logger}
}

// PublicRoutes returns the read-only routes for carousel images
func (h *CarouselHandler) PublicRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListCarouselImages)
	return r
}

// AdminRoutes returns the mutating routes for carousel images
func (h *CarouselHandler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.AddCarouselImage)
	r.Put("/{id}", h.SetCarouselImageOrder)
	r.Delete("/{id}", h.DeleteCarouselImage)
	return r
}

// ListCarouselImages lists slides in display order
func (h *CarouselHandler) ListCarouselImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.service.ListCarouselImages(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	if images == nil {
		images = []*charity.CarouselImage{}
	}

	render.JSON(w, r, images)
}

// AddCarouselImage uploads a new slide, appended at the end of the carousel
func (h *CarouselHandler) AddCarouselImage(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(r); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	image, err := fileFromForm(r, "image")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	slide, err := h.service.AddCarouselImage(r.Context(), image)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, slide)
}

// SetOrderRequest is the request body for repositioning a slide
type SetOrderRequest struct {
	Order int `json:"order"`
}

// SetCarouselImageOrder moves a slide to the requested position, swapping
// with whichever slide held it
func (h *CarouselHandler) SetCarouselImageOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	var req SetOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	slide, err := h.service.SetCarouselImageOrder(r.Context(), id, req.Order)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, slide)
}

// DeleteCarouselImage removes a slide and its stored image
func (h *CarouselHandler) DeleteCarouselImage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if err := h.service.DeleteCarouselImage(r.Context(), id); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	render.NoContent(w, r)
}
