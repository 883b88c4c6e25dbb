package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/alamana-org/charity-server/pkg/charity"
)

// ContentPostsHandler handles HTTP requests for content posts
type ContentPostsHandler struct {
	service charity.Service
	logger  *slog.Logger
}

// NewContentPostsHandler creates a new content posts handler
func NewContentPostsHandler(service charity.Service, logger *slog.Logger) *ContentPostsHandler {
	return &ContentPostsHandler{service: service, logger: logger}
}

// PublicRoutes returns the read-only routes for content posts
func (h *ContentPostsHandler) PublicRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListContentPosts)
	r.Get("/{id}", h.GetContentPost)
	return r
}

// AdminRoutes returns the mutating routes for content posts
func (h *ContentPostsHandler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateContentPost)
	r.Put("/{id}", h.UpdateContentPost)
	r.Delete("/{id}", h.DeleteContentPost)
	r.Post("/{id}/move", h.MoveContentPost)
	r.Put("/{id}/move", h.MoveContentPost)
	return r
}

// ListContentPosts lists posts newest first, optionally limited
func (h *ContentPostsHandler) ListContentPosts(w http.ResponseWriter, r *http.Request) {
	filters := charity.ContentPostFilters{
		Limit: parseLimit(r.URL.Query().Get("limit")),
	}

	posts, err := h.service.ListContentPosts(r.Context(), filters)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	if posts == nil {
		posts = []*charity.ContentPost{}
	}

	render.JSON(w, r, posts)
}

// GetContentPost returns a single post
func (h *ContentPostsHandler) GetContentPost(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	post, err := h.service.GetContentPost(r.Context(), id)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, post)
}

// CreateContentPost creates a post from a multipart form
func (h *ContentPostsHandler) CreateContentPost(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(r); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	image, err := fileFromForm(r, "image")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	video, err := fileFromForm(r, "video")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	req := charity.CreateContentPostRequest{
		Title:            r.FormValue("title"),
		Category:         r.FormValue("category"),
		Description:      r.FormValue("description"),
		ShortDescription: r.FormValue("shortDescription"),
		Date:             r.FormValue("date"),
		Image:            image,
		Video:            video,
	}

	post, err := h.service.CreateContentPost(r.Context(), req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, post)
}

// UpdateContentPost partially updates a post
func (h *ContentPostsHandler) UpdateContentPost(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if err := parseMultipart(r); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	image, err := fileFromForm(r, "image")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	secondaryImage, err := fileFromForm(r, "secondaryImage")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	video, err := fileFromForm(r, "video")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	req := charity.UpdateContentPostRequest{
		ID:               id,
		Title:            formValue(r, "title"),
		Category:         formValue(r, "category"),
		Description:      formValue(r, "description"),
		ShortDescription: formValue(r, "shortDescription"),
		Date:             formValue(r, "date"),
		Image:            image,
		SecondaryImage:   secondaryImage,
		Video:            video,
	}

	post, err := h.service.UpdateContentPost(r.Context(), req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, post)
}

// DeleteContentPost deletes a post and its stored assets
func (h *ContentPostsHandler) DeleteContentPost(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	post, err := h.service.DeleteContentPost(r.Context(), id)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, post)
}

// MoveContentPost swaps a post's display rank with a neighbor or an explicit
// target
func (h *ContentPostsHandler) MoveContentPost(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	var req MoveRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	var result *charity.MoveResult
	if req.TargetID != "" {
		targetID, parseErr := uuid.Parse(req.TargetID)
		if parseErr != nil {
			respondError(w, r, h.logger, errInvalidID)
			return
		}
		result, err = h.service.SwapContentPosts(r.Context(), id, targetID)
	} else {
		direction := charity.MoveDirection(req.Direction)
		if direction != charity.MoveUp && direction != charity.MoveDown {
			respondError(w, r, h.logger, errInvalidBody)
			return
		}
		result, err = h.service.MoveContentPost(r.Context(), id, direction)
	}
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, MoveResponse{Moved: result.Moved, Current: result.Current, Target: result.Target})
}
