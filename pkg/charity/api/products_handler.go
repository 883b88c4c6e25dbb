package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/alamana-org/charity-server/pkg/charity"
)

// ProductsHandler handles HTTP requests for products
type ProductsHandler struct {
	service charity.Service
	logger  *slog.Logger
}

// NewProductsHandler creates a new products handler
func NewProductsHandler(service charity.Service, logger *slog.Logger) *ProductsHandler {
	return &ProductsHandler{service: service, logger: logger}
}

// PublicRoutes returns the read-only routes for products
func (h *ProductsHandler) PublicRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListProducts)
	r.Get("/{id}", h.GetProduct)
	return r
}

// AdminRoutes returns the mutating routes for products
func (h *ProductsHandler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateProduct)
	r.Put("/{id}", h.UpdateProduct)
	r.Delete("/{id}", h.DeleteProduct)
	r.Post("/{id}/move", h.MoveProduct)
	r.Put("/{id}/move", h.MoveProduct)
	return r
}

// ListProducts lists products in display order, optionally by category
func (h *ProductsHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	var filters charity.ProductFilters
	if category := r.URL.Query().Get("category"); category != "" {
		filters.Category = &category
	}

	products, err := h.service.ListProducts(r.Context(), filters)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	if products == nil {
		products = []*charity.Product{}
	}

	render.JSON(w, r, products)
}

// GetProduct returns a single product
func (h *ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, product)
}

// CreateProduct creates a product from a multipart form
func (h *ProductsHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
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

	req := charity.CreateProductRequest{
		Name:             r.FormValue("name"),
		Description:      r.FormValue("description"),
		ShortDescription: r.FormValue("shortDescription"),
		Category:         r.FormValue("category"),
		Image:            image,
		SecondaryImage:   secondaryImage,
	}

	product, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, product)
}

// UpdateProduct partially updates a product. Omitted text fields and files
// keep their stored values.
func (h *ProductsHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
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

	req := charity.UpdateProductRequest{
		ID:               id,
		Name:             formValue(r, "name"),
		Description:      formValue(r, "description"),
		ShortDescription: formValue(r, "shortDescription"),
		Category:         formValue(r, "category"),
		Image:            image,
		SecondaryImage:   secondaryImage,
	}

	product, err := h.service.UpdateProduct(r.Context(), req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, product)
}

// DeleteProduct deletes a product and its stored assets
func (h *ProductsHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	product, err := h.service.DeleteProduct(r.Context(), id)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, product)
}

// MoveRequest is the request body for reordering. Either Direction or
// TargetID selects the swap partner.
type MoveRequest struct {
	Direction string `json:"direction,omitempty"`
	TargetID  string `json:"targetId,omitempty"`
}

// MoveResponse is the response body for a move
type MoveResponse struct {
	Moved   bool                `json:"moved"`
	Current *charity.RankedItem `json:"current,omitempty"`
	Target  *charity.RankedItem `json:"target,omitempty"`
}

// MoveProduct swaps a product's display rank with a neighbor or an explicit
// target
func (h *ProductsHandler) MoveProduct(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.move(r, id, req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	render.JSON(w, r, MoveResponse{Moved: result.Moved, Current: result.Current, Target: result.Target})
}

func (h *ProductsHandler) move(r *http.Request, id uuid.UUID, req MoveRequest) (*charity.MoveResult, error) {
	if req.TargetID != "" {
		targetID, err := uuid.Parse(req.TargetID)
		if err != nil {
			return nil, errInvalidID
		}
		return h.service.SwapProducts(r.Context(), id, targetID)
	}

	direction := charity.MoveDirection(req.Direction)
	if direction != charity.MoveUp && direction != charity.MoveDown {
		return nil, errInvalidBody
	}
	return h.service.MoveProduct(r.Context(), id, direction)
}

func parseLimit(raw string) *int {
	if raw == "" {
		return nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return nil
	}
	return &limit
}
