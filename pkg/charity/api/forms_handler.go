package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/alamana-org/charity-server/pkg/charity"
)

// FormsHandler handles the public contact and volunteer forms
type FormsHandler struct {
	service charity.Service
	logger  *slog.Logger
}

// NewFormsHandler creates a new forms handler
func NewFormsHandler(service charity.Service, logger *slog.Logger) *FormsHandler {
	return &FormsHandler{service: service, logger: logger}
}

// ContactRoutes returns the contact form routes; listing is admin-only
func (h *FormsHandler) ContactRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.SubmitContactMessage)
	return r
}

// VolunteerRoutes returns the volunteer form routes
func (h *FormsHandler) VolunteerRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.SubmitVolunteerApplication)
	return r
}

// AdminContactRoutes returns the admin inbox routes
func (h *FormsHandler) AdminContactRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListContactMessages)
	return r
}

// AdminVolunteerRoutes returns the admin volunteer-application routes
func (h *FormsHandler) AdminVolunteerRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListVolunteerApplications)
	return r
}

// SubmitContactMessage stores a contact-form submission
func (h *FormsHandler) SubmitContactMessage(w http.ResponseWriter, r *http.Request) {
	var req charity.CreateContactMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	msg, err := h.service.SubmitContactMessage(r.Context(), req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, msg)
}

// ListContactMessages lists contact submissions newest first
func (h *FormsHandler) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.service.ListContactMessages(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	if msgs == nil {
		msgs = []*charity.ContactMessage{}
	}

	render.JSON(w, r, msgs)
}

// SubmitVolunteerApplication stores a volunteer-form submission
func (h *FormsHandler) SubmitVolunteerApplication(w http.ResponseWriter, r *http.Request) {
	var req charity.CreateVolunteerApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	app, err := h.service.SubmitVolunteerApplication(r.Context(), req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, app)
}

// ListVolunteerApplications lists volunteer submissions newest first
func (h *FormsHandler) ListVolunteerApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.service.ListVolunteerApplications(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	if apps == nil {
		apps = []*charity.VolunteerApplication{}
	}

	render.JSON(w, r, apps)
}
