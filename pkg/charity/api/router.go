package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"

	"github.com/alamana-org/charity-server/pkg/charity"
	"github.com/alamana-org/charity-server/pkg/charity/auth"
)

// RouterConfig carries the dependencies for assembling the HTTP surface
type RouterConfig struct {
	Service     charity.Service
	Auth        *auth.Service
	BlobStore   charity.BlobStore // optional; enables the /uploads routes
	Logger      *slog.Logger
	Environment string // "development" enables permissive CORS
}

// NewRouter assembles the public and admin API. Admin routes require a valid
// admin token; public routes are open.
func NewRouter(cfg RouterConfig) chi.Router {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	products := NewProductsHandler(cfg.Service, logger)
	posts := NewContentPostsHandler(cfg.Service, logger)
	carousel := NewCarouselHandler(cfg.Service, logger)
	pages := NewPagesHandler(cfg.Service, logger)
	forms := NewFormsHandler(cfg.Service, logger)
	authHandler := NewAuthHandler(cfg.Auth, logger)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS for development
	if cfg.Environment == "development" {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Access-Control-Allow-Origin", "*")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusOK)
					return
				}
				next.ServeHTTP(w, r)
			})
		})
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// Public surface
		r.Mount("/auth", authHandler.Routes())
		r.Mount("/products", products.PublicRoutes())
		r.Mount("/content-posts", posts.PublicRoutes())
		r.Mount("/carousel-images", carousel.PublicRoutes())
		r.Mount("/page-content", pages.PublicRoutes())
		r.Mount("/contact", forms.ContactRoutes())
		r.Mount("/volunteer-applications", forms.VolunteerRoutes())

		// Admin surface
		r.Route("/admin", func(r chi.Router) {
			r.Use(jwtauth.Verifier(cfg.Auth.TokenAuth()))
			r.Use(jwtauth.Authenticator)
			r.Use(auth.RequireAdmin)

			r.Mount("/products", products.AdminRoutes())
			r.Mount("/content-posts", posts.AdminRoutes())
			r.Mount("/carousel-images", carousel.AdminRoutes())
			r.Mount("/page-content", pages.AdminRoutes())
			r.Mount("/contact", forms.AdminContactRoutes())
			r.Mount("/volunteer-applications", forms.AdminVolunteerRoutes())
		})
	})

	if cfg.BlobStore != nil {
		uploads := NewUploadsHandler(cfg.BlobStore, logger)
		r.Mount("/uploads", uploads.Routes())
	}

	return r
}
