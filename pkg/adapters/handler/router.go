package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/wadjakorntonsri/resource-directory/pkg/config"
	"github.com/wadjakorntonsri/resource-directory/pkg/ports"
)

// AdminURL is the base path of every admin route.
func AdminURL(cfg *config.Config) string {
	return "/admin/" + cfg.AdminPath
}

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, store ports.ResourceStore, log *zap.Logger) (http.Handler, error) {
	render, err := NewRenderer(log)
	if err != nil {
		return nil, err
	}

	// Initialize Handlers
	h := NewHTTPHandler(store, render, log, cfg.SiteTitle)
	admin := NewAdminHandler(store, render, log, cfg.SiteTitle, AdminURL(cfg))

	// Initialize Middleware
	mw := NewMiddleware(log)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(mw.RequestID)
	r.Use(mw.AccessLog)
	r.Use(chimw.Recoverer)

	// Public Routes
	r.Get("/", h.Index)
	r.Get("/healthz", h.Health)
	r.Get("/api/resources", h.List)

	// Admin Routes
	r.Mount(AdminURL(cfg), AdminRoutes(admin))

	return r, nil
}

// AdminRoutes mounts the admin handlers under whatever base path the caller
// chooses.
func AdminRoutes(h *AdminHandler) chi.Router {
	r := chi.NewRouter()

	// LIST + CREATE
	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)

	// EDIT
	r.Get("/edit/{id}", h.ServeEdit)
	r.Post("/edit/{id}", h.HandleEdit)

	// DELETE
	r.Post("/delete/{id}", h.HandleDelete)

	// ORDER
	r.Post("/update_order", h.HandleReorder)

	return r
}
