package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/resource-directory/pkg/core/domain"
	"github.com/wadjakorntonsri/resource-directory/pkg/ports"
)

// HTTPHandler serves the public pages and the read-only JSON API.
type HTTPHandler struct {
	store  ports.ResourceStore
	render *Renderer
	log    *zap.Logger
	title  string
}

func NewHTTPHandler(store ports.ResourceStore, render *Renderer, log *zap.Logger, title string) *HTTPHandler {
	return &HTTPHandler{store: store, render: render, log: log, title: title}
}

type indexPage struct {
	Title     string
	Query     string
	Resources []domain.Resource
}

// Index renders the public directory, filtered by ?q= when present.
func (h *HTTPHandler) Index(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	var resources []domain.Resource
	if query != "" {
		resources = h.store.Search(r.Context(), query)
	} else {
		resources = h.store.ListAll(r.Context())
	}

	h.render.Render(w, http.StatusOK, "index", indexPage{
		Title:     h.title,
		Query:     query,
		Resources: resources,
	})
}

// List returns every resource as JSON, in display order.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.ListAll(r.Context()))
}

func (h *HTTPHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
