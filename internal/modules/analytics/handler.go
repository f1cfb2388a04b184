package analytics

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Resolver maps the current session to its owning supplier id.
type Resolver func(r *http.Request) (uuid.UUID, error)

type Handler struct {
	service  Service
	resolver Resolver
}

func NewHandler(service Service, resolver Resolver) *Handler {
	return &Handler{service: service, resolver: resolver}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/analytics", func(r chi.Router) {
		r.Get("/summary", h.summary)
		r.Get("/top-products", h.topProducts)
	})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	supplierID, err := h.resolver(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	to := time.Now()
	from := to.AddDate(0, -1, 0)
	if v := r.URL.Query().Get("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			from = t
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			to = t
		}
	}

	summary, err := h.service.Summary(r.Context(), supplierID, from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, summary)
}

func (h *Handler) topProducts(w http.ResponseWriter, r *http.Request) {
	supplierID, err := h.resolver(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	top, err := h.service.TopProducts(r.Context(), supplierID, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, top)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
