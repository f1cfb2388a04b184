package deal

import (
	"encoding/json"
	"net/http"

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
	router.Route("/api/v1/deals", func(r chi.Router) {
		r.Get("/", h.listDeals)
		r.Post("/", h.createDeal)
		r.Get("/active", h.listActive)
		r.Get("/{id}", h.getDeal)
		r.Post("/{id}/activate", h.activateDeal)
		r.Post("/{id}/cancel", h.cancelDeal)
	})
}

func (h *Handler) listDeals(w http.ResponseWriter, r *http.Request) {
	supplierID, err := h.resolver(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	deals, err := h.service.ListDeals(r.Context(), supplierID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, deals)
}

func (h *Handler) listActive(w http.ResponseWriter, r *http.Request) {
	supplierID, err := h.resolver(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	deals, err := h.service.ListActiveDeals(r.Context(), supplierID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, deals)
}

func (h *Handler) createDeal(w http.ResponseWriter, r *http.Request) {
	supplierID, err := h.resolver(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	var req CreateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d, err := h.service.CreateDeal(r.Context(), supplierID, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respond(w, http.StatusCreated, d)
}

func (h *Handler) getDeal(w http.ResponseWriter, r *http.Request) {
	supplierID, err := h.resolver(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	d, err := h.service.GetDeal(r.Context(), supplierID, chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	respond(w, http.StatusOK, d)
}

func (h *Handler) activateDeal(w http.ResponseWriter, r *http.Request) {
	supplierID, err := h.resolver(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	d, err := h.service.ActivateDeal(r.Context(), supplierID, chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respond(w, http.StatusOK, d)
}

func (h *Handler) cancelDeal(w http.ResponseWriter, r *http.Request) {
	supplierID, err := h.resolver(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	if err := h.service.CancelDeal(r.Context(), supplierID, chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"success": true})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
