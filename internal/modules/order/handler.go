package order

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
	router.Route("/api/v1/orders", func(r chi.Router) {
		r.Get("/", h.listOrders)
		r.Post("/intake", h.intake)
		r.Get("/{id}", h.getOrder)
		r.Put("/{id}/status", h.updateStatus)
		r.Post("/{id}/cancel", h.cancelOrder)
	})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	supplierID, err := h.resolver(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	orders, err := h.service.ListOrders(r.Context(), supplierID, r.URL.Query().Get("status"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) intake(w http.ResponseWriter, r *http.Request) {
	var req IntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	o, err := h.service.Intake(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respond(w, http.StatusCreated, o)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	supplierID, err := h.resolver(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	o, err := h.service.GetOrder(r.Context(), supplierID, chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	supplierID, err := h.resolver(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	o, err := h.service.UpdateStatus(r.Context(), supplierID, chi.URLParam(r, "id"), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	supplierID, err := h.resolver(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	if err := h.service.CancelOrder(r.Context(), supplierID, chi.URLParam(r, "id")); err != nil {
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
