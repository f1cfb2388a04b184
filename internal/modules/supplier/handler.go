package supplier

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MachePOS/mache-supplier-portal-sub000/internal/identity"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/supplier", func(r chi.Router) {
		r.Post("/onboard", h.onboard)
		r.Get("/profile", h.getProfile)
		r.Put("/profile", h.updateProfile)
	})
}

func (h *Handler) onboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity.UserID(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	type request struct {
		Name         string `json:"name"`
		ContactEmail string `json:"contact_email"`
		Phone        string `json:"phone"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sup, err := h.service.Onboard(r.Context(), userID, req.Name, req.ContactEmail, req.Phone)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusCreated, sup)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	supplierID, err := h.service.ResolveSupplierID(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrNoSupplier) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	sup, err := h.service.GetSupplier(r.Context(), supplierID.String())
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	respond(w, http.StatusOK, sup)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	supplierID, err := h.service.ResolveSupplierID(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sup, err := h.service.UpdateProfile(r.Context(), supplierID.String(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, sup)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
