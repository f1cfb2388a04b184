package impersonation

import (
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MachePOS/mache-supplier-portal-sub000/internal/ratelimit"
)

// Handler exposes the impersonation exchange, status, and termination
// endpoints.
type Handler struct {
	service Service
	limiter ratelimit.Store
	cookies *CookieCodec
}

// NewHandler creates the impersonation handler.
func NewHandler(service Service, limiter ratelimit.Store, cookies *CookieCodec) *Handler {
	return &Handler{service: service, limiter: limiter, cookies: cookies}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/impersonation", func(r chi.Router) {
		r.Post("/exchange", h.exchange)
		r.Get("/status", h.status)
		r.Delete("/", h.end)
	})
}

func (h *Handler) exchange(w http.ResponseWriter, r *http.Request) {
	if allowed, _, err := h.limiter.Allow(r.Context(), "impersonation:exchange:"+clientIP(r)); err == nil && !allowed {
		respond(w, http.StatusTooManyRequests, map[string]string{"error": "Too many attempts, try again later"})
		return
	}

	type request struct {
		SessionID string `json:"sessionId"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": ErrNoSessionID.Error()})
		return
	}

	payload, err := h.service.Exchange(r.Context(), req.SessionID)
	if err != nil {
		if !errors.Is(err, ErrNoSessionID) && !errors.Is(err, ErrInvalidSession) && !errors.Is(err, ErrSessionExpired) {
			err = ErrInvalidSession
		}
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	http.SetCookie(w, h.cookies.NewCookie(payload))
	respond(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"supplierName": payload.SupplierName,
	})
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	imp, ok := h.cookies.Decode(r)
	if !ok {
		respond(w, http.StatusOK, map[string]interface{}{"isImpersonating": false})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"isImpersonating": true,
		"supplierId":      imp.SupplierID,
		"supplierName":    imp.SupplierName,
		"adminName":       imp.AdminName,
	})
}

// end always succeeds: it clears the cookie and, when the cookie names a
// session, marks it ended server-side as well.
func (h *Handler) end(w http.ResponseWriter, r *http.Request) {
	if imp, ok := h.cookies.Decode(r); ok {
		if err := h.service.End(r.Context(), imp.SessionID); err != nil {
			log.Printf("impersonation: ending session %s: %v", imp.SessionID, err)
		}
	}
	http.SetCookie(w, h.cookies.ClearCookie())
	respond(w, http.StatusOK, map[string]bool{"success": true})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
