package impersonation

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MachePOS/mache-supplier-portal-sub000/internal/ratelimit"
)

var testCookieKey = []byte("test-cookie-secret")

func newTestHandler(t *testing.T, sessions ...*Session) (*chi.Mux, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo(sessions...)
	limiter := ratelimit.NewMemoryStore(100, time.Minute)
	t.Cleanup(limiter.Close)

	router := chi.NewRouter()
	codec := NewCookieCodec(testCookieKey, false)
	NewHandler(NewService(repo), limiter, codec).RegisterRoutes(router)
	return router, repo
}

func doExchange(router http.Handler, sessionID string) *httptest.ResponseRecorder {
	body := strings.NewReader(`{"sessionId":"` + sessionID + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/impersonation/exchange", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestExchangeEndpointSuccessSetsCookie(t *testing.T) {
	sess := openSession(4 * time.Minute)
	router, _ := newTestHandler(t, sess)

	rec := doExchange(router, sess.ID.String())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success      bool   `json:"success"`
		SupplierName string `json:"supplierName"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.SupplierName != "Acme Foods" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName {
		t.Fatalf("expected the impersonation cookie, got %v", cookies)
	}
	c := cookies[0]
	if !c.HttpOnly || c.SameSite != http.SameSiteLaxMode || c.MaxAge != 14400 || c.Path != "/" {
		t.Fatalf("cookie attributes wrong: %+v", c)
	}
}

func TestExchangeEndpointFailures(t *testing.T) {
	stale := openSession(6 * time.Minute)
	router, _ := newTestHandler(t, stale)

	tests := []struct {
		name      string
		sessionID string
		wantError string
	}{
		{"missing id", "", "No session ID provided"},
		{"unknown session", "7b2e1f2a-58b5-4f66-9c2e-3a2f6f3a9a11", "Invalid or expired session"},
		{"expired by age", stale.ID.String(), "Session has expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doExchange(router, tt.sessionID)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", rec.Code)
			}
			var resp struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Error != tt.wantError {
				t.Fatalf("error = %q, want %q", resp.Error, tt.wantError)
			}
			if len(rec.Result().Cookies()) != 0 {
				t.Fatal("no cookie must be set on failure")
			}
		})
	}
}

func TestStatusRoundTrip(t *testing.T) {
	sess := openSession(time.Minute)
	router, _ := newTestHandler(t, sess)

	rec := doExchange(router, sess.ID.String())
	cookie := rec.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "/api/v1/impersonation/status", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp struct {
		IsImpersonating bool   `json:"isImpersonating"`
		SupplierID      string `json:"supplierId"`
		SupplierName    string `json:"supplierName"`
		AdminName       string `json:"adminName"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.IsImpersonating {
		t.Fatal("expected isImpersonating true")
	}
	if resp.SupplierID != sess.SupplierID.String() ||
		resp.SupplierName != "Acme Foods" || resp.AdminName != "Dana Ops" {
		t.Fatalf("status payload mismatch: %+v", resp)
	}
}

func TestStatusWithoutOrWithMalformedCookie(t *testing.T) {
	router, _ := newTestHandler(t)

	// The last two values are hand-crafted payloads carrying no valid
	// signature: a raw base64 JSON blob and a token signed with a different
	// key. Neither may be treated as an active impersonation.
	forged := base64.RawURLEncoding.EncodeToString(
		[]byte(`{"supplierId":"11111111-1111-1111-1111-111111111111"}`))
	wrongKey := NewCookieCodec([]byte("attacker-key"), false).NewCookie(&CookiePayload{
		SessionID:  uuid.NewString(),
		SupplierID: "11111111-1111-1111-1111-111111111111",
	}).Value

	for _, cookie := range []*http.Cookie{
		nil,
		{Name: CookieName, Value: "not-a-token"},
		{Name: CookieName, Value: forged},
		{Name: CookieName, Value: wrongKey},
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/impersonation/status", nil)
		if cookie != nil {
			req.AddCookie(cookie)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("malformed cookie must not error: status %d", rec.Code)
		}
		var resp struct {
			IsImpersonating bool `json:"isImpersonating"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.IsImpersonating {
			t.Fatal("expected isImpersonating false")
		}
	}
}

func TestEndClearsCookieAndEndsSession(t *testing.T) {
	sess := openSession(time.Minute)
	router, repo := newTestHandler(t, sess)

	cookie := doExchange(router, sess.ID.String()).Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/impersonation/", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("end must always succeed, got %d", rec.Code)
	}
	cleared := rec.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge != -1 {
		t.Fatalf("cookie not cleared: %v", cleared)
	}
	if len(repo.ended) != 1 || repo.ended[0] != sess.ID.String() {
		t.Fatalf("session not ended server-side: %v", repo.ended)
	}

	// Once ended, the token cannot be exchanged again.
	if rec := doExchange(router, sess.ID.String()); rec.Code != http.StatusBadRequest {
		t.Fatalf("exchange after end should fail, got %d", rec.Code)
	}
}

func TestExchangeRateLimited(t *testing.T) {
	repo := newFakeRepo()
	limiter := ratelimit.NewMemoryStore(2, time.Hour)
	defer limiter.Close()

	router := chi.NewRouter()
	codec := NewCookieCodec(testCookieKey, false)
	NewHandler(NewService(repo), limiter, codec).RegisterRoutes(router)

	var last int
	for i := 0; i < 3; i++ {
		last = doExchange(router, "").Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("third attempt should be rate limited, got %d", last)
	}
}
