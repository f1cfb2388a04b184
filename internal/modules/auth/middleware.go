package auth

import (
	"net/http"
	"strings"

	"github.com/MachePOS/mache-supplier-portal-sub000/internal/identity"
)

// CookieDecoder extracts an active impersonation from a request, or reports
// none. Malformed cookies must decode to none, never to an error.
type CookieDecoder func(r *http.Request) (identity.Impersonation, bool)

// publicPrefixes are reachable without any credential: health checks, the
// auth endpoints themselves, and the impersonation exchange/status/end
// endpoints (the exchange is what mints the credential in the first place).
var publicPrefixes = []string{
	"/health",
	"/api/v1/auth/",
	"/api/v1/impersonation/",
}

// Middleware gates every route. A valid impersonation cookie admits the
// request as the impersonated supplier; otherwise a Bearer session token is
// required for any non-public path.
func Middleware(service Service, decodeCookie CookieDecoder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if imp, ok := decodeCookie(r); ok {
				ctx := identity.WithImpersonation(r.Context(), imp)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if isPublic(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r)
			if token == "" {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}
			userID, err := service.VerifyToken(token)
			if err != nil {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}

			ctx := identity.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func isPublic(path string) bool {
	for _, p := range publicPrefixes {
		if path == strings.TrimSuffix(p, "/") || strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
