package impersonation

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/MachePOS/mache-supplier-portal-sub000/internal/identity"
)

// CookieName is the impersonation cookie set on successful exchange.
const CookieName = "supplier_impersonation"

const purposeImpersonation = "impersonation"

// cookieClaims is the signed cookie payload. Subject carries the session id.
type cookieClaims struct {
	jwt.StandardClaims
	Purpose      string `json:"purpose"`
	SupplierID   string `json:"supplierId"`
	SupplierName string `json:"supplierName"`
	AdminName    string `json:"adminName"`
}

// CookieCodec signs and verifies the impersonation cookie. The cookie is the
// sole credential an impersonating admin carries, so its value is an HS256
// JWT: a hand-crafted payload without the key fails verification and decodes
// to none.
type CookieCodec struct {
	key    []byte
	secure bool
}

// NewCookieCodec creates a codec signing cookies with key. secure controls
// the Secure cookie flag and is true in production.
func NewCookieCodec(key []byte, secure bool) *CookieCodec {
	return &CookieCodec{key: key, secure: secure}
}

// NewCookie wraps the payload in a signed token and returns the cookie.
func (c *CookieCodec) NewCookie(payload *CookiePayload) *http.Cookie {
	claims := &cookieClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   payload.SessionID,
			ExpiresAt: time.Now().Add(cookieMaxAge).Unix(),
		},
		Purpose:      purposeImpersonation,
		SupplierID:   payload.SupplierID,
		SupplierName: payload.SupplierName,
		AdminName:    payload.AdminName,
	}
	signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	return &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   c.secure,
	}
}

// ClearCookie expires the impersonation cookie.
func (c *CookieCodec) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   c.secure,
	}
}

// Decode reads and verifies the impersonation cookie from a request. A
// missing, malformed, expired, or unsigned cookie decodes to none; garbage
// is never surfaced as an error.
func (c *CookieCodec) Decode(r *http.Request) (identity.Impersonation, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return identity.Impersonation{}, false
	}

	claims := &cookieClaims{}
	parsed, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.key, nil
	})
	if err != nil || !parsed.Valid || claims.Purpose != purposeImpersonation || claims.SupplierID == "" {
		return identity.Impersonation{}, false
	}

	return identity.Impersonation{
		SessionID:    claims.Subject,
		SupplierID:   claims.SupplierID,
		SupplierName: claims.SupplierName,
		AdminName:    claims.AdminName,
	}, true
}
