// Package identity carries the authenticated caller through request context:
// either a portal user id from a verified token, or an impersonated supplier
// injected by the impersonation cookie.
package identity

import "context"

type contextKey int

const (
	userIDKey contextKey = iota
	impersonationKey
)

// Impersonation identifies an admin acting as a supplier.
type Impersonation struct {
	SessionID    string
	SupplierID   string
	SupplierName string
	AdminName    string
}

// WithUserID returns a context carrying the authenticated user id.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserID returns the authenticated user id, if any.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// WithImpersonation returns a context carrying an active impersonation.
func WithImpersonation(ctx context.Context, imp Impersonation) context.Context {
	return context.WithValue(ctx, impersonationKey, imp)
}

// FromImpersonation returns the active impersonation, if any.
func FromImpersonation(ctx context.Context) (Impersonation, bool) {
	imp, ok := ctx.Value(impersonationKey).(Impersonation)
	return imp, ok
}
