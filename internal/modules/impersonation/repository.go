package impersonation

import "context"

// Repository defines impersonation session storage. Sessions are created by
// the external admin tool; this service reads and ends them.
type Repository interface {
	// GetSession loads a session with the supplier and admin display names
	// joined in. Returns an error when no such session exists.
	GetSession(ctx context.Context, id string) (*Session, error)

	// EndSession marks the session ended now. Ending an already-ended
	// session is a no-op.
	EndSession(ctx context.Context, id string) error
}
