package impersonation

import (
	"context"
	"errors"
	"time"
)

// The three caller-facing rejections. Not-found, closed, and wrong-shape
// sessions collapse into the same message on purpose, so the endpoint does
// not leak which case occurred.
var (
	ErrNoSessionID    = errors.New("No session ID provided")
	ErrInvalidSession = errors.New("Invalid or expired session")
	ErrSessionExpired = errors.New("Session has expired")
)

// Service defines the impersonation handoff logic.
type Service interface {
	// Exchange redeems an admin-issued session id for a cookie payload.
	// Valid only while the session is open, targets a supplier, and is
	// younger than the exchange window. A session may be exchanged more
	// than once within its window; the endpoint rate limit bounds abuse.
	Exchange(ctx context.Context, sessionID string) (*CookiePayload, error)

	// End marks the session ended server-side. Ending an unknown or
	// already-ended session is not an error.
	End(ctx context.Context, sessionID string) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new impersonation service.
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Exchange(ctx context.Context, sessionID string) (*CookiePayload, error) {
	if sessionID == "" {
		return nil, ErrNoSessionID
	}

	sess, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, ErrInvalidSession
	}
	if sess.EndedAt != nil || sess.SupplierID == nil {
		return nil, ErrInvalidSession
	}
	if s.now().Sub(sess.StartedAt) > exchangeWindow {
		return nil, ErrSessionExpired
	}

	return &CookiePayload{
		SessionID:    sess.ID.String(),
		SupplierID:   sess.SupplierID.String(),
		SupplierName: sess.SupplierName,
		AdminName:    sess.AdminName,
	}, nil
}

func (s *service) End(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.repo.EndSession(ctx, sessionID)
}
