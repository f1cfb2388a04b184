package auth

import "context"

// Service defines the interface for authentication-related business logic.
type Service interface {
	// Login verifies credentials and returns a signed session token.
	Login(ctx context.Context, email, password string) (string, error)

	// Signup registers a new portal user and returns a session token.
	Signup(ctx context.Context, req SignupRequest) (string, error)

	// RequestPasswordReset mints a short-lived reset token for the account.
	// The token is delivered out of band; it is returned here for the caller
	// to hand to the mailer.
	RequestPasswordReset(ctx context.Context, email string) (string, error)

	// ResetPassword verifies a reset token and replaces the password.
	ResetPassword(ctx context.Context, token, newPassword string) error

	// VerifyToken validates a session token and returns the user id.
	VerifyToken(token string) (string, error)
}

// SignupRequest is the payload for registering a new portal user.
type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
