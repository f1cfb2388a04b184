package auth

import (
	"context"
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/MachePOS/mache-supplier-portal-sub000/internal/modules/user"
)

const (
	sessionTokenTTL = 24 * time.Hour
	resetTokenTTL   = time.Hour

	purposeSession = "session"
	purposeReset   = "password_reset"
)

// ErrInvalidCredentials is returned for a failed login without revealing
// whether the account exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken is returned when a token fails signature, expiry, or
// purpose checks.
var ErrInvalidToken = errors.New("invalid or expired token")

// portalClaims tags every token this service mints with its purpose, so a
// reset token can never double as a login session and vice versa.
type portalClaims struct {
	jwt.StandardClaims
	Purpose string `json:"purpose"`
}

type service struct {
	users  user.Service
	repo   user.Repository
	jwtKey []byte
}

// NewService creates a new auth service signing tokens with jwtKey.
func NewService(users user.Service, repo user.Repository, jwtKey []byte) Service {
	return &service{users: users, repo: repo, jwtKey: jwtKey}
}

func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.signSessionToken(u.ID.String())
}

func (s *service) Signup(ctx context.Context, req SignupRequest) (string, error) {
	u, err := s.users.RegisterUser(ctx, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		return "", err
	}
	return s.signSessionToken(u.ID.String())
}

func (s *service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		// Same error as invalid token so the endpoint cannot be used to
		// probe which emails have accounts.
		return "", ErrInvalidToken
	}

	claims := &portalClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   u.ID.String(),
			ExpiresAt: time.Now().Add(resetTokenTTL).Unix(),
		},
		Purpose: purposeReset,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims := &portalClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, s.keyFunc)
	if err != nil || !parsed.Valid || claims.Purpose != purposeReset {
		return ErrInvalidToken
	}

	if len(newPassword) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePasswordHash(ctx, claims.Subject, string(hashed))
}

func (s *service) VerifyToken(token string) (string, error) {
	claims := &portalClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, s.keyFunc)
	if err != nil || !parsed.Valid || claims.Purpose != purposeSession || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (s *service) signSessionToken(userID string) (string, error) {
	claims := &portalClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			ExpiresAt: time.Now().Add(sessionTokenTTL).Unix(),
		},
		Purpose: purposeSession,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
}

func (s *service) keyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrInvalidToken
	}
	return s.jwtKey, nil
}
