package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents a portal user account.
// @Description User information
// @Description with id, email, first_name, last_name, phone, created_at, and updated_at
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
