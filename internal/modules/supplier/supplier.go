package supplier

import (
	"time"

	"github.com/google/uuid"
)

// SupplierStatus represents the marketplace standing of a supplier.
type SupplierStatus string

const (
	StatusPending   SupplierStatus = "PENDING"
	StatusActive    SupplierStatus = "ACTIVE"
	StatusSuspended SupplierStatus = "SUSPENDED"
)

// Supplier represents a marketplace supplier managed through the portal.
// @Description Supplier information
// @Description with id, owner_user_id, name, status, contact_email, phone, created_at, and updated_at
type Supplier struct {
	ID           uuid.UUID      `json:"id"`
	OwnerUserID  uuid.UUID      `json:"owner_user_id"`
	Name         string         `json:"name"`
	Status       SupplierStatus `json:"status"`
	ContactEmail string         `json:"contact_email,omitempty"`
	Phone        string         `json:"phone,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
