package deal

import (
	"time"

	"github.com/google/uuid"
)

// DealStatus represents the lifecycle state of a promotional deal.
type DealStatus string

const (
	StatusDraft     DealStatus = "DRAFT"
	StatusActive    DealStatus = "ACTIVE"
	StatusExpired   DealStatus = "EXPIRED"
	StatusCancelled DealStatus = "CANCELLED"
)

// validTransitions defines the allowed deal state machine.
var validTransitions = map[DealStatus][]DealStatus{
	StatusDraft:     {StatusActive, StatusCancelled},
	StatusActive:    {StatusExpired, StatusCancelled},
	StatusExpired:   {},
	StatusCancelled: {},
}

// CanTransition returns true if the deal status transition is valid.
func CanTransition(current, next DealStatus) bool {
	for _, s := range validTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// Deal is a time-boxed promotional discount on one of the supplier's
// products.
type Deal struct {
	ID              uuid.UUID  `json:"id"`
	SupplierID      uuid.UUID  `json:"supplier_id"`
	ProductID       uuid.UUID  `json:"product_id"`
	Title           string     `json:"title"`
	DiscountPercent float64    `json:"discount_percent"`
	StartsAt        time.Time  `json:"starts_at"`
	EndsAt          time.Time  `json:"ends_at"`
	Status          DealStatus `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CreateDealRequest is the payload for creating a promotional deal.
type CreateDealRequest struct {
	ProductID       string    `json:"product_id"`
	Title           string    `json:"title"`
	DiscountPercent float64   `json:"discount_percent"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"`
}
