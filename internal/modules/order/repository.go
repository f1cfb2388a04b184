package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for orders.
type Repository interface {
	// CreateOrder persists a new order and its items atomically in a transaction.
	CreateOrder(ctx context.Context, o *Order) error

	// GetOrderByID retrieves an order with its items, scoped to the supplier.
	GetOrderByID(ctx context.Context, supplierID uuid.UUID, id string) (*Order, error)

	// ListBySupplier returns the supplier's orders, optionally filtered by status.
	ListBySupplier(ctx context.Context, supplierID uuid.UUID, status string) ([]*Order, error)

	// UpdateStatus advances an order to a new status.
	UpdateStatus(ctx context.Context, supplierID uuid.UUID, id string, status OrderStatus) error
}
