package order

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the lifecycle state of a marketplace order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Order represents a marketplace order routed to a supplier. Orders
// originate in the marketplace; the portal confirms, ships, and cancels
// them but never creates them on a customer's behalf.
type Order struct {
	ID           uuid.UUID    `json:"id"`
	SupplierID   uuid.UUID    `json:"supplier_id"`
	OrderNumber  string       `json:"order_number"`
	CustomerName string       `json:"customer_name,omitempty"`
	Status       OrderStatus  `json:"status"`
	Subtotal     float64      `json:"subtotal"`
	Total        float64      `json:"total"`
	Currency     string       `json:"currency"`
	Notes        string       `json:"notes,omitempty"`
	Items        []*OrderItem `json:"items,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// OrderItem is a single line item within an order.
type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	LineTotal float64   `json:"line_total"`
	CreatedAt time.Time `json:"created_at"`
}

// IntakeItem describes one line of an order arriving from the marketplace.
type IntakeItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// IntakeRequest is the payload for recording an order from the marketplace.
type IntakeRequest struct {
	SupplierID   string       `json:"supplier_id"`
	OrderNumber  string       `json:"order_number"`
	CustomerName string       `json:"customer_name,omitempty"`
	Currency     string       `json:"currency,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	Items        []IntakeItem `json:"items"`
}

// UpdateStatusRequest is the payload for advancing an order's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
