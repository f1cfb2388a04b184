package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service defines the order management business logic.
type Service interface {
	// Intake records an order arriving from the marketplace.
	Intake(ctx context.Context, req IntakeRequest) (*Order, error)

	// GetOrder retrieves a full order with its items.
	GetOrder(ctx context.Context, supplierID uuid.UUID, id string) (*Order, error)

	// ListOrders returns the supplier's orders, optionally filtered by status.
	ListOrders(ctx context.Context, supplierID uuid.UUID, status string) ([]*Order, error)

	// UpdateStatus advances an order to a new lifecycle status.
	UpdateStatus(ctx context.Context, supplierID uuid.UUID, id string, req UpdateStatusRequest) (*Order, error)

	// CancelOrder cancels a PENDING or CONFIRMED order.
	CancelOrder(ctx context.Context, supplierID uuid.UUID, id string) error
}

type service struct {
	repo Repository
}

// NewService creates a new order service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// validTransitions defines the allowed status state machine.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
}

func canTransition(current, next OrderStatus) bool {
	for _, s := range validTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

func (s *service) Intake(ctx context.Context, req IntakeRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}
	if req.OrderNumber == "" {
		return nil, fmt.Errorf("order_number is required")
	}

	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("invalid supplier_id: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	o := &Order{
		ID:           uuid.New(),
		SupplierID:   supplierID,
		OrderNumber:  req.OrderNumber,
		CustomerName: req.CustomerName,
		Status:       StatusPending,
		Currency:     currency,
		Notes:        req.Notes,
	}

	for _, it := range req.Items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be > 0 for product %s", it.ProductID)
		}
		pid, err := uuid.Parse(it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product_id %s: %w", it.ProductID, err)
		}
		line := it.UnitPrice * float64(it.Quantity)
		o.Items = append(o.Items, &OrderItem{
			ID:        uuid.New(),
			OrderID:   o.ID,
			ProductID: pid,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: line,
		})
		o.Subtotal += line
	}
	o.Total = o.Subtotal

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, supplierID uuid.UUID, id string) (*Order, error) {
	return s.repo.GetOrderByID(ctx, supplierID, id)
}

func (s *service) ListOrders(ctx context.Context, supplierID uuid.UUID, status string) ([]*Order, error) {
	return s.repo.ListBySupplier(ctx, supplierID, strings.ToUpper(status))
}

func (s *service) UpdateStatus(ctx context.Context, supplierID uuid.UUID, id string, req UpdateStatusRequest) (*Order, error) {
	next := OrderStatus(strings.ToUpper(req.Status))

	o, err := s.repo.GetOrderByID(ctx, supplierID, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(o.Status, next) {
		return nil, fmt.Errorf("cannot transition order from %s to %s", o.Status, next)
	}

	if err := s.repo.UpdateStatus(ctx, supplierID, id, next); err != nil {
		return nil, err
	}
	o.Status = next
	return o, nil
}

func (s *service) CancelOrder(ctx context.Context, supplierID uuid.UUID, id string) error {
	o, err := s.repo.GetOrderByID(ctx, supplierID, id)
	if err != nil {
		return err
	}
	if !canTransition(o.Status, StatusCancelled) {
		return fmt.Errorf("cannot cancel order in status %s", o.Status)
	}
	return s.repo.UpdateStatus(ctx, supplierID, id, StatusCancelled)
}
