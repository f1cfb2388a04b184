package deal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service defines promotional-deal business logic.
type Service interface {
	CreateDeal(ctx context.Context, supplierID uuid.UUID, req CreateDealRequest) (*Deal, error)
	GetDeal(ctx context.Context, supplierID uuid.UUID, id string) (*Deal, error)
	ListDeals(ctx context.Context, supplierID uuid.UUID) ([]*Deal, error)
	ListActiveDeals(ctx context.Context, supplierID uuid.UUID) ([]*Deal, error)
	ActivateDeal(ctx context.Context, supplierID uuid.UUID, id string) (*Deal, error)
	CancelDeal(ctx context.Context, supplierID uuid.UUID, id string) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new deal service.
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) CreateDeal(ctx context.Context, supplierID uuid.UUID, req CreateDealRequest) (*Deal, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if req.DiscountPercent < 1 || req.DiscountPercent > 90 {
		return nil, fmt.Errorf("discount_percent must be between 1 and 90")
	}
	if !req.EndsAt.After(req.StartsAt) {
		return nil, fmt.Errorf("ends_at must be after starts_at")
	}
	if req.EndsAt.Before(s.now()) {
		return nil, fmt.Errorf("deal window is entirely in the past")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid product_id: %w", err)
	}

	d := &Deal{
		ID:              uuid.New(),
		SupplierID:      supplierID,
		ProductID:       productID,
		Title:           req.Title,
		DiscountPercent: req.DiscountPercent,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		Status:          StatusDraft,
	}

	if err := s.repo.CreateDeal(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) GetDeal(ctx context.Context, supplierID uuid.UUID, id string) (*Deal, error) {
	return s.repo.GetDealByID(ctx, supplierID, id)
}

func (s *service) ListDeals(ctx context.Context, supplierID uuid.UUID) ([]*Deal, error) {
	return s.repo.ListBySupplier(ctx, supplierID)
}

func (s *service) ListActiveDeals(ctx context.Context, supplierID uuid.UUID) ([]*Deal, error) {
	return s.repo.ListActive(ctx, supplierID, s.now())
}

func (s *service) ActivateDeal(ctx context.Context, supplierID uuid.UUID, id string) (*Deal, error) {
	d, err := s.repo.GetDealByID(ctx, supplierID, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(d.Status, StatusActive) {
		return nil, fmt.Errorf("cannot activate deal in status %s", d.Status)
	}
	if d.EndsAt.Before(s.now()) {
		return nil, fmt.Errorf("deal window has already ended")
	}

	if err := s.repo.UpdateStatus(ctx, supplierID, id, StatusActive); err != nil {
		return nil, err
	}
	d.Status = StatusActive
	return d, nil
}

func (s *service) CancelDeal(ctx context.Context, supplierID uuid.UUID, id string) error {
	d, err := s.repo.GetDealByID(ctx, supplierID, id)
	if err != nil {
		return err
	}
	if !CanTransition(d.Status, StatusCancelled) {
		return fmt.Errorf("cannot cancel deal in status %s", d.Status)
	}
	return s.repo.UpdateStatus(ctx, supplierID, id, StatusCancelled)
}
