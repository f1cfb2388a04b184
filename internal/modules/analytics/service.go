package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service defines the dashboard analytics logic.
type Service interface {
	Summary(ctx context.Context, supplierID uuid.UUID, from, to time.Time) (*Summary, error)
	TopProducts(ctx context.Context, supplierID uuid.UUID, limit int) ([]*TopProduct, error)
}

type service struct {
	repo Repository
}

// NewService creates a new analytics service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Summary(ctx context.Context, supplierID uuid.UUID, from, to time.Time) (*Summary, error) {
	total, active, err := s.repo.ProductCounts(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repo.OrderCountsByStatus(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	revenue, err := s.repo.Revenue(ctx, supplierID, from, to)
	if err != nil {
		return nil, err
	}

	return &Summary{
		ProductCount:       total,
		ActiveProductCount: active,
		OrdersByStatus:     byStatus,
		Revenue:            revenue,
	}, nil
}

func (s *service) TopProducts(ctx context.Context, supplierID uuid.UUID, limit int) ([]*TopProduct, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.repo.TopProducts(ctx, supplierID, limit)
}
