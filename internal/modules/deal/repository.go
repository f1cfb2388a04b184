package deal

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines deal data storage.
type Repository interface {
	CreateDeal(ctx context.Context, d *Deal) error
	GetDealByID(ctx context.Context, supplierID uuid.UUID, id string) (*Deal, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*Deal, error)

	// ListActive returns ACTIVE deals whose window contains now.
	ListActive(ctx context.Context, supplierID uuid.UUID, now time.Time) ([]*Deal, error)

	UpdateStatus(ctx context.Context, supplierID uuid.UUID, id string, status DealStatus) error
}
