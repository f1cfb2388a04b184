package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the read-only aggregate queries behind the dashboard.
type Repository interface {
	ProductCounts(ctx context.Context, supplierID uuid.UUID) (total, active int, err error)
	OrderCountsByStatus(ctx context.Context, supplierID uuid.UUID) (map[string]int, error)

	// Revenue sums delivered-order totals within [from, to].
	Revenue(ctx context.Context, supplierID uuid.UUID, from, to time.Time) (float64, error)

	TopProducts(ctx context.Context, supplierID uuid.UUID, limit int) ([]*TopProduct, error)
}
