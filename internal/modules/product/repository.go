package product

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a lookup matches no row. The importer depends
// on it to tell "no product with this SKU yet" apart from a store failure.
var ErrNotFound = errors.New("not found")

// Repository defines product data storage.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, supplierID uuid.UUID, id string) (*Product, error)
	GetBySKU(ctx context.Context, supplierID uuid.UUID, sku string) (*Product, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, supplierID uuid.UUID, id string) error
	CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int, error)
}

// CategoryRepository defines category data storage.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, c *Category) error
	ListCategories(ctx context.Context, supplierID uuid.UUID) ([]*Category, error)
}
