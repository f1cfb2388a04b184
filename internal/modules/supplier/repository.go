package supplier

import "context"

// Repository defines the interface for supplier data storage.
type Repository interface {
	CreateSupplier(ctx context.Context, s *Supplier) error
	GetSupplierByID(ctx context.Context, id string) (*Supplier, error)
	GetSupplierByOwnerID(ctx context.Context, ownerUserID string) (*Supplier, error)
	UpdateSupplier(ctx context.Context, s *Supplier) error
}
