package product

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Service defines catalog business logic for one supplier's products.
type Service interface {
	CreateProduct(ctx context.Context, supplierID uuid.UUID, req ProductRequest) (*Product, error)
	GetProduct(ctx context.Context, supplierID uuid.UUID, id string) (*Product, error)
	ListProducts(ctx context.Context, supplierID uuid.UUID) ([]*Product, error)
	UpdateProduct(ctx context.Context, supplierID uuid.UUID, id string, req ProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, supplierID uuid.UUID, id string) error

	ListCategories(ctx context.Context, supplierID uuid.UUID) ([]*Category, error)

	// Import reconciles validated rows into the supplier's catalog.
	Import(ctx context.Context, supplierID uuid.UUID, rows []Row) ImportResult

	// ExportRows flattens the supplier's catalog into import-column rows.
	ExportRows(ctx context.Context, supplierID uuid.UUID) ([]Row, error)
}

type service struct {
	repo       Repository
	categories CategoryRepository
	importer   *Importer
}

// NewService creates a new product service.
func NewService(repo Repository, categories CategoryRepository) Service {
	return &service{
		repo:       repo,
		categories: categories,
		importer:   NewImporter(repo, categories),
	}
}

func (s *service) CreateProduct(ctx context.Context, supplierID uuid.UUID, req ProductRequest) (*Product, error) {
	if len(req.Name) < 2 {
		return nil, errors.New("name must be at least 2 characters")
	}
	if req.Price < 0 {
		return nil, errors.New("price must be non-negative")
	}

	p := &Product{
		ID:         uuid.New(),
		SupplierID: supplierID,
		SKU:        req.SKU,
	}
	applyRequest(p, req)

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, supplierID uuid.UUID, id string) (*Product, error) {
	return s.repo.GetByID(ctx, supplierID, id)
}

func (s *service) ListProducts(ctx context.Context, supplierID uuid.UUID) ([]*Product, error) {
	return s.repo.ListBySupplier(ctx, supplierID)
}

func (s *service) UpdateProduct(ctx context.Context, supplierID uuid.UUID, id string, req ProductRequest) (*Product, error) {
	p, err := s.repo.GetByID(ctx, supplierID, id)
	if err != nil {
		return nil, err
	}

	p.SKU = req.SKU
	applyRequest(p, req)

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, supplierID uuid.UUID, id string) error {
	return s.repo.Delete(ctx, supplierID, id)
}

func (s *service) ListCategories(ctx context.Context, supplierID uuid.UUID) ([]*Category, error) {
	return s.categories.ListCategories(ctx, supplierID)
}

func (s *service) Import(ctx context.Context, supplierID uuid.UUID, rows []Row) ImportResult {
	return s.importer.Run(ctx, supplierID, rows)
}

func (s *service) ExportRows(ctx context.Context, supplierID uuid.UUID) ([]Row, error) {
	products, err := s.repo.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, ExportRow(p))
	}
	return rows, nil
}

func applyRequest(p *Product, req ProductRequest) {
	p.Name = req.Name
	p.Description = req.Description
	p.Price = req.Price
	p.CostPrice = req.CostPrice
	p.StockQuantity = req.StockQuantity
	p.IsActive = req.IsActive
	p.InStock = req.InStock

	p.CategoryID = nil
	if req.CategoryID != "" {
		if id, err := uuid.Parse(req.CategoryID); err == nil {
			p.CategoryID = &id
		}
	}

	p.UnitOfMeasure = req.UnitOfMeasure
	if p.UnitOfMeasure == "" {
		p.UnitOfMeasure = "piece"
	}
	p.MinimumOrderQuantity = req.MinimumOrderQuantity
	if p.MinimumOrderQuantity < 1 {
		p.MinimumOrderQuantity = 1
	}
}
