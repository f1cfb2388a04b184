package product

import (
	"time"

	"github.com/google/uuid"
)

// Product represents one item in a supplier's catalog. Within a supplier's
// catalog at most one product carries a given non-empty SKU; the store
// enforces this with a partial unique index.
type Product struct {
	ID                   uuid.UUID    `json:"id"`
	SupplierID           uuid.UUID    `json:"supplier_id"`
	SKU                  string       `json:"sku,omitempty"`
	Name                 string       `json:"name"`
	Description          string       `json:"description,omitempty"`
	Price                float64      `json:"price"`
	CostPrice            float64      `json:"cost_price,omitempty"`
	StockQuantity        int          `json:"stock_quantity"`
	CategoryID           *uuid.UUID   `json:"category_id,omitempty"`
	Category             *CategoryRef `json:"category,omitempty"`
	IsActive             bool         `json:"is_active"`
	InStock              bool         `json:"in_stock"`
	UnitOfMeasure        string       `json:"unit_of_measure"`
	MinimumOrderQuantity int          `json:"minimum_order_quantity"`
	CreatedAt            time.Time    `json:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at"`
}

// Category groups products within one supplier's catalog. Names are unique
// per supplier, compared case-insensitively.
type Category struct {
	ID         uuid.UUID `json:"id"`
	SupplierID uuid.UUID `json:"supplier_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

// CategoryRef is the normalized single optional reference produced at the
// repository boundary when a product row arrives joined with its category.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ProductRequest is the payload for creating or updating a product by hand
// (as opposed to the CSV import path).
type ProductRequest struct {
	SKU                  string  `json:"sku"`
	Name                 string  `json:"name"`
	Description          string  `json:"description"`
	Price                float64 `json:"price"`
	CostPrice            float64 `json:"cost_price"`
	StockQuantity        int     `json:"stock_quantity"`
	CategoryID           string  `json:"category_id"`
	IsActive             bool    `json:"is_active"`
	InStock              bool    `json:"in_stock"`
	UnitOfMeasure        string  `json:"unit_of_measure"`
	MinimumOrderQuantity int     `json:"minimum_order_quantity"`
}
