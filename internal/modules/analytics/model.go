package analytics

import "github.com/google/uuid"

// Summary aggregates a supplier's dashboard numbers.
type Summary struct {
	ProductCount       int            `json:"product_count"`
	ActiveProductCount int            `json:"active_product_count"`
	OrdersByStatus     map[string]int `json:"orders_by_status"`
	Revenue            float64        `json:"revenue"`
}

// TopProduct is one row of the top-sellers view.
type TopProduct struct {
	ProductID    uuid.UUID `json:"product_id"`
	Name         string    `json:"name"`
	QuantitySold int       `json:"quantity_sold"`
	Revenue      float64   `json:"revenue"`
}
