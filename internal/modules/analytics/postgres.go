package analytics

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL analytics repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) ProductCounts(ctx context.Context, supplierID uuid.UUID) (int, int, error) {
	var total, active int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active)
		FROM products WHERE supplier_id = $1`, supplierID).Scan(&total, &active)
	return total, active, err
}

func (r *postgresRepo) OrderCountsByStatus(ctx context.Context, supplierID uuid.UUID) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*) FROM orders
		WHERE supplier_id = $1 GROUP BY status`, supplierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *postgresRepo) Revenue(ctx context.Context, supplierID uuid.UUID, from, to time.Time) (float64, error) {
	var revenue float64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total), 0) FROM orders
		WHERE supplier_id = $1 AND status = 'DELIVERED'
		  AND created_at BETWEEN $2 AND $3`, supplierID, from, to).Scan(&revenue)
	return revenue, err
}

func (r *postgresRepo) TopProducts(ctx context.Context, supplierID uuid.UUID, limit int) ([]*TopProduct, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.name, SUM(oi.quantity), SUM(oi.line_total)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.supplier_id = $1 AND o.status <> 'CANCELLED'
		GROUP BY p.id, p.name
		ORDER BY SUM(oi.quantity) DESC
		LIMIT $2`, supplierID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var top []*TopProduct
	for rows.Next() {
		t := &TopProduct{}
		if err := rows.Scan(&t.ProductID, &t.Name, &t.QuantitySold, &t.Revenue); err != nil {
			return nil, err
		}
		top = append(top, t)
	}
	return top, rows.Err()
}
