package deal

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL deal repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const dealColumns = `id, supplier_id, product_id, title, discount_percent,
	starts_at, ends_at, status, created_at, updated_at`

func (r *postgresRepo) CreateDeal(ctx context.Context, d *Deal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO deals
		  (id, supplier_id, product_id, title, discount_percent, starts_at, ends_at, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		d.ID, d.SupplierID, d.ProductID, d.Title, d.DiscountPercent,
		d.StartsAt, d.EndsAt, d.Status)
	return err
}

func (r *postgresRepo) GetDealByID(ctx context.Context, supplierID uuid.UUID, id string) (*Deal, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanDeal(r.db.QueryRowContext(ctx,
		`SELECT `+dealColumns+` FROM deals WHERE id = $1 AND supplier_id = $2`,
		uid, supplierID).Scan)
}

func (r *postgresRepo) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*Deal, error) {
	return r.queryDeals(ctx,
		`SELECT `+dealColumns+` FROM deals WHERE supplier_id = $1 ORDER BY created_at DESC`,
		supplierID)
}

func (r *postgresRepo) ListActive(ctx context.Context, supplierID uuid.UUID, now time.Time) ([]*Deal, error) {
	return r.queryDeals(ctx, `
		SELECT `+dealColumns+` FROM deals
		WHERE supplier_id = $1 AND status = $2 AND starts_at <= $3 AND ends_at >= $3
		ORDER BY ends_at`,
		supplierID, StatusActive, now)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, supplierID uuid.UUID, id string, status DealStatus) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE deals SET status = $3, updated_at = NOW() WHERE id = $1 AND supplier_id = $2`,
		uid, supplierID, status)
	return err
}

func (r *postgresRepo) queryDeals(ctx context.Context, query string, args ...interface{}) ([]*Deal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deals []*Deal
	for rows.Next() {
		d, err := scanDeal(rows.Scan)
		if err != nil {
			return nil, err
		}
		deals = append(deals, d)
	}
	return deals, rows.Err()
}

func scanDeal(scan func(...interface{}) error) (*Deal, error) {
	d := &Deal{}
	err := scan(&d.ID, &d.SupplierID, &d.ProductID, &d.Title, &d.DiscountPercent,
		&d.StartsAt, &d.EndsAt, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}
