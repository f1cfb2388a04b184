package supplier

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL supplier repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateSupplier(ctx context.Context, s *Supplier) error {
	query := `
		INSERT INTO suppliers (id, owner_user_id, name, status, contact_email, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.OwnerUserID, s.Name, s.Status, s.ContactEmail, s.Phone)
	return err
}

func (r *postgresRepository) GetSupplierByID(ctx context.Context, id string) (*Supplier, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return r.scanOne(ctx, `WHERE id = $1`, parsedID)
}

func (r *postgresRepository) GetSupplierByOwnerID(ctx context.Context, ownerUserID string) (*Supplier, error) {
	parsedID, err := uuid.Parse(ownerUserID)
	if err != nil {
		return nil, err
	}
	return r.scanOne(ctx, `WHERE owner_user_id = $1`, parsedID)
}

func (r *postgresRepository) scanOne(ctx context.Context, where string, arg interface{}) (*Supplier, error) {
	s := &Supplier{}
	query := `
		SELECT id, owner_user_id, name, status, contact_email, phone, created_at, updated_at
		FROM suppliers ` + where
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&s.ID,
		&s.OwnerUserID,
		&s.Name,
		&s.Status,
		&s.ContactEmail,
		&s.Phone,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *postgresRepository) UpdateSupplier(ctx context.Context, s *Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $2, status = $3, contact_email = $4, phone = $5, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.Name, s.Status, s.ContactEmail, s.Phone)
	return err
}
