package impersonation

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL impersonation repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetSession(ctx context.Context, id string) (*Session, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	sess := &Session{}
	var supplierID uuid.NullUUID
	var endedAt sql.NullTime
	var supplierName, adminFirst, adminLast sql.NullString

	query := `
		SELECT s.id, s.admin_user_id, s.supplier_id, s.started_at, s.ended_at,
		       sup.name, u.first_name, u.last_name
		FROM impersonation_sessions s
		LEFT JOIN suppliers sup ON sup.id = s.supplier_id
		LEFT JOIN users u ON u.id = s.admin_user_id
		WHERE s.id = $1
	`
	err = r.db.QueryRowContext(ctx, query, parsedID).Scan(
		&sess.ID,
		&sess.AdminUserID,
		&supplierID,
		&sess.StartedAt,
		&endedAt,
		&supplierName,
		&adminFirst,
		&adminLast,
	)
	if err != nil {
		return nil, err
	}

	// Normalize the joined shapes once, here.
	if supplierID.Valid {
		sid := supplierID.UUID
		sess.SupplierID = &sid
	}
	if endedAt.Valid {
		t := endedAt.Time
		sess.EndedAt = &t
	}
	sess.SupplierName = supplierName.String
	sess.AdminName = joinName(adminFirst.String, adminLast.String)

	return sess, nil
}

func (r *postgresRepository) EndSession(ctx context.Context, id string) error {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE impersonation_sessions SET ended_at = NOW() WHERE id = $1 AND ended_at IS NULL`,
		parsedID)
	return err
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
