package order

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// CreateOrder inserts the order and all its items inside a single transaction.
func (r *postgresRepo) CreateOrder(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders
		  (id, supplier_id, order_number, customer_name, status, subtotal, total, currency, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		o.ID, o.SupplierID, o.OrderNumber, o.CustomerName, o.Status,
		o.Subtotal, o.Total, o.Currency, o.Notes)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items
			  (id, order_id, product_id, quantity, unit_price, line_total)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			item.ID, o.ID, item.ProductID, item.Quantity, item.UnitPrice, item.LineTotal)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, supplierID uuid.UUID, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	o, err := scanOrder(r.db.QueryRowContext(ctx, `
		SELECT id, supplier_id, order_number, customer_name, status,
		       subtotal, total, currency, notes, created_at, updated_at
		FROM orders WHERE id = $1 AND supplier_id = $2`, uid, supplierID))
	if err != nil {
		return nil, err
	}
	o.Items, err = r.listItems(ctx, o.ID)
	return o, err
}

func (r *postgresRepo) ListBySupplier(ctx context.Context, supplierID uuid.UUID, status string) ([]*Order, error) {
	query := `SELECT id, supplier_id, order_number, customer_name, status,
	                 subtotal, total, currency, notes, created_at, updated_at
	          FROM orders WHERE supplier_id = $1`
	args := []interface{}{supplierID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanAny(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, supplierID uuid.UUID, id string, status OrderStatus) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE orders SET status = $3, updated_at = NOW() WHERE id = $1 AND supplier_id = $2`,
		uid, supplierID, status)
	return err
}

func (r *postgresRepo) listItems(ctx context.Context, orderID uuid.UUID) ([]*OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price, line_total, created_at
		FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*OrderItem
	for rows.Next() {
		it := &OrderItem{}
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity,
			&it.UnitPrice, &it.LineTotal, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanOrder(row *sql.Row) (*Order, error) {
	return scanAny(row.Scan)
}

func scanAny(scan func(...interface{}) error) (*Order, error) {
	o := &Order{}
	var customerName, notes sql.NullString
	err := scan(&o.ID, &o.SupplierID, &o.OrderNumber, &customerName, &o.Status,
		&o.Subtotal, &o.Total, &o.Currency, &notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.CustomerName = customerName.String
	o.Notes = notes.String
	return o, nil
}
