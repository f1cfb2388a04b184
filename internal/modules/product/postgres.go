package product

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL product repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const productColumns = `
	p.id, p.supplier_id, p.sku, p.name, p.description, p.price, p.cost_price,
	p.stock_quantity, p.category_id, c.id, c.name, p.is_active, p.in_stock,
	p.unit_of_measure, p.minimum_order_quantity, p.created_at, p.updated_at`

const productJoin = `
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id`

// scanProduct normalizes the joined category columns into a single optional
// CategoryRef at the repository boundary, so call sites never see the raw
// nullable join shape.
func scanProduct(scan func(...interface{}) error) (*Product, error) {
	p := &Product{}
	var sku, description sql.NullString
	var catID uuid.NullUUID
	var joinedID uuid.NullUUID
	var joinedName sql.NullString

	err := scan(&p.ID, &p.SupplierID, &sku, &p.Name, &description, &p.Price, &p.CostPrice,
		&p.StockQuantity, &catID, &joinedID, &joinedName, &p.IsActive, &p.InStock,
		&p.UnitOfMeasure, &p.MinimumOrderQuantity, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	p.SKU = sku.String
	p.Description = description.String
	if catID.Valid {
		id := catID.UUID
		p.CategoryID = &id
	}
	if joinedID.Valid && joinedName.Valid {
		p.Category = &CategoryRef{ID: joinedID.UUID, Name: joinedName.String}
	}
	return p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products
		  (id, supplier_id, sku, name, description, price, cost_price, stock_quantity,
		   category_id, is_active, in_stock, unit_of_measure, minimum_order_quantity)
		VALUES ($1,$2,NULLIF($3,''),$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		p.ID, p.SupplierID, p.SKU, p.Name, p.Description, p.Price, p.CostPrice,
		p.StockQuantity, p.CategoryID, p.IsActive, p.InStock, p.UnitOfMeasure,
		p.MinimumOrderQuantity)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, supplierID uuid.UUID, id string) (*Product, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT`+productColumns+productJoin+` WHERE p.id = $1 AND p.supplier_id = $2`,
		parsedID, supplierID)
	p, err := scanProduct(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *postgresRepo) GetBySKU(ctx context.Context, supplierID uuid.UUID, sku string) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT`+productColumns+productJoin+` WHERE p.supplier_id = $1 AND p.sku = $2`,
		supplierID, sku)
	p, err := scanProduct(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *postgresRepo) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT`+productColumns+productJoin+` WHERE p.supplier_id = $1 ORDER BY p.created_at DESC`,
		supplierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET sku = NULLIF($3,''), name = $4, description = $5, price = $6, cost_price = $7,
		    stock_quantity = $8, category_id = $9, is_active = $10, in_stock = $11,
		    unit_of_measure = $12, minimum_order_quantity = $13, updated_at = NOW()
		WHERE id = $1 AND supplier_id = $2`,
		p.ID, p.SupplierID, p.SKU, p.Name, p.Description, p.Price, p.CostPrice,
		p.StockQuantity, p.CategoryID, p.IsActive, p.InStock, p.UnitOfMeasure,
		p.MinimumOrderQuantity)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, supplierID uuid.UUID, id string) error {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`DELETE FROM products WHERE id = $1 AND supplier_id = $2`, parsedID, supplierID)
	return err
}

func (r *postgresRepo) CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE supplier_id = $1`, supplierID).Scan(&n)
	return n, err
}

type postgresCategoryRepo struct{ db *sql.DB }

// NewPostgresCategoryRepository creates a new PostgreSQL category repository.
func NewPostgresCategoryRepository(db *sql.DB) CategoryRepository {
	return &postgresCategoryRepo{db: db}
}

func (r *postgresCategoryRepo) CreateCategory(ctx context.Context, c *Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, supplier_id, name) VALUES ($1, $2, $3)`,
		c.ID, c.SupplierID, c.Name)
	return err
}

func (r *postgresCategoryRepo) ListCategories(ctx context.Context, supplierID uuid.UUID) ([]*Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, supplier_id, name, created_at FROM categories WHERE supplier_id = $1 ORDER BY name`,
		supplierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.SupplierID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
