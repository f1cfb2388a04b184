package product

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ImportResult counts the outcome of one reconciler run.
type ImportResult struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

// Importer reconciles validated import rows into a supplier's catalog:
// upsert by SKU, with on-demand category creation cached for the run.
type Importer struct {
	products   Repository
	categories CategoryRepository
}

// NewImporter creates an import reconciler over the given stores.
func NewImporter(products Repository, categories CategoryRepository) *Importer {
	return &Importer{products: products, categories: categories}
}

// Run processes rows strictly in input order, one store round trip at a
// time. A failing row is counted and skipped; it never aborts its siblings.
// Rows must already have passed ValidateRow — the caller gates the batch.
func (im *Importer) Run(ctx context.Context, supplierID uuid.UUID, rows []Row) ImportResult {
	cache := im.seedCategoryCache(ctx, supplierID)

	var result ImportResult
	for _, row := range rows {
		if err := im.upsertRow(ctx, supplierID, row, cache); err != nil {
			log.Printf("import: row %q failed: %v", row["name"], err)
			result.Failed++
			continue
		}
		result.Success++
	}
	return result
}

// seedCategoryCache loads the supplier's existing categories keyed by
// lower-cased name. The cache lives for one run only; concurrent runs each
// carry their own and may race on creation, which the store's uniqueness
// rules arbitrate.
func (im *Importer) seedCategoryCache(ctx context.Context, supplierID uuid.UUID) map[string]uuid.UUID {
	cache := make(map[string]uuid.UUID)
	existing, err := im.categories.ListCategories(ctx, supplierID)
	if err != nil {
		log.Printf("import: seeding category cache: %v", err)
		return cache
	}
	for _, c := range existing {
		cache[strings.ToLower(c.Name)] = c.ID
	}
	return cache
}

func (im *Importer) upsertRow(ctx context.Context, supplierID uuid.UUID, row Row, cache map[string]uuid.UUID) error {
	categoryID := im.resolveCategory(ctx, supplierID, row["category"], cache)

	sku := strings.TrimSpace(row["sku"])
	if sku != "" {
		existing, err := im.products.GetBySKU(ctx, supplierID, sku)
		switch {
		case err == nil:
			applyRow(existing, row, categoryID)
			return im.products.Update(ctx, existing)
		case !errors.Is(err, ErrNotFound):
			return err
		}
	}

	p := &Product{
		ID:         uuid.New(),
		SupplierID: supplierID,
		SKU:        sku,
	}
	applyRow(p, row, categoryID)
	return im.products.Create(ctx, p)
}

// resolveCategory maps a category name to an id through the per-run cache,
// creating the category on a miss. Creation failure degrades to no category
// rather than failing the row.
func (im *Importer) resolveCategory(ctx context.Context, supplierID uuid.UUID, name string, cache map[string]uuid.UUID) *uuid.UUID {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	key := strings.ToLower(name)
	if id, ok := cache[key]; ok {
		return &id
	}

	c := &Category{ID: uuid.New(), SupplierID: supplierID, Name: name}
	if err := im.categories.CreateCategory(ctx, c); err != nil {
		log.Printf("import: creating category %q: %v", name, err)
		return nil
	}
	cache[key] = c.ID
	id := c.ID
	return &id
}

// applyRow overwrites every mutable field from the row. An update is a full
// overwrite, not a partial patch. Note the asymmetric boolean defaults:
// is_active is true only when the cell says "true", while in_stock is true
// unless the cell says "false".
func applyRow(p *Product, row Row, categoryID *uuid.UUID) {
	p.Name = row["name"]
	p.Description = row["description"]
	p.Price = parseFloatOrZero(row["price"])
	p.CostPrice = parseFloatOrZero(row["cost_price"])
	p.StockQuantity = parseIntOrDefault(row["stock_quantity"], 0)
	p.CategoryID = categoryID
	p.IsActive = strings.EqualFold(row["is_active"], "true")
	p.InStock = !strings.EqualFold(row["in_stock"], "false")

	p.UnitOfMeasure = row["unit_of_measure"]
	if p.UnitOfMeasure == "" {
		p.UnitOfMeasure = "piece"
	}
	p.MinimumOrderQuantity = parseIntOrDefault(row["minimum_order_quantity"], 1)
	if p.MinimumOrderQuantity < 1 {
		p.MinimumOrderQuantity = 1
	}
}

func parseFloatOrZero(v string) float64 {
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return n
}

func parseIntOrDefault(v string, def int) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
