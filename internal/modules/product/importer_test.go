package product

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

type fakeProductRepo struct {
	products    map[uuid.UUID]*Product
	failCreates bool
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*Product)}
}

func (f *fakeProductRepo) Create(_ context.Context, p *Product) error {
	if f.failCreates {
		return errors.New("store rejected insert")
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, supplierID uuid.UUID, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	p, ok := f.products[uid]
	if !ok || p.SupplierID != supplierID {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetBySKU(_ context.Context, supplierID uuid.UUID, sku string) (*Product, error) {
	for _, p := range f.products {
		if p.SupplierID == supplierID && p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeProductRepo) ListBySupplier(_ context.Context, supplierID uuid.UUID) ([]*Product, error) {
	var out []*Product
	for _, p := range f.products {
		if p.SupplierID == supplierID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return ErrNotFound
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, supplierID uuid.UUID, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	delete(f.products, uid)
	return nil
}

func (f *fakeProductRepo) CountBySupplier(_ context.Context, supplierID uuid.UUID) (int, error) {
	n := 0
	for _, p := range f.products {
		if p.SupplierID == supplierID {
			n++
		}
	}
	return n, nil
}

type fakeCategoryRepo struct {
	categories []*Category
	creates    int
	failCreate bool
	failList   bool
}

func (f *fakeCategoryRepo) CreateCategory(_ context.Context, c *Category) error {
	f.creates++
	if f.failCreate {
		return errors.New("store rejected category")
	}
	cp := *c
	f.categories = append(f.categories, &cp)
	return nil
}

func (f *fakeCategoryRepo) ListCategories(_ context.Context, supplierID uuid.UUID) ([]*Category, error) {
	if f.failList {
		return nil, errors.New("list failed")
	}
	var out []*Category
	for _, c := range f.categories {
		if c.SupplierID == supplierID {
			out = append(out, c)
		}
	}
	return out, nil
}

func importFixture(names ...string) []Row {
	rows := make([]Row, 0, len(names))
	for _, n := range names {
		parts := strings.SplitN(n, "|", 2)
		row := Row{"name": parts[0], "price": "10"}
		if len(parts) == 2 {
			row["sku"] = parts[1]
		}
		rows = append(rows, row)
	}
	return rows
}

func TestImportIdempotentBySKU(t *testing.T) {
	products := newFakeProductRepo()
	categories := &fakeCategoryRepo{}
	im := NewImporter(products, categories)
	supplierID := uuid.New()

	rows := importFixture("Coffee|C-1", "Mug|M-1", "Tumbler|T-1")

	first := im.Run(context.Background(), supplierID, rows)
	if first.Success != 3 || first.Failed != 0 {
		t.Fatalf("first run: %+v", first)
	}
	second := im.Run(context.Background(), supplierID, rows)
	if second.Success != 3 || second.Failed != 0 {
		t.Fatalf("second run: %+v", second)
	}

	if n, _ := products.CountBySupplier(context.Background(), supplierID); n != 3 {
		t.Fatalf("re-import duplicated products: count = %d, want 3", n)
	}
}

func TestImportUpdateIsFullOverwrite(t *testing.T) {
	products := newFakeProductRepo()
	im := NewImporter(products, &fakeCategoryRepo{})
	supplierID := uuid.New()

	im.Run(context.Background(), supplierID, []Row{{
		"name": "Coffee", "sku": "C-1", "price": "18.5",
		"description": "original", "stock_quantity": "10", "is_active": "true",
	}})
	im.Run(context.Background(), supplierID, []Row{{
		"name": "Coffee Deluxe", "sku": "C-1", "price": "20",
	}})

	p, err := products.GetBySKU(context.Background(), supplierID, "C-1")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Coffee Deluxe" || p.Price != 20 {
		t.Fatalf("update did not apply: %+v", p)
	}
	// Fields absent from the second row are overwritten, not preserved.
	if p.Description != "" || p.StockQuantity != 0 || p.IsActive {
		t.Fatalf("update was a partial patch, want full overwrite: %+v", p)
	}
}

// Rows without a SKU have no reconciliation key, so re-importing them
// duplicates products. That is the documented contract, not a bug.
func TestImportWithoutSKUDuplicates(t *testing.T) {
	products := newFakeProductRepo()
	im := NewImporter(products, &fakeCategoryRepo{})
	supplierID := uuid.New()

	rows := importFixture("Coffee", "Mug")
	im.Run(context.Background(), supplierID, rows)
	im.Run(context.Background(), supplierID, rows)

	if n, _ := products.CountBySupplier(context.Background(), supplierID); n != 4 {
		t.Fatalf("count = %d, want 4 (duplicates expected without SKU)", n)
	}
}

func TestImportCategoryCacheCreatesOnce(t *testing.T) {
	products := newFakeProductRepo()
	categories := &fakeCategoryRepo{}
	im := NewImporter(products, categories)
	supplierID := uuid.New()

	rows := []Row{
		{"name": "Coffee", "category": "Beverages"},
		{"name": "Tea", "category": "beverages"},
		{"name": "Cocoa", "category": "BEVERAGES"},
	}
	result := im.Run(context.Background(), supplierID, rows)

	if result.Success != 3 {
		t.Fatalf("result: %+v", result)
	}
	if categories.creates != 1 {
		t.Fatalf("category created %d times, want 1", categories.creates)
	}
}

func TestImportCacheSeededFromExistingCategories(t *testing.T) {
	products := newFakeProductRepo()
	supplierID := uuid.New()
	existing := &Category{ID: uuid.New(), SupplierID: supplierID, Name: "Beverages"}
	categories := &fakeCategoryRepo{categories: []*Category{existing}}
	im := NewImporter(products, categories)

	im.Run(context.Background(), supplierID, []Row{{"name": "Coffee", "category": "beverages"}})

	if categories.creates != 0 {
		t.Fatalf("existing category re-created %d times", categories.creates)
	}
	for _, p := range products.products {
		if p.CategoryID == nil || *p.CategoryID != existing.ID {
			t.Fatalf("product not linked to existing category: %+v", p)
		}
	}
}

func TestImportCategoryFailureSoftFails(t *testing.T) {
	products := newFakeProductRepo()
	categories := &fakeCategoryRepo{failCreate: true}
	im := NewImporter(products, categories)
	supplierID := uuid.New()

	result := im.Run(context.Background(), supplierID, []Row{{"name": "Coffee", "category": "Beverages"}})

	if result.Success != 1 || result.Failed != 0 {
		t.Fatalf("category failure should not fail the row: %+v", result)
	}
	for _, p := range products.products {
		if p.CategoryID != nil {
			t.Fatalf("expected nil category after creation failure, got %v", p.CategoryID)
		}
	}
}

func TestImportRowFailureIsIsolated(t *testing.T) {
	products := newFakeProductRepo()
	im := NewImporter(products, &fakeCategoryRepo{})
	supplierID := uuid.New()

	// Seed one product so the first row takes the update path, then break
	// creates so the remaining rows fail.
	im.Run(context.Background(), supplierID, importFixture("Coffee|C-1"))
	products.failCreates = true

	result := im.Run(context.Background(), supplierID, importFixture("Coffee|C-1", "Mug|M-1", "Tumbler|T-1"))
	if result.Success != 1 || result.Failed != 2 {
		t.Fatalf("want 1 success / 2 failed, got %+v", result)
	}
}

func TestImportBooleanDefaultsAreAsymmetric(t *testing.T) {
	products := newFakeProductRepo()
	im := NewImporter(products, &fakeCategoryRepo{})
	supplierID := uuid.New()

	// is_active defaults to false on absence; in_stock defaults to true.
	im.Run(context.Background(), supplierID, []Row{{"name": "Coffee", "sku": "C-1"}})

	p, err := products.GetBySKU(context.Background(), supplierID, "C-1")
	if err != nil {
		t.Fatal(err)
	}
	if p.IsActive {
		t.Error("is_active should default to false when absent")
	}
	if !p.InStock {
		t.Error("in_stock should default to true when absent")
	}

	im.Run(context.Background(), supplierID, []Row{{
		"name": "Coffee", "sku": "C-1", "is_active": "TRUE", "in_stock": "False",
	}})
	p, _ = products.GetBySKU(context.Background(), supplierID, "C-1")
	if !p.IsActive || p.InStock {
		t.Fatalf("case-insensitive booleans not applied: %+v", p)
	}
}

func TestImportNumericDefaults(t *testing.T) {
	products := newFakeProductRepo()
	im := NewImporter(products, &fakeCategoryRepo{})
	supplierID := uuid.New()

	im.Run(context.Background(), supplierID, []Row{{
		"name": "Coffee", "sku": "C-1", "price": "not-a-number",
	}})

	p, err := products.GetBySKU(context.Background(), supplierID, "C-1")
	if err != nil {
		t.Fatal(err)
	}
	if p.Price != 0 {
		t.Errorf("unparsable price should coerce to 0, got %v", p.Price)
	}
	if p.UnitOfMeasure != "piece" {
		t.Errorf("unit_of_measure default = %q, want piece", p.UnitOfMeasure)
	}
	if p.MinimumOrderQuantity != 1 {
		t.Errorf("minimum_order_quantity default = %d, want 1", p.MinimumOrderQuantity)
	}
}
