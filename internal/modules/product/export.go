package product

import (
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// ImportColumns is the canonical column set shared by the import template,
// the import parser contract, and both export formats.
var ImportColumns = []string{
	"name", "sku", "description", "price", "cost_price", "stock_quantity",
	"category", "is_active", "in_stock", "unit_of_measure", "minimum_order_quantity",
}

// templateRows are the two example lines shipped in products_template.csv.
var templateRows = []Row{
	{
		"name": "Arabica Coffee Beans 1kg", "sku": "COF-001",
		"description": "Single-origin roasted beans", "price": "18.50",
		"cost_price": "11.00", "stock_quantity": "120", "category": "Beverages",
		"is_active": "true", "in_stock": "true", "unit_of_measure": "bag",
		"minimum_order_quantity": "5",
	},
	{
		"name": "Stainless Steel Tumbler", "sku": "TUM-010",
		"description": "Double-walled, 450ml", "price": "9.90",
		"cost_price": "4.20", "stock_quantity": "300", "category": "Drinkware",
		"is_active": "true", "in_stock": "true", "unit_of_measure": "piece",
		"minimum_order_quantity": "10",
	},
}

// ExportFilename names a product export for the given format, stamped with
// the ISO date.
func ExportFilename(format string) string {
	return fmt.Sprintf("products_export_%s.%s", time.Now().Format("2006-01-02"), format)
}

// TemplateCSV renders the static import template.
func TemplateCSV() string {
	return SerializeCSV(ImportColumns, templateRows)
}

// ExportRow flattens a product into the import column set, so that an
// exported file can be re-imported unchanged.
func ExportRow(p *Product) Row {
	category := ""
	if p.Category != nil {
		category = p.Category.Name
	}
	return Row{
		"name":                   p.Name,
		"sku":                    p.SKU,
		"description":            p.Description,
		"price":                  strconv.FormatFloat(p.Price, 'f', -1, 64),
		"cost_price":             strconv.FormatFloat(p.CostPrice, 'f', -1, 64),
		"stock_quantity":         strconv.Itoa(p.StockQuantity),
		"category":               category,
		"is_active":              strconv.FormatBool(p.IsActive),
		"in_stock":               strconv.FormatBool(p.InStock),
		"unit_of_measure":        p.UnitOfMeasure,
		"minimum_order_quantity": strconv.Itoa(p.MinimumOrderQuantity),
	}
}

// BuildXLSX renders rows into an xlsx workbook with a styled header, for
// suppliers who manage their catalog in Excel.
func BuildXLSX(rows []Row) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Products"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	for i, col := range ImportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	for r, row := range rows {
		for c, col := range ImportColumns {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, row[col])
		}
	}
	return f, nil
}
