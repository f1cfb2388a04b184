package product

import (
	"math"
	"strconv"
)

// RowValidation is the outcome of validating one import row.
type RowValidation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ValidateRow checks one parsed row before any write is attempted. Every
// rule is checked independently, so one row can report several errors. Pure:
// no side effects, no store access.
func ValidateRow(row Row) RowValidation {
	var errs []string

	if len(row["name"]) < 2 {
		errs = append(errs, "Name is required and must be at least 2 characters")
	}
	if v := row["price"]; v != "" {
		if n, err := strconv.ParseFloat(v, 64); err != nil || math.IsInf(n, 0) || math.IsNaN(n) || n < 0 {
			errs = append(errs, "Price must be a non-negative number")
		}
	}
	if v := row["cost_price"]; v != "" {
		if n, err := strconv.ParseFloat(v, 64); err != nil || math.IsInf(n, 0) || math.IsNaN(n) || n < 0 {
			errs = append(errs, "Cost price must be a non-negative number")
		}
	}
	if v := row["stock_quantity"]; v != "" {
		if n, err := strconv.Atoi(v); err != nil || n < 0 {
			errs = append(errs, "Stock quantity must be a non-negative integer")
		}
	}

	return RowValidation{Valid: len(errs) == 0, Errors: errs}
}
