package product

import (
	"reflect"
	"strings"
	"testing"
)

func TestSerializeCSVEmptyRows(t *testing.T) {
	if got := SerializeCSV(ImportColumns, nil); got != "" {
		t.Fatalf("expected empty output for empty rows, got %q", got)
	}
}

func TestSerializeCSVQuoting(t *testing.T) {
	columns := []string{"name", "description"}
	rows := []Row{
		{"name": "Plain", "description": "no special chars"},
		{"name": `Say "hi"`, "description": "a, b, c"},
	}

	got := SerializeCSV(columns, rows)
	want := "name,description\n" +
		"Plain,no special chars\n" +
		`"Say ""hi""","a, b, c"`
	if got != want {
		t.Fatalf("serialize mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestParseCSVDropsMismatchedRows(t *testing.T) {
	text := "a,b,c\n1,2,3\nonly,two\n4,5,6"
	rows := ParseCSV(text)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows (mismatched row dropped), got %d", len(rows))
	}
	if rows[0]["a"] != "1" || rows[1]["c"] != "6" {
		t.Fatalf("unexpected row content: %v", rows)
	}
}

func TestParseCSVBlankLinesAndTrimming(t *testing.T) {
	text := "name , sku\n\n  \nWidget , W-1 \n"
	rows := ParseCSV(text)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0]["name"] != "Widget" || rows[0]["sku"] != "W-1" {
		t.Fatalf("headers/values not trimmed: %v", rows[0])
	}
}

func TestParseCSVQuotedFields(t *testing.T) {
	text := `name,description` + "\n" + `Widget,"a, quoted ""field"""`
	rows := ParseCSV(text)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if got := rows[0]["description"]; got != `a, quoted "field"` {
		t.Fatalf("quoted field mismatch: %q", got)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	columns := []string{"name", "sku", "price", "is_active"}
	rows := []Row{
		{"name": "Coffee, dark roast", "sku": "C-1", "price": "18.5", "is_active": "true"},
		{"name": `The "Best" Mug`, "sku": "", "price": "0", "is_active": "false"},
	}

	parsed := ParseCSV(SerializeCSV(columns, rows))
	if len(parsed) != len(rows) {
		t.Fatalf("round trip lost rows: got %d want %d", len(parsed), len(rows))
	}
	for i := range rows {
		if !reflect.DeepEqual(rows[i], parsed[i]) {
			t.Errorf("row %d mismatch:\ngot:  %v\nwant: %v", i, parsed[i], rows[i])
		}
	}
}

func TestTemplateCSVMatchesColumns(t *testing.T) {
	text := TemplateCSV()
	lines := strings.Split(text, "\n")
	if len(lines) != 3 {
		t.Fatalf("template should be header + 2 example rows, got %d lines", len(lines))
	}
	if lines[0] != strings.Join(ImportColumns, ",") {
		t.Fatalf("template header mismatch: %q", lines[0])
	}
	for _, row := range ParseCSV(text) {
		if v := ValidateRow(row); !v.Valid {
			t.Errorf("template example row invalid: %v", v.Errors)
		}
	}
}
