package product

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Resolver maps the current session to its owning supplier id. Wired to
// supplier.Service.ResolveSupplierID in main.
type Resolver func(r *http.Request) (uuid.UUID, error)

// Handler exposes the product catalog HTTP endpoints.
type Handler struct {
	service  Service
	resolver Resolver
}

func NewHandler(service Service, resolver Resolver) *Handler {
	return &Handler{service: service, resolver: resolver}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Post("/", h.createProduct)
		r.Get("/export", h.export)
		r.Get("/import/template", h.importTemplate)
		r.Post("/import", h.importFile)
		r.Get("/categories", h.listCategories)
		r.Get("/{id}", h.getProduct)
		r.Put("/{id}", h.updateProduct)
		r.Delete("/{id}", h.deleteProduct)
	})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	supplierID, err := h.resolver(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	products, err := h.service.ListProducts(r.Context(), supplierID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	supplierID, err := h.resolver(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.service.CreateProduct(r.Context(), supplierID, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	supplierID, err := h.resolver(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	p, err := h.service.GetProduct(r.Context(), supplierID, chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	supplierID, err := h.resolver(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.service.UpdateProduct(r.Context(), supplierID, chi.URLParam(r, "id"), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	supplierID, err := h.resolver(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	if err := h.service.DeleteProduct(r.Context(), supplierID, chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	supplierID, err := h.resolver(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	categories, err := h.service.ListCategories(r.Context(), supplierID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, categories)
}

// export streams the supplier's catalog as products_export_<date>.csv or,
// with ?format=xlsx, as a workbook.
func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	supplierID, err := h.resolver(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	rows, err := h.service.ExportRows(r.Context(), supplierID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		f, err := BuildXLSX(rows)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", ExportFilename("xlsx")))
		f.Write(w)
		return
	}

	w.Header().Set("Content-Type", "text/csv;charset=utf-8;")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", ExportFilename("csv")))
	io.WriteString(w, SerializeCSV(ImportColumns, rows))
}

func (h *Handler) importTemplate(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "xlsx" {
		f, err := BuildXLSX(templateRows)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename=products_template.xlsx")
		f.Write(w)
		return
	}

	w.Header().Set("Content-Type", "text/csv;charset=utf-8;")
	w.Header().Set("Content-Disposition", "attachment; filename=products_template.csv")
	io.WriteString(w, TemplateCSV())
}

// rowError pairs a 1-based data row number with its validation messages.
type rowError struct {
	Row    int      `json:"row"`
	Errors []string `json:"errors"`
}

// importFile handles the CSV upload: parse, validate every row, and only if
// the whole batch is clean hand it to the reconciler. Any invalid row blocks
// the entire import.
func (h *Handler) importFile(w http.ResponseWriter, r *http.Request) {
	supplierID, resolveErr := h.resolver(r)

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		http.Error(w, "a .csv file is required", http.StatusBadRequest)
		return
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rows := ParseCSV(decodeUpload(raw))
	if len(rows) == 0 {
		http.Error(w, "file contains no data rows", http.StatusBadRequest)
		return
	}

	var invalid []rowError
	for i, row := range rows {
		if v := ValidateRow(row); !v.Valid {
			invalid = append(invalid, rowError{Row: i + 1, Errors: v.Errors})
		}
	}
	if len(invalid) > 0 {
		respond(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  "validation failed",
			"rows":   invalid,
			"total":  len(rows),
			"failed": len(invalid),
		})
		return
	}

	// A session with no supplier fails the whole batch without attempting
	// any row.
	if resolveErr != nil {
		respond(w, http.StatusOK, ImportResult{Success: 0, Failed: len(rows)})
		return
	}

	result := h.service.Import(r.Context(), supplierID, rows)
	respond(w, http.StatusOK, result)
}

// decodeUpload returns the file content as UTF-8. Files exported from older
// Excel installs arrive as Windows-1251; anything that is not valid UTF-8 is
// run through that decoder.
func decodeUpload(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, _, err := transform.Bytes(charmap.Windows1251.NewDecoder(), raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
