package export

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/rogerio-castellano/inventory-ledger/internal/models"
	"github.com/rogerio-castellano/inventory-ledger/internal/repo"
)

// ImportMode decides what happens to a row whose name matches an existing product.
type ImportMode string

const (
	ModeSkip   ImportMode = "skip"
	ModeUpdate ImportMode = "update"
)

// ParseImportMode defaults to ModeSkip for anything other than "update".
func ParseImportMode(s string) ImportMode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModeUpdate)) {
		return ModeUpdate
	}
	return ModeSkip
}

// ProductWriter is the part of the inventory the importer writes through.
type ProductWriter interface {
	Products() []models.Product
	AddProduct(ctx context.Context, in models.ProductInput) (models.Product, error)
	UpdateProduct(ctx context.Context, id string, in models.ProductInput) (models.Product, error)
}

type productRow struct {
	Name         string `csv:"name"`
	SKU          string `csv:"sku"`
	Category     string `csv:"category"`
	Quantity     string `csv:"quantity"`
	CostPrice    string `csv:"cost_price"`
	SellingPrice string `csv:"selling_price"`
	Supplier     string `csv:"supplier"`
}

type RowError struct {
	Row         int    `json:"row"`
	Description string `json:"description"`
}

type ImportResult struct {
	Imported int        `json:"imported"`
	Updated  int        `json:"updated"`
	Errors   []RowError `json:"errors"`
}

func parseNumber[T int | float64](field, s string, parse func(string) (T, error)) (T, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := parse(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", field, s)
	}
	return v, nil
}

func parseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

func (r productRow) input() (models.ProductInput, error) {
	qty, err := parseNumber("quantity", r.Quantity, strconv.Atoi)
	if err != nil {
		return models.ProductInput{}, err
	}
	cost, err := parseNumber("cost_price", r.CostPrice, parseFloat)
	if err != nil {
		return models.ProductInput{}, err
	}
	sell, err := parseNumber("selling_price", r.SellingPrice, parseFloat)
	if err != nil {
		return models.ProductInput{}, err
	}
	return models.ProductInput{
		Name:         strings.TrimSpace(r.Name),
		SKU:          strings.TrimSpace(r.SKU),
		Category:     strings.TrimSpace(r.Category),
		Quantity:     qty,
		CostPrice:    cost,
		SellingPrice: sell,
		Supplier:     strings.TrimSpace(r.Supplier),
	}, nil
}

func findByName(products []models.Product, name string) (models.Product, bool) {
	for _, p := range products {
		if strings.EqualFold(strings.TrimSpace(p.Name), name) {
			return p, true
		}
	}
	return models.Product{}, false
}

// ImportProductsCSV reads a header-indexed CSV and adds each row as a product.
// Rows naming an existing product are skipped or overwrite it, per mode. Row
// problems are collected in the result; only an unreadable file is an error.
func ImportProductsCSV(ctx context.Context, dst ProductWriter, r io.Reader, mode ImportMode) (ImportResult, error) {
	var rows []productRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return ImportResult{}, fmt.Errorf("%w: csv: %v", repo.ErrParse, err)
	}

	res := ImportResult{Errors: []RowError{}}
	for i, row := range rows {
		rowNum := i + 2 // header is row 1
		fail := func(format string, args ...any) {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Description: fmt.Sprintf("row %d: "+format, append([]any{rowNum}, args...)...)})
		}

		in, err := row.input()
		if err != nil {
			fail("%v", err)
			continue
		}

		existing, found := findByName(dst.Products(), in.Name)
		switch {
		case found && mode == ModeSkip:
			fail("product '%s' already exists", in.Name)
		case found:
			in.Image = existing.Image
			if _, err := dst.UpdateProduct(ctx, existing.ID, in); err != nil {
				fail("%v", err)
				continue
			}
			res.Updated++
		default:
			if _, err := dst.AddProduct(ctx, in); err != nil {
				fail("%v", err)
				continue
			}
			res.Imported++
		}
	}
	return res, nil
}
