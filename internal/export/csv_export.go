// Package export converts the catalog to and from spreadsheet-friendly CSV.
package export

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rogerio-castellano/inventory-ledger/internal/models"
)

// Header is the fixed first row of an exported file.
var Header = []string{
	"Product Name", "SKU", "Category", "Quantity", "Status",
	"Cost Price", "Selling Price", "Supplier", "Date Added",
}

const dateAddedLayout = "Jan 2, 2006"

// FileName returns the download name for an export taken at t.
func FileName(t time.Time) string {
	return "inventory_" + t.Format("2006-01-02") + ".csv"
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func price(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteProductsCSV writes one row per product. Text columns are always quoted;
// numbers are written as plain decimals.
func WriteProductsCSV(w io.Writer, products []models.Product) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(strings.Join(Header, ",") + "\n")

	for _, p := range products {
		row := []string{
			quote(p.Name),
			quote(p.SKU),
			quote(p.Category),
			strconv.Itoa(p.Quantity),
			quote(string(p.Status)),
			price(p.CostPrice),
			price(p.SellingPrice),
			quote(p.Supplier),
			quote(p.DateAdded.Format(dateAddedLayout)),
		}
		bw.WriteString(strings.Join(row, ",") + "\n")
	}
	return bw.Flush()
}
