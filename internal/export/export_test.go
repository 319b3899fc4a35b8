package export

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/inventory-ledger/internal/inventory"
	"github.com/rogerio-castellano/inventory-ledger/internal/models"
	"github.com/rogerio-castellano/inventory-ledger/internal/persistence"
	"github.com/rogerio-castellano/inventory-ledger/internal/repo"
	"github.com/rogerio-castellano/inventory-ledger/internal/storage"
)

func TestWriteProductsCSV(t *testing.T) {
	products := []models.Product{
		{
			Name: `Cable "USB-C"`, SKU: "SKU1", Category: "Electronics", Quantity: 12,
			Status: models.StatusInStock, CostPrice: 2.5, SellingPrice: 7, Supplier: "Acme, Inc.",
			DateAdded: time.Date(2025, 1, 9, 15, 0, 0, 0, time.UTC),
		},
		{
			Name: "Tape", Quantity: 0, Status: models.StatusOutOfStock,
			DateAdded: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteProductsCSV(&buf, products))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Equal(t, []string{
		"Product Name,SKU,Category,Quantity,Status,Cost Price,Selling Price,Supplier,Date Added",
		`"Cable ""USB-C""","SKU1","Electronics",12,"In Stock",2.5,7,"Acme, Inc.","Jan 9, 2025"`,
		`"Tape","","",0,"Out of Stock",0,0,"","Dec 31, 2024"`,
	}, lines)
}

func TestWriteProductsCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProductsCSV(&buf, nil))
	require.Equal(t, strings.Join(Header, ",")+"\n", buf.String())
}

func TestFileName(t *testing.T) {
	require.Equal(t, "inventory_2025-07-04.csv", FileName(time.Date(2025, 7, 4, 23, 0, 0, 0, time.UTC)))
}

func newInventory(t *testing.T) *inventory.Inventory {
	t.Helper()
	inv, err := inventory.New(context.Background(), persistence.NewGateway(storage.NewMemoryStore(), nil), inventory.Options{})
	require.NoError(t, err)
	return inv
}

func TestImportProductsCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("valid rows", func(t *testing.T) {
		inv := newInventory(t)
		csvData := "name,sku,category,quantity,cost_price,selling_price,supplier\n" +
			"Mouse,M-1,Peripherals,10,12.5,25.99,Logi\n" +
			"Keyboard,,Peripherals,3,20,45,\n"

		res, err := ImportProductsCSV(ctx, inv, strings.NewReader(csvData), ModeSkip)
		require.NoError(t, err)
		require.Equal(t, 2, res.Imported)
		require.Empty(t, res.Errors)

		products := inv.Products()
		require.Len(t, products, 2)
		require.Equal(t, "Mouse", products[0].Name)
		require.Equal(t, 25.99, products[0].SellingPrice)
		require.Equal(t, models.StatusLowStock, products[1].Status)
		require.True(t, strings.HasPrefix(products[1].SKU, "SKU"))
	})

	t.Run("invalid rows are reported", func(t *testing.T) {
		inv := newInventory(t)
		csvData := "name,quantity,cost_price\n" +
			"Mouse,10,1\n" +
			",3,1\n" +
			"Cable,many,1\n" +
			"Hub,-2,1\n"

		res, err := ImportProductsCSV(ctx, inv, strings.NewReader(csvData), ModeSkip)
		require.NoError(t, err)
		require.Equal(t, 1, res.Imported)
		require.Len(t, res.Errors, 3)
		require.Equal(t, 3, res.Errors[0].Row)
		require.Contains(t, res.Errors[0].Description, "Name is required")
		require.Contains(t, res.Errors[1].Description, `row 4: invalid quantity "many"`)
		require.Contains(t, res.Errors[2].Description, "Quantity cannot be negative")
	})

	t.Run("duplicates are skipped by default", func(t *testing.T) {
		inv := newInventory(t)
		csvData := "name,quantity\nMouse,10\nKeyboard,5\nmouse,4\n"

		res, err := ImportProductsCSV(ctx, inv, strings.NewReader(csvData), ParseImportMode(""))
		require.NoError(t, err)
		require.Equal(t, 2, res.Imported)
		require.Len(t, res.Errors, 1)
		require.Equal(t, "row 4: product 'mouse' already exists", res.Errors[0].Description)
		require.Equal(t, 10, inv.Products()[0].Quantity)
	})

	t.Run("update mode overwrites by name", func(t *testing.T) {
		inv := newInventory(t)
		_, err := inv.AddProduct(ctx, models.ProductInput{Name: "Mouse", Quantity: 10, Image: "data:image/png;base64,AA"})
		require.NoError(t, err)

		res, err := ImportProductsCSV(ctx, inv, strings.NewReader("name,quantity,selling_price\nMouse,0,30\n"), ParseImportMode("UPDATE"))
		require.NoError(t, err)
		require.Equal(t, 1, res.Updated)
		require.Zero(t, res.Imported)

		p := inv.Products()[0]
		require.Equal(t, 0, p.Quantity)
		require.Equal(t, models.StatusOutOfStock, p.Status)
		require.Equal(t, 30.0, p.SellingPrice)
		require.Equal(t, "data:image/png;base64,AA", p.Image)
		require.Equal(t, "Updated product: Mouse", inv.RecentActivities(1)[0].Message)
	})

	t.Run("unreadable file", func(t *testing.T) {
		_, err := ImportProductsCSV(ctx, newInventory(t), strings.NewReader(""), ModeSkip)
		require.ErrorIs(t, err, repo.ErrParse)
	})
}
