package inventory

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rogerio-castellano/inventory-ledger/internal/models"
	"github.com/rogerio-castellano/inventory-ledger/internal/persistence"
	"github.com/rogerio-castellano/inventory-ledger/internal/repo"
	"github.com/rogerio-castellano/inventory-ledger/internal/storage"
)

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return strconv.Itoa(s.n)
}

type tick struct{ t time.Time }

func (c *tick) now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func newTestInventory(t *testing.T, store storage.Store) (*Inventory, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)
	clock := &tick{t: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)}

	inv, err := New(context.Background(), persistence.NewGateway(store, logger), Options{
		IDs:    &seqIDs{},
		Clock:  clock.now,
		Logger: logger,
	})
	require.NoError(t, err)
	return inv, logs
}

func gadget(qty int) models.ProductInput {
	return models.ProductInput{
		Name: "Gadget", SKU: "G-1", Category: "Electronics",
		Quantity: qty, CostPrice: 10, SellingPrice: 15, Supplier: "Globex",
	}
}

func TestInventory_OperationsRecordActivities(t *testing.T) {
	inv, _ := newTestInventory(t, storage.NewMemoryStore())
	ctx := context.Background()

	p, err := inv.AddProduct(ctx, gadget(10))
	require.NoError(t, err)

	_, err = inv.Restock(ctx, p.ID, 5)
	require.NoError(t, err)
	_, err = inv.Sell(ctx, p.ID, 3)
	require.NoError(t, err)
	_, err = inv.StockOut(ctx, StockOutInput{ProductID: p.ID, Quantity: 2, Reason: "Damaged", Notes: "cracked"})
	require.NoError(t, err)

	in := gadget(0)
	in.Name = "Gadget Pro"
	_, err = inv.UpdateProduct(ctx, p.ID, in)
	require.NoError(t, err)
	_, err = inv.DeleteProduct(ctx, p.ID)
	require.NoError(t, err)

	var messages []string
	for _, e := range inv.RecentActivities(0) {
		messages = append(messages, e.Message)
	}
	require.Equal(t, []string{
		"Deleted product: Gadget Pro",
		"Updated product: Gadget Pro",
		"Stock out: Gadget - 2 units (damaged)",
		"Sold Gadget: -3 units",
		"Restocked Gadget: +5 units",
		"Added new product: Gadget",
	}, messages)

	require.Len(t, inv.RecentTransactions(0), 3)
	require.Len(t, inv.RecentStockOuts(0), 1)
	require.Empty(t, inv.Products())
}

func TestInventory_FailedOperationsLeaveNoTrace(t *testing.T) {
	inv, _ := newTestInventory(t, storage.NewMemoryStore())
	ctx := context.Background()

	p, err := inv.AddProduct(ctx, gadget(2))
	require.NoError(t, err)

	_, err = inv.Sell(ctx, p.ID, 3)
	require.ErrorIs(t, err, repo.ErrInsufficientStock)
	_, err = inv.Restock(ctx, "missing", 1)
	require.ErrorIs(t, err, repo.ErrNotFound)
	_, err = inv.AddProduct(ctx, models.ProductInput{Quantity: -1})
	require.ErrorIs(t, err, repo.ErrValidation)

	require.Len(t, inv.RecentActivities(0), 1)
	require.Empty(t, inv.RecentTransactions(0))
	got, err := inv.Product(p.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.Quantity)
}

func TestInventory_StatePersistsAcrossRestarts(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	first, _ := newTestInventory(t, store)
	p, err := first.AddProduct(ctx, gadget(10))
	require.NoError(t, err)
	_, err = first.Sell(ctx, p.ID, 4)
	require.NoError(t, err)
	_, err = first.SetThreshold(ctx, 6)
	require.NoError(t, err)

	second, _ := newTestInventory(t, store)
	got, err := second.Product(p.ID)
	require.NoError(t, err)
	require.Equal(t, 6, got.Quantity)
	require.Equal(t, models.StatusLowStock, got.Status)
	require.Equal(t, 6, second.Threshold())
	require.Len(t, second.RecentTransactions(0), 1)
	require.Equal(t, "Low stock threshold set to 6", second.RecentActivities(1)[0].Message)
}

func TestInventory_SetThresholdRederivesStatus(t *testing.T) {
	inv, _ := newTestInventory(t, storage.NewMemoryStore())
	ctx := context.Background()

	p, err := inv.AddProduct(ctx, gadget(7))
	require.NoError(t, err)
	require.Equal(t, models.StatusInStock, p.Status)

	stored, err := inv.SetThreshold(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, 10, stored)

	got, err := inv.Product(p.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusLowStock, got.Status)
	require.Equal(t, 1, inv.DashboardTotals().LowStockCount)
	require.Len(t, inv.LowStockReport(), 1)

	stored, err = inv.SetThreshold(ctx, -3)
	require.NoError(t, err)
	require.Equal(t, models.DefaultLowStockThreshold, stored)
}

func TestInventory_LowStockAlert(t *testing.T) {
	inv, logs := newTestInventory(t, storage.NewMemoryStore())
	ctx := context.Background()

	p, err := inv.AddProduct(ctx, gadget(8))
	require.NoError(t, err)

	_, err = inv.Sell(ctx, p.ID, 1)
	require.NoError(t, err)
	require.Zero(t, logs.FilterMessage("product below threshold").Len())

	_, err = inv.Sell(ctx, p.ID, 4)
	require.NoError(t, err)
	alerts := logs.FilterMessage("product below threshold").All()
	require.Len(t, alerts, 1)
	require.Equal(t, zapcore.WarnLevel, alerts[0].Level)
	require.Equal(t, int64(3), alerts[0].ContextMap()["quantity"])
}

func TestInventory_ImportExportClear(t *testing.T) {
	inv, _ := newTestInventory(t, storage.NewMemoryStore())
	ctx := context.Background()

	_, err := inv.ImportSnapshot(ctx, []byte(`{"products":[`))
	require.ErrorIs(t, err, repo.ErrParse)
	require.Empty(t, inv.RecentActivities(0))

	st, err := inv.ImportSnapshot(ctx, []byte(`{
		"products": [
			{"id": "a", "name": "Bolt", "quantity": 0, "status": "In Stock"},
			{"id": "b", "name": "Nut", "quantity": 40}
		],
		"lowStockThreshold": 12
	}`))
	require.NoError(t, err)
	require.Len(t, st.Products, 2)
	require.Equal(t, models.StatusOutOfStock, st.Products[0].Status)
	require.Equal(t, models.StatusInStock, st.Products[1].Status)
	require.Equal(t, 12, inv.Threshold())
	require.Equal(t, "Imported 2 products", inv.RecentActivities(1)[0].Message)

	snap := inv.ExportSnapshot()
	require.Len(t, snap.Products, 2)
	require.Equal(t, 12, snap.LowStockThreshold)

	_, err = inv.Restock(ctx, "a", 3)
	require.NoError(t, err)

	require.NoError(t, inv.ClearAll(ctx))
	require.Empty(t, inv.Products())
	require.Empty(t, inv.RecentTransactions(0))
	require.Empty(t, inv.RecentStockOuts(0))
	require.Equal(t, 12, inv.Threshold())
	require.Len(t, inv.RecentActivities(0), 3)
}

func TestInventory_ProductMovements(t *testing.T) {
	inv, _ := newTestInventory(t, storage.NewMemoryStore())
	ctx := context.Background()

	a, err := inv.AddProduct(ctx, gadget(5))
	require.NoError(t, err)
	b, err := inv.AddProduct(ctx, gadget(5))
	require.NoError(t, err)
	_, err = inv.Restock(ctx, a.ID, 1)
	require.NoError(t, err)
	_, err = inv.Restock(ctx, b.ID, 1)
	require.NoError(t, err)
	_, err = inv.Sell(ctx, a.ID, 2)
	require.NoError(t, err)

	txs, total, err := inv.ProductMovements(a.ID, repo.MovementFilter{})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Equal(t, models.TransactionSale, txs[0].Type)

	_, _, err = inv.ProductMovements("nope", repo.MovementFilter{})
	require.ErrorIs(t, err, repo.ErrNotFound)
}

type failingStore struct {
	storage.Store
	fail bool
}

func (s *failingStore) Set(ctx context.Context, values map[string]string) error {
	if s.fail {
		return errors.New("disk full")
	}
	return s.Store.Set(ctx, values)
}

func TestInventory_PersistFailureIsReported(t *testing.T) {
	store := &failingStore{Store: storage.NewMemoryStore()}
	inv, logs := newTestInventory(t, store)
	ctx := context.Background()

	store.fail = true
	p, err := inv.AddProduct(ctx, gadget(1))
	require.ErrorContains(t, err, "disk full")
	require.NotEmpty(t, p.ID)
	require.Equal(t, 1, logs.FilterMessage("failed to persist inventory").Len())
}
