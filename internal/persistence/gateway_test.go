package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/inventory-ledger/internal/models"
	"github.com/rogerio-castellano/inventory-ledger/internal/storage"
)

var stamp = time.Date(2025, 5, 4, 10, 30, 0, 123000000, time.UTC)

func sampleState() State {
	return State{
		Products: []models.Product{{
			ID: "1", Name: "Widget", SKU: "SKU1", Category: "Tools", Quantity: 4,
			CostPrice: 2.5, SellingPrice: 5, Supplier: "Acme", Image: "data:image/png;base64,AAAA",
			DateAdded: stamp, Status: models.StatusLowStock,
		}},
		StockTransactions: []models.StockTransaction{{
			ID: "10", ProductID: "1", ProductName: "Widget", Type: models.TransactionSale, Quantity: 6, Timestamp: stamp,
		}},
		StockOutHistory: []models.StockOutRecord{{
			ID: "11", ProductID: "1", ProductName: "Widget", Quantity: 1, Reason: models.ReasonDamaged,
			Date: "2025-05-04", Notes: "dropped", Timestamp: stamp,
		}},
		LowStockThreshold: 8,
	}
}

func TestGateway_SaveLoad(t *testing.T) {
	store := storage.NewMemoryStore()
	g := NewGateway(store, nil)
	ctx := context.Background()

	want := sampleState()
	require.NoError(t, g.Save(ctx, want))

	raw, err := store.Get(ctx, KeyLowStockThreshold)
	require.NoError(t, err)
	require.Equal(t, "8", raw)

	got, err := g.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestGateway_LoadFailsOpen(t *testing.T) {
	store := storage.NewMemoryStore()
	g := NewGateway(store, nil)
	ctx := context.Background()

	got, err := g.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, State{
		Products:          []models.Product{},
		StockTransactions: []models.StockTransaction{},
		StockOutHistory:   []models.StockOutRecord{},
		LowStockThreshold: models.DefaultLowStockThreshold,
	}, got)

	require.NoError(t, store.Set(ctx, map[string]string{
		KeyProducts:          `[{"id":"1","name":"ok","quantity":-2}]`,
		KeyStockTransactions: `{not json`,
		KeyStockOutHistory:   `[{"id":"s1","productId":"1","quantity":1,"reason":"expired"}]`,
		KeyLowStockThreshold: "banana",
	}))
	got, err = g.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, got.Products)
	require.Empty(t, got.StockTransactions)
	require.Len(t, got.StockOutHistory, 1)
	require.Equal(t, models.DefaultLowStockThreshold, got.LowStockThreshold)
}

type brokenStore struct{ storage.Store }

func (brokenStore) Get(context.Context, string) (string, error) {
	return "", errors.New("connection reset")
}

func TestGateway_LoadReturnsStoreErrors(t *testing.T) {
	g := NewGateway(brokenStore{}, nil)
	_, err := g.Load(context.Background())
	require.ErrorContains(t, err, "connection reset")
}

func TestGateway_Activities(t *testing.T) {
	store := storage.NewMemoryStore()
	g := NewGateway(store, nil)
	ctx := context.Background()

	entries, err := g.LoadActivities(ctx)
	require.NoError(t, err)
	require.Empty(t, entries)

	want := []models.ActivityEntry{{Message: "Added new product: Widget", Type: models.ActivityAdd, Timestamp: stamp}}
	require.NoError(t, g.SaveActivities(ctx, want))

	require.NoError(t, g.Save(ctx, State{}))
	entries, err = g.LoadActivities(ctx)
	require.NoError(t, err)
	require.Equal(t, want, entries)
}

func TestGateway_ExportImportRoundTrip(t *testing.T) {
	g := NewGateway(storage.NewMemoryStore(), nil)
	want := sampleState()

	snap := g.ExportSnapshot(want)
	require.False(t, snap.ExportDate.IsZero())

	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &keys))
	for _, k := range []string{"products", "stockTransactions", "stockOutHistory", "lowStockThreshold", "exportDate"} {
		require.Contains(t, keys, k)
	}

	got, err := g.ImportSnapshot(data)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestGateway_ImportDefaults(t *testing.T) {
	g := NewGateway(storage.NewMemoryStore(), nil)

	got, err := g.ImportSnapshot([]byte(`{"products":[{"id":"a","name":"A","quantity":1}]}`))
	require.NoError(t, err)
	require.Len(t, got.Products, 1)
	require.Empty(t, got.StockTransactions)
	require.Empty(t, got.StockOutHistory)
	require.Equal(t, models.DefaultLowStockThreshold, got.LowStockThreshold)

	got, err = g.ImportSnapshot([]byte(`{"lowStockThreshold":"3"}`))
	require.NoError(t, err)
	require.Equal(t, 3, got.LowStockThreshold)
}

func TestGateway_ImportRejectsMalformed(t *testing.T) {
	g := NewGateway(storage.NewMemoryStore(), nil)

	for _, payload := range []string{
		``,
		`null`,
		`{"products": [`,
		`[1, 2, 3]`,
		`{"products": {"id": "x"}}`,
		`{"products": [{"id": "1", "name": "a"}, {"id": "1", "name": "b"}]}`,
		`{"products": [{"id": "", "name": "nameless id"}]}`,
		`{"products": [{"id": "1", "name": "a", "quantity": -4}]}`,
		`{"products": [{"id": "1", "name": "  ", "quantity": 4}]}`,
		`{"products": [{"id": "1", "quantity": 4}]}`,
	} {
		_, err := g.ImportSnapshot([]byte(payload))
		require.ErrorIs(t, err, ErrParse, "payload %q", payload)
	}
}
