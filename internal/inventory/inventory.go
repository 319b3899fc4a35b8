// Package inventory is the state container behind every UI-facing operation. It
// owns one catalog, ledger and activity log, applies each operation atomically,
// records the activity entry and snapshots the result through the gateway.
package inventory

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/inventory-ledger/internal/models"
	"github.com/rogerio-castellano/inventory-ledger/internal/persistence"
	"github.com/rogerio-castellano/inventory-ledger/internal/repo"
)

// Inventory serialises all calls; core operations are synchronous and run to
// completion before the next one starts.
type Inventory struct {
	mu       sync.Mutex
	catalog  *repo.Catalog
	ledger   *repo.Ledger
	activity *repo.ActivityLog
	metrics  *repo.Metrics
	gateway  *persistence.Gateway
	logger   *zap.Logger
}

// Options tune the container. Zero values use the defaults.
type Options struct {
	IDs    repo.IDGenerator
	Clock  repo.Clock
	Logger *zap.Logger
}

// New loads persisted state through gateway and returns a ready container.
func New(ctx context.Context, gateway *persistence.Gateway, opts Options) (*Inventory, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var catalogOpts []repo.CatalogOption
	var ledgerOpts []repo.LedgerOption
	if opts.IDs != nil {
		catalogOpts = append(catalogOpts, repo.WithIDs(opts.IDs))
		ledgerOpts = append(ledgerOpts, repo.WithLedgerIDs(opts.IDs))
	}
	if opts.Clock != nil {
		catalogOpts = append(catalogOpts, repo.WithClock(opts.Clock))
		ledgerOpts = append(ledgerOpts, repo.WithLedgerClock(opts.Clock))
	}

	catalog := repo.NewCatalog(catalogOpts...)
	ledger := repo.NewLedger(catalog, ledgerOpts...)
	inv := &Inventory{
		catalog:  catalog,
		ledger:   ledger,
		activity: repo.NewActivityLog(opts.Clock),
		metrics:  repo.NewMetrics(catalog, ledger),
		gateway:  gateway,
		logger:   logger,
	}

	st, err := gateway.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory: load: %w", err)
	}
	inv.apply(st)

	entries, err := gateway.LoadActivities(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory: load activities: %w", err)
	}
	inv.activity.Replace(entries)

	logger.Info("inventory loaded",
		zap.Int("products", catalog.Len()),
		zap.Int("transactions", len(st.StockTransactions)),
		zap.Int("threshold", catalog.Threshold()))
	return inv, nil
}

func (inv *Inventory) apply(st persistence.State) {
	inv.catalog.Replace(st.Products, st.LowStockThreshold)
	inv.ledger.Replace(st.StockTransactions, st.StockOutHistory)
}

func (inv *Inventory) state() persistence.State {
	return persistence.State{
		Products:          inv.catalog.List(),
		StockTransactions: inv.ledger.Transactions(),
		StockOutHistory:   inv.ledger.StockOuts(),
		LowStockThreshold: inv.catalog.Threshold(),
	}
}

// commit records the activity entry and writes state and activities. The
// in-memory change stays applied when persisting fails; the error is returned.
func (inv *Inventory) commit(ctx context.Context, message string, typ models.ActivityType) error {
	inv.activity.Record(message, typ)

	if err := inv.gateway.Save(ctx, inv.state()); err != nil {
		inv.logger.Error("failed to persist inventory", zap.Error(err))
		return err
	}
	if err := inv.gateway.SaveActivities(ctx, inv.activity.Entries()); err != nil {
		inv.logger.Error("failed to persist activities", zap.Error(err))
		return err
	}
	return nil
}

func (inv *Inventory) alertIfLow(p models.Product) {
	if p.Status == models.StatusInStock {
		return
	}
	inv.logger.Warn("product below threshold",
		zap.String("product_id", p.ID),
		zap.String("name", p.Name),
		zap.Int("quantity", p.Quantity),
		zap.Int("threshold", inv.catalog.Threshold()),
		zap.String("status", string(p.Status)))
}

// AddProduct creates a product.
func (inv *Inventory) AddProduct(ctx context.Context, in models.ProductInput) (models.Product, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	p, err := inv.catalog.Add(in)
	if err != nil {
		return models.Product{}, err
	}
	return p, inv.commit(ctx, "Added new product: "+p.Name, models.ActivityAdd)
}

// UpdateProduct overwrites a product's editable fields.
func (inv *Inventory) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (models.Product, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	p, err := inv.catalog.Update(id, in)
	if err != nil {
		return models.Product{}, err
	}
	return p, inv.commit(ctx, "Updated product: "+p.Name, models.ActivityEdit)
}

// DeleteProduct removes a product. Its transactions stay in the ledger.
func (inv *Inventory) DeleteProduct(ctx context.Context, id string) (models.Product, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	p, err := inv.catalog.Remove(id)
	if err != nil {
		return models.Product{}, err
	}
	return p, inv.commit(ctx, "Deleted product: "+p.Name, models.ActivityDelete)
}

// Restock adds stock to a product.
func (inv *Inventory) Restock(ctx context.Context, id string, quantity int) (models.StockTransaction, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	tx, err := inv.ledger.Restock(id, quantity)
	if err != nil {
		return models.StockTransaction{}, err
	}
	msg := fmt.Sprintf("Restocked %s: +%d units", tx.ProductName, quantity)
	return tx, inv.commit(ctx, msg, models.ActivityRestock)
}

// Sell removes sold stock from a product.
func (inv *Inventory) Sell(ctx context.Context, id string, quantity int) (models.StockTransaction, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	tx, err := inv.ledger.Sell(id, quantity)
	if err != nil {
		return models.StockTransaction{}, err
	}
	if p, ok := inv.catalog.Find(id); ok {
		inv.alertIfLow(p)
	}
	msg := fmt.Sprintf("Sold %s: -%d units", tx.ProductName, quantity)
	return tx, inv.commit(ctx, msg, models.ActivitySale)
}

// StockOutInput describes a reason-coded removal of stock.
type StockOutInput struct {
	ProductID string
	Quantity  int
	Reason    string
	Date      string
	Notes     string
}

// StockOut removes stock for a tracked reason.
func (inv *Inventory) StockOut(ctx context.Context, in StockOutInput) (models.StockOutRecord, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	rec, err := inv.ledger.StockOut(in.ProductID, in.Quantity, in.Reason, in.Date, in.Notes)
	if err != nil {
		return models.StockOutRecord{}, err
	}
	if p, ok := inv.catalog.Find(in.ProductID); ok {
		inv.alertIfLow(p)
	}
	msg := fmt.Sprintf("Stock out: %s - %d units (%s)", rec.ProductName, rec.Quantity, rec.Reason)
	return rec, inv.commit(ctx, msg, models.ActivityStockOut)
}

// SetThreshold changes the low-stock threshold and re-derives every status.
func (inv *Inventory) SetThreshold(ctx context.Context, value int) (int, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	stored := inv.catalog.SetThreshold(value)
	return stored, inv.commit(ctx, fmt.Sprintf("Low stock threshold set to %d", stored), models.ActivitySettings)
}

// ImportSnapshot replaces products, ledger and threshold with the contents of an
// export file. Nothing changes when the payload is malformed.
func (inv *Inventory) ImportSnapshot(ctx context.Context, data []byte) (persistence.State, error) {
	st, err := inv.gateway.ImportSnapshot(data)
	if err != nil {
		return persistence.State{}, err
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	inv.apply(st)
	msg := fmt.Sprintf("Imported %d products", len(st.Products))
	return inv.state(), inv.commit(ctx, msg, models.ActivityImport)
}

// ExportSnapshot returns the current state in the JSON export format.
func (inv *Inventory) ExportSnapshot() persistence.Snapshot {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.gateway.ExportSnapshot(inv.state())
}

// ClearAll empties products and both logs. The threshold and the activity log are kept.
func (inv *Inventory) ClearAll(ctx context.Context) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	inv.apply(persistence.State{LowStockThreshold: inv.catalog.Threshold()})
	return inv.commit(ctx, "All data cleared", models.ActivityClear)
}
