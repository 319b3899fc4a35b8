package inventory

import (
	"github.com/rogerio-castellano/inventory-ledger/internal/models"
	"github.com/rogerio-castellano/inventory-ledger/internal/repo"
)

func (inv *Inventory) Product(id string) (models.Product, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	p, ok := inv.catalog.Find(id)
	if !ok {
		return models.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (inv *Inventory) Products() []models.Product {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.catalog.List()
}

func (inv *Inventory) SearchProducts(pf repo.ProductFilter) ([]models.Product, int) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.catalog.Search(pf)
}

func (inv *Inventory) Categories() []string {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.catalog.Categories()
}

func (inv *Inventory) Threshold() int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.catalog.Threshold()
}

func (inv *Inventory) SuggestSKU() string {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.catalog.SuggestSKU()
}

func (inv *Inventory) RecentTransactions(n int) []models.StockTransaction {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.ledger.RecentTransactions(n)
}

func (inv *Inventory) RecentStockOuts(n int) []models.StockOutRecord {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.ledger.RecentStockOuts(n)
}

// ProductMovements returns a product's movements, failing for unknown products.
func (inv *Inventory) ProductMovements(id string, mf repo.MovementFilter) ([]models.StockTransaction, int, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if _, ok := inv.catalog.Find(id); !ok {
		return nil, 0, repo.ErrNotFound
	}
	txs, total := inv.ledger.TransactionsByProduct(id, mf)
	return txs, total, nil
}

func (inv *Inventory) RecentActivities(n int) []models.ActivityEntry {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.activity.Recent(n)
}

func (inv *Inventory) DashboardTotals() repo.DashboardTotals {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.metrics.DashboardTotals()
}

func (inv *Inventory) LowStockReport() []models.Product {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.metrics.LowStockReport()
}

func (inv *Inventory) OutOfStockReport() []models.Product {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.metrics.OutOfStockReport()
}

func (inv *Inventory) CategoryBreakdown() []repo.CategoryTotal {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.metrics.CategoryBreakdown()
}

func (inv *Inventory) StockMovementSummary(n int) []models.StockTransaction {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.metrics.StockMovementSummary(n)
}
