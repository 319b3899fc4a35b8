package repo

import (
	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/inventory-ledger/internal/models"
)

// Metrics is the aggregation engine. Every view is recomputed on demand from the
// catalog and ledger; nothing is cached.
type Metrics struct {
	catalog *Catalog
	ledger  *Ledger
}

var _ MetricsRepository = (*Metrics)(nil)

// NewMetrics builds the aggregation engine over catalog and ledger.
func NewMetrics(catalog *Catalog, ledger *Ledger) *Metrics {
	return &Metrics{catalog: catalog, ledger: ledger}
}

func isLowStock(p models.Product, threshold int) bool {
	return p.Quantity > 0 && p.Quantity <= threshold
}

func isOutOfStock(p models.Product) bool {
	return p.Quantity == 0
}

// DashboardTotals implements MetricsRepository.
func (m *Metrics) DashboardTotals() DashboardTotals {
	t := DashboardTotals{}
	threshold := m.catalog.Threshold()
	products := m.catalog.List()

	value := decimal.Zero
	profit := decimal.Zero
	for _, p := range products {
		t.ProductCount++
		t.TotalQuantity += p.Quantity
		if isLowStock(p, threshold) {
			t.LowStockCount++
		}
		if isOutOfStock(p) {
			t.OutOfStockCount++
		}
		qty := decimal.NewFromInt(int64(p.Quantity))
		cost := decimal.NewFromFloat(p.CostPrice)
		sell := decimal.NewFromFloat(p.SellingPrice)
		value = value.Add(qty.Mul(cost))
		profit = profit.Add(qty.Mul(sell.Sub(cost)))
	}
	t.InventoryValue = value.InexactFloat64()
	t.EstimatedProfit = profit.InexactFloat64()

	transactions := m.ledger.Transactions()
	t.TotalMovements = len(transactions)

	counts := make(map[string]int)
	for _, tx := range transactions {
		counts[tx.ProductID]++
	}
	for _, p := range products {
		if c := counts[p.ID]; c > t.MostMovedProduct.MovementCount {
			t.MostMovedProduct = MostMovedProduct{ProductID: p.ID, Name: p.Name, MovementCount: c}
		}
	}
	return t
}

// LowStockReport lists products with 0 < quantity <= threshold.
func (m *Metrics) LowStockReport() []models.Product {
	threshold := m.catalog.Threshold()
	return m.catalog.Filter(func(p models.Product) bool { return isLowStock(p, threshold) })
}

// OutOfStockReport lists products with zero quantity.
func (m *Metrics) OutOfStockReport() []models.Product {
	return m.catalog.Filter(isOutOfStock)
}

// CategoryBreakdown sums quantity per category, in first-seen order.
func (m *Metrics) CategoryBreakdown() []CategoryTotal {
	index := map[string]int{}
	out := []CategoryTotal{}
	for _, p := range m.catalog.List() {
		i, ok := index[p.Category]
		if !ok {
			i = len(out)
			index[p.Category] = i
			out = append(out, CategoryTotal{Category: p.Category})
		}
		out[i].Quantity += p.Quantity
	}
	return out
}

// StockMovementSummary returns the n newest transactions.
func (m *Metrics) StockMovementSummary(n int) []models.StockTransaction {
	return m.ledger.RecentTransactions(n)
}
