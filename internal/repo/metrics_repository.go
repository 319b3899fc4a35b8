package repo

import "github.com/rogerio-castellano/inventory-ledger/internal/models"

type MostMovedProduct struct {
	ProductID     string `json:"product_id,omitempty"`
	Name          string `json:"name"`
	MovementCount int    `json:"movement_count"`
}

// DashboardTotals summarises the catalog for the dashboard.
type DashboardTotals struct {
	ProductCount     int              `json:"product_count"`
	TotalQuantity    int              `json:"total_quantity"`
	LowStockCount    int              `json:"low_stock_count"`
	OutOfStockCount  int              `json:"out_of_stock_count"`
	InventoryValue   float64          `json:"inventory_value"`
	EstimatedProfit  float64          `json:"estimated_profit"`
	TotalMovements   int              `json:"total_movements"`
	MostMovedProduct MostMovedProduct `json:"most_moved_product"`
}

// CategoryTotal is one bar of the category chart.
type CategoryTotal struct {
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

// MetricsRepository exposes the read-side views over catalog and ledger.
type MetricsRepository interface {
	DashboardTotals() DashboardTotals
	LowStockReport() []models.Product
	OutOfStockReport() []models.Product
	CategoryBreakdown() []CategoryTotal
	StockMovementSummary(n int) []models.StockTransaction
}
