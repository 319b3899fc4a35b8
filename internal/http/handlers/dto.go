package handlers

import (
	"github.com/rogerio-castellano/inventory-ledger/internal/models"
)

type ProductRequest struct {
	Name         string  `json:"name" validate:"required"`
	SKU          string  `json:"sku"`
	Category     string  `json:"category"`
	Quantity     int     `json:"quantity" validate:"gte=0"`
	CostPrice    float64 `json:"costPrice" validate:"gte=0"`
	SellingPrice float64 `json:"sellingPrice" validate:"gte=0"`
	Supplier     string  `json:"supplier"`
	Image        string  `json:"image"`
}

func (p ProductRequest) input() models.ProductInput {
	return models.ProductInput{
		Name:         p.Name,
		SKU:          p.SKU,
		Category:     p.Category,
		Quantity:     p.Quantity,
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		Supplier:     p.Supplier,
		Image:        p.Image,
	}
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []models.Product `json:"data"`
	Meta Meta             `json:"meta"`
}

type QuantityRequest struct {
	Quantity int `json:"quantity" validate:"gt=0"`
}

// MovementResult is returned by restock and sell.
type MovementResult struct {
	Product     models.Product          `json:"product"`
	Transaction models.StockTransaction `json:"transaction"`
}

type MovementsSearchResult struct {
	Data []models.StockTransaction `json:"data"`
	Meta Meta                      `json:"meta"`
}

type StockOutRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
	Reason    string `json:"reason" validate:"required"`
	Date      string `json:"date"`
	Notes     string `json:"notes"`
}

// ThresholdRequest accepts a number or a numeric string.
type ThresholdRequest struct {
	LowStockThreshold any `json:"lowStockThreshold"`
}

type SKUResponse struct {
	SKU string `json:"sku"`
}

type ImportDataResult struct {
	Products          int `json:"products"`
	StockTransactions int `json:"stockTransactions"`
	StockOutHistory   int `json:"stockOutHistory"`
	LowStockThreshold int `json:"lowStockThreshold"`
}

type ErrorsResponse struct {
	Errors []FieldError `json:"errors"`
}
