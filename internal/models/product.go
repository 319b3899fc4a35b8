package models

import "time"

// Product represents a product entity in the inventory system.
// Status is derived from Quantity and the low-stock threshold and is never authoritative.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	SKU          string    `json:"sku"`
	Category     string    `json:"category"`
	Quantity     int       `json:"quantity"`
	CostPrice    float64   `json:"costPrice"`
	SellingPrice float64   `json:"sellingPrice"`
	Supplier     string    `json:"supplier"`
	Image        string    `json:"image"`
	DateAdded    time.Time `json:"dateAdded"`
	Status       Status    `json:"status"`
}

// ProductInput carries the user-editable fields of a product.
type ProductInput struct {
	Name         string
	SKU          string
	Category     string
	Quantity     int
	CostPrice    float64
	SellingPrice float64
	Supplier     string
	Image        string
}
