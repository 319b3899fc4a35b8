package models

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Status is the stock level of a product.
type Status string

const (
	StatusInStock    Status = "In Stock"
	StatusLowStock   Status = "Low Stock"
	StatusOutOfStock Status = "Out of Stock"
)

// DefaultLowStockThreshold applies when no valid threshold is configured.
const DefaultLowStockThreshold = 5

// DeriveStatus maps a quantity and a low-stock threshold to a Status.
func DeriveStatus(quantity, threshold int) Status {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity <= threshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// NormalizeThreshold coerces negative thresholds to the default.
func NormalizeThreshold(threshold int) int {
	if threshold < 0 {
		return DefaultLowStockThreshold
	}
	return threshold
}

// ParseThreshold reads a threshold from loosely typed input (strings from storage,
// float64 from JSON). Anything non-numeric or negative yields the default.
func ParseThreshold(v any) int {
	switch t := v.(type) {
	case nil, bool:
		return DefaultLowStockThreshold
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return DefaultLowStockThreshold
		}
		return NormalizeThreshold(n)
	case int, int32, int64, float32, float64, json.Number:
		n, err := cast.ToIntE(t)
		if err != nil {
			return DefaultLowStockThreshold
		}
		return NormalizeThreshold(n)
	}
	return DefaultLowStockThreshold
}

// ParseStatus accepts the display form or a slug ("low-stock") of a Status.
func ParseStatus(s string) (Status, bool) {
	switch s {
	case string(StatusInStock), "in-stock", "in_stock":
		return StatusInStock, true
	case string(StatusLowStock), "low-stock", "low_stock":
		return StatusLowStock, true
	case string(StatusOutOfStock), "out-of-stock", "out_of_stock":
		return StatusOutOfStock, true
	}
	return "", false
}
