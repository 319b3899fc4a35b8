package repo

import (
	"strings"

	"github.com/rogerio-castellano/inventory-ledger/internal/models"
)

// ProductFilter narrows a product listing. Zero values match everything.
type ProductFilter struct {
	Search   string
	Category string
	Status   models.Status
	MinQty   *int
	MaxQty   *int
	Offset   *int
	Limit    *int
}

func matchesFilter(p models.Product, pf ProductFilter) bool {
	if pf.Search != "" {
		term := strings.ToLower(pf.Search)
		if !strings.Contains(strings.ToLower(p.Name), term) && !strings.Contains(strings.ToLower(p.SKU), term) {
			return false
		}
	}
	if pf.Category != "" && p.Category != pf.Category {
		return false
	}
	if pf.Status != "" && p.Status != pf.Status {
		return false
	}
	if pf.MinQty != nil && p.Quantity < *pf.MinQty {
		return false
	}
	if pf.MaxQty != nil && p.Quantity > *pf.MaxQty {
		return false
	}
	return true
}

// page applies offset/limit to n items and returns the slice bounds.
func page(n int, offset, limit *int) (int, int) {
	start := 0
	if offset != nil {
		start = clamp(*offset, 0, n)
	}
	end := n
	if limit != nil && *limit > 0 && *limit < n-start {
		end = start + *limit
	}
	return start, end
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
