package models

import (
	"strings"
	"time"
)

// TransactionType enumerates the kinds of stock movement.
type TransactionType string

const (
	TransactionRestock  TransactionType = "restock"
	TransactionSale     TransactionType = "sale"
	TransactionStockOut TransactionType = "stock-out"
)

// StockTransaction records a single quantity change. ProductName is a snapshot taken
// when the movement happened and does not follow later renames.
type StockTransaction struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Type        TransactionType `json:"type"`
	Quantity    int             `json:"quantity"`
	Reason      string          `json:"reason"`
	Timestamp   time.Time       `json:"timestamp"`
}

// StockOutReason categorises a deliberate removal of stock.
type StockOutReason string

const (
	ReasonDamaged     StockOutReason = "damaged"
	ReasonExpired     StockOutReason = "expired"
	ReasonLost        StockOutReason = "lost"
	ReasonReturned    StockOutReason = "returned"
	ReasonInternalUse StockOutReason = "internal-use"
	ReasonOther       StockOutReason = "other"
)

var stockOutReasons = []StockOutReason{
	ReasonDamaged, ReasonExpired, ReasonLost, ReasonReturned, ReasonInternalUse, ReasonOther,
}

// StockOutReasons lists the accepted reasons.
func StockOutReasons() []StockOutReason {
	out := make([]StockOutReason, len(stockOutReasons))
	copy(out, stockOutReasons)
	return out
}

// ParseStockOutReason matches s case-insensitively against the accepted reasons.
func ParseStockOutReason(s string) (StockOutReason, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")
	for _, r := range stockOutReasons {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// StockOutRecord is the reason-coded view of a stock-out. Date is the user-chosen
// effective day (YYYY-MM-DD) and may differ from Timestamp.
type StockOutRecord struct {
	ID          string         `json:"id"`
	ProductID   string         `json:"productId"`
	ProductName string         `json:"productName"`
	Quantity    int            `json:"quantity"`
	Reason      StockOutReason `json:"reason"`
	Date        string         `json:"date"`
	Notes       string         `json:"notes"`
	Timestamp   time.Time      `json:"timestamp"`
}
