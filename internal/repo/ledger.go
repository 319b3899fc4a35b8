package repo

import (
	"strings"

	"github.com/araddon/dateparse"

	"github.com/rogerio-castellano/inventory-ledger/internal/models"
)

// DateLayout is the format of a stock-out effective date.
const DateLayout = "2006-01-02"

// Ledger owns the append-only stock transaction and stock-out logs. Quantities
// are changed only through the catalog, and every check precedes the mutation.
type Ledger struct {
	catalog      *Catalog
	transactions []models.StockTransaction
	stockOuts    []models.StockOutRecord
	ids          IDGenerator
	now          Clock
}

// LedgerOption customises a Ledger.
type LedgerOption func(*Ledger)

// WithLedgerIDs replaces the default snowflake generator.
func WithLedgerIDs(ids IDGenerator) LedgerOption {
	return func(l *Ledger) { l.ids = ids }
}

// WithLedgerClock replaces the wall clock used for timestamps.
func WithLedgerClock(now Clock) LedgerOption {
	return func(l *Ledger) { l.now = now }
}

// NewLedger creates an empty ledger over catalog.
func NewLedger(catalog *Catalog, opts ...LedgerOption) *Ledger {
	l := &Ledger{
		catalog:      catalog,
		transactions: []models.StockTransaction{},
		stockOuts:    []models.StockOutRecord{},
		now:          systemClock,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.ids == nil {
		l.ids = defaultIDs()
	}
	return l
}

func (l *Ledger) lookup(productID string, quantity int) (models.Product, error) {
	p, ok := l.catalog.Find(productID)
	if !ok {
		return models.Product{}, ErrNotFound
	}
	if quantity <= 0 {
		return models.Product{}, invalid("quantity", "Quantity must be greater than zero")
	}
	return p, nil
}

func (l *Ledger) record(p models.Product, typ models.TransactionType, quantity int, reason string) models.StockTransaction {
	tx := models.StockTransaction{
		ID:          l.ids.NewID(),
		ProductID:   p.ID,
		ProductName: p.Name,
		Type:        typ,
		Quantity:    quantity,
		Reason:      reason,
		Timestamp:   l.now(),
	}
	l.transactions = append(l.transactions, tx)
	return tx
}

// Restock adds quantity units to the product and logs a restock transaction.
func (l *Ledger) Restock(productID string, quantity int) (models.StockTransaction, error) {
	if _, err := l.lookup(productID, quantity); err != nil {
		return models.StockTransaction{}, err
	}
	p, err := l.catalog.AdjustQuantity(productID, quantity)
	if err != nil {
		return models.StockTransaction{}, err
	}
	return l.record(p, models.TransactionRestock, quantity, ""), nil
}

// Sell removes quantity units from the product and logs a sale. Selling more than
// is in stock fails with ErrInsufficientStock; there is no partial fulfilment.
func (l *Ledger) Sell(productID string, quantity int) (models.StockTransaction, error) {
	if _, err := l.lookup(productID, quantity); err != nil {
		return models.StockTransaction{}, err
	}
	p, err := l.catalog.AdjustQuantity(productID, -quantity)
	if err != nil {
		return models.StockTransaction{}, err
	}
	return l.record(p, models.TransactionSale, quantity, ""), nil
}

// StockOut removes stock for a tracked reason. It appends a stock-out transaction
// to the general log and a StockOutRecord to the reason-coded log. An empty date
// means today.
func (l *Ledger) StockOut(productID string, quantity int, reason, date, notes string) (models.StockOutRecord, error) {
	p, err := l.lookup(productID, quantity)
	if err != nil {
		return models.StockOutRecord{}, err
	}
	if strings.TrimSpace(reason) == "" {
		return models.StockOutRecord{}, invalid("reason", "Reason is required")
	}
	r, ok := models.ParseStockOutReason(reason)
	if !ok {
		return models.StockOutRecord{}, invalid("reason", "Unknown stock-out reason "+reason)
	}
	if quantity > p.Quantity {
		return models.StockOutRecord{}, &ValidationError{
			Field:       "quantity",
			Description: "Quantity exceeds available stock",
			Err:         ErrInsufficientStock,
		}
	}

	today := l.now()
	effective := today.Format(DateLayout)
	if strings.TrimSpace(date) != "" {
		t, err := dateparse.ParseIn(date, today.Location())
		if err != nil {
			return models.StockOutRecord{}, invalid("date", "Invalid date "+date)
		}
		effective = t.Format(DateLayout)
	}

	p, err = l.catalog.AdjustQuantity(productID, -quantity)
	if err != nil {
		return models.StockOutRecord{}, err
	}
	tx := l.record(p, models.TransactionStockOut, quantity, string(r))

	rec := models.StockOutRecord{
		ID:          l.ids.NewID(),
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    quantity,
		Reason:      r,
		Date:        effective,
		Notes:       notes,
		Timestamp:   tx.Timestamp,
	}
	l.stockOuts = append(l.stockOuts, rec)
	return rec, nil
}

func recent[T any](items []T, n int) []T {
	if n <= 0 || n > len(items) {
		n = len(items)
	}
	out := make([]T, 0, n)
	for i := len(items) - 1; i >= len(items)-n; i-- {
		out = append(out, items[i])
	}
	return out
}

// RecentTransactions returns the n most recently appended transactions, newest
// first. Order follows append order, not timestamps. n <= 0 returns all.
func (l *Ledger) RecentTransactions(n int) []models.StockTransaction {
	return recent(l.transactions, n)
}

// RecentStockOuts returns the n most recently appended stock-out records, newest first.
func (l *Ledger) RecentStockOuts(n int) []models.StockOutRecord {
	return recent(l.stockOuts, n)
}

// TransactionsByProduct returns a product's movements, newest first, filtered by
// date range and paginated, plus the total number of matches.
func (l *Ledger) TransactionsByProduct(productID string, mf MovementFilter) ([]models.StockTransaction, int) {
	filtered := []models.StockTransaction{}
	for _, tx := range recent(l.transactions, 0) {
		if tx.ProductID != productID {
			continue
		}
		if (mf.Since != nil && tx.Timestamp.Before(*mf.Since)) ||
			(mf.Until != nil && tx.Timestamp.After(*mf.Until)) {
			continue
		}
		filtered = append(filtered, tx)
	}

	start, end := page(len(filtered), mf.Offset, mf.Limit)
	return filtered[start:end], len(filtered)
}

// Transactions returns the full transaction log in append order.
func (l *Ledger) Transactions() []models.StockTransaction {
	out := make([]models.StockTransaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// StockOuts returns the full stock-out log in append order.
func (l *Ledger) StockOuts() []models.StockOutRecord {
	out := make([]models.StockOutRecord, len(l.stockOuts))
	copy(out, l.stockOuts)
	return out
}

// Replace swaps in whole logs, e.g. after a load or import.
func (l *Ledger) Replace(transactions []models.StockTransaction, stockOuts []models.StockOutRecord) {
	l.transactions = append([]models.StockTransaction{}, transactions...)
	l.stockOuts = append([]models.StockOutRecord{}, stockOuts...)
}
