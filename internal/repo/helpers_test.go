package repo

import (
	"strconv"
	"time"

	"github.com/rogerio-castellano/inventory-ledger/internal/models"
)

type seqIDs struct {
	prefix string
	n      int
}

func (s *seqIDs) NewID() string {
	s.n++
	return s.prefix + strconv.Itoa(s.n)
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestCatalog() (*Catalog, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	return NewCatalog(WithIDs(&seqIDs{prefix: "p"}), WithClock(clock.now)), clock
}

func newTestLedger() (*Catalog, *Ledger) {
	catalog, clock := newTestCatalog()
	ledger := NewLedger(catalog, WithLedgerIDs(&seqIDs{prefix: "t"}), WithLedgerClock(clock.now))
	return catalog, ledger
}

func widget(qty int) models.ProductInput {
	return models.ProductInput{
		Name:         "Widget",
		SKU:          "W-1",
		Category:     "Tools",
		Quantity:     qty,
		CostPrice:    2,
		SellingPrice: 5,
		Supplier:     "Acme",
	}
}
