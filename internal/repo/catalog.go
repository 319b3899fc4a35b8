package repo

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/rogerio-castellano/inventory-ledger/internal/models"
)

// Catalog owns the set of products and the low-stock threshold. It is the single
// source of truth for quantities; stored status always matches DeriveStatus after
// any call returns.
type Catalog struct {
	products  []models.Product
	threshold int
	ids       IDGenerator
	now       Clock
}

// CatalogOption customises a Catalog.
type CatalogOption func(*Catalog)

// WithIDs replaces the default snowflake generator.
func WithIDs(ids IDGenerator) CatalogOption {
	return func(c *Catalog) { c.ids = ids }
}

// WithClock replaces the wall clock used for dateAdded.
func WithClock(now Clock) CatalogOption {
	return func(c *Catalog) { c.now = now }
}

// NewCatalog creates an empty catalog with the default threshold.
func NewCatalog(opts ...CatalogOption) *Catalog {
	c := &Catalog{
		products:  []models.Product{},
		threshold: models.DefaultLowStockThreshold,
		now:       systemClock,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.ids == nil {
		c.ids = defaultIDs()
	}
	return c
}

func validateProduct(in models.ProductInput) error {
	var errs []error
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, invalid("name", "Name is required"))
	}
	if in.Quantity < 0 {
		errs = append(errs, invalid("quantity", "Quantity cannot be negative"))
	}
	if in.CostPrice < 0 {
		errs = append(errs, invalid("costPrice", "Cost price cannot be negative"))
	}
	if in.SellingPrice < 0 {
		errs = append(errs, invalid("sellingPrice", "Selling price cannot be negative"))
	}
	return errors.Join(errs...)
}

// setQuantity is the only place a stored quantity changes; it re-derives status.
func (c *Catalog) setQuantity(p *models.Product, qty int) {
	p.Quantity = qty
	p.Status = models.DeriveStatus(qty, c.threshold)
}

func (c *Catalog) indexOf(id string) int {
	for i, p := range c.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func fill(p *models.Product, in models.ProductInput) {
	p.Name = in.Name
	p.SKU = in.SKU
	p.Category = in.Category
	p.CostPrice = in.CostPrice
	p.SellingPrice = in.SellingPrice
	p.Supplier = in.Supplier
	p.Image = in.Image
}

// Add validates and stores a new product. An empty SKU gets a suggested one.
func (c *Catalog) Add(in models.ProductInput) (models.Product, error) {
	if err := validateProduct(in); err != nil {
		return models.Product{}, err
	}
	if strings.TrimSpace(in.SKU) == "" {
		in.SKU = c.SuggestSKU()
	}

	p := models.Product{
		ID:        c.ids.NewID(),
		DateAdded: c.now(),
	}
	fill(&p, in)
	c.setQuantity(&p, in.Quantity)
	c.products = append(c.products, p)
	return p, nil
}

// Update overwrites every mutable field of the product. The id and the original
// dateAdded are kept.
func (c *Catalog) Update(id string, in models.ProductInput) (models.Product, error) {
	i := c.indexOf(id)
	if i < 0 {
		return models.Product{}, ErrNotFound
	}
	if err := validateProduct(in); err != nil {
		return models.Product{}, err
	}

	p := models.Product{ID: id, DateAdded: c.products[i].DateAdded}
	fill(&p, in)
	c.setQuantity(&p, in.Quantity)
	c.products[i] = p
	return p, nil
}

// Remove deletes the product and returns the removed record.
func (c *Catalog) Remove(id string) (models.Product, error) {
	i := c.indexOf(id)
	if i < 0 {
		return models.Product{}, ErrNotFound
	}
	removed := c.products[i]
	c.products = append(c.products[:i], c.products[i+1:]...)
	return removed, nil
}

// Find returns the product with the given id.
func (c *Catalog) Find(id string) (models.Product, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return models.Product{}, false
	}
	return c.products[i], true
}

// List returns every product in insertion order.
func (c *Catalog) List() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len reports the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Filter returns the products matching pred, in insertion order.
func (c *Catalog) Filter(pred func(models.Product) bool) []models.Product {
	out := []models.Product{}
	for _, p := range c.products {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

// Search applies pf and returns one page of matches plus the total match count.
func (c *Catalog) Search(pf ProductFilter) ([]models.Product, int) {
	filtered := c.Filter(func(p models.Product) bool { return matchesFilter(p, pf) })
	start, end := page(len(filtered), pf.Offset, pf.Limit)
	return filtered[start:end], len(filtered)
}

// Categories lists distinct non-empty categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := map[string]bool{}
	out := []string{}
	for _, p := range c.products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

// Threshold returns the current low-stock threshold.
func (c *Catalog) Threshold() int {
	return c.threshold
}

// SetThreshold stores the threshold (negative values become the default) and
// re-derives the status of every product. It returns the stored value.
func (c *Catalog) SetThreshold(value int) int {
	c.threshold = models.NormalizeThreshold(value)
	for i := range c.products {
		c.setQuantity(&c.products[i], c.products[i].Quantity)
	}
	return c.threshold
}

// AdjustQuantity adds delta to the product's quantity. A result below zero is
// rejected with ErrInsufficientStock and nothing changes.
func (c *Catalog) AdjustQuantity(id string, delta int) (models.Product, error) {
	i := c.indexOf(id)
	if i < 0 {
		return models.Product{}, ErrNotFound
	}
	p := &c.products[i]
	if delta > 0 && p.Quantity > math.MaxInt-delta {
		return models.Product{}, invalid("quantity", "Quantity exceeds the maximum stock level")
	}
	if p.Quantity+delta < 0 {
		return models.Product{}, fmt.Errorf("%w: %d available, %d requested", ErrInsufficientStock, p.Quantity, -delta)
	}
	c.setQuantity(p, p.Quantity+delta)
	return *p, nil
}

// Replace swaps in a whole product set, e.g. after a load or import. Status is
// re-derived for every product.
func (c *Catalog) Replace(products []models.Product, threshold int) {
	c.threshold = models.NormalizeThreshold(threshold)
	c.products = make([]models.Product, len(products))
	copy(c.products, products)
	for i := range c.products {
		c.setQuantity(&c.products[i], c.products[i].Quantity)
	}
}

// SuggestSKU builds "SKU" + the last six digits of the millisecond clock + three random digits.
func (c *Catalog) SuggestSKU() string {
	ms := c.now().UnixMilli() % 1_000_000
	return fmt.Sprintf("SKU%06d%03d", ms, rand.IntN(1000))
}
