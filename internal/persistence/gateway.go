// Package persistence serializes inventory state to and from a storage.Store.
// It is the only package that touches storage.
package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/inventory-ledger/internal/models"
	"github.com/rogerio-castellano/inventory-ledger/internal/repo"
	"github.com/rogerio-castellano/inventory-ledger/internal/storage"
)

// Storage keys.
const (
	KeyProducts          = "products"
	KeyStockTransactions = "stockTransactions"
	KeyStockOutHistory   = "stockOutHistory"
	KeyLowStockThreshold = "lowStockThreshold"
	KeyActivities        = "activities"
)

// ErrParse is returned when an import payload is malformed.
var ErrParse = repo.ErrParse

// State is everything the gateway persists besides the activity log.
type State struct {
	Products          []models.Product
	StockTransactions []models.StockTransaction
	StockOutHistory   []models.StockOutRecord
	LowStockThreshold int
}

// Gateway reads and writes State through a Store.
type Gateway struct {
	store  storage.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewGateway builds a Gateway. A nil logger discards warnings.
func NewGateway(store storage.Store, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Save overwrites every collection and the threshold in a single batch.
func (g *Gateway) Save(ctx context.Context, st State) error {
	values := make(map[string]string, 4)
	for key, v := range map[string]any{
		KeyProducts:          orEmpty(st.Products),
		KeyStockTransactions: orEmpty(st.StockTransactions),
		KeyStockOutHistory:   orEmpty(st.StockOutHistory),
	} {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("persistence: encode %s: %w", key, err)
		}
		values[key] = string(data)
	}
	values[KeyLowStockThreshold] = strconv.Itoa(st.LowStockThreshold)

	if err := g.store.Set(ctx, values); err != nil {
		return fmt.Errorf("persistence: save: %w", err)
	}
	return nil
}

// Load reads every key. Missing or unparsable entries become empty collections
// (threshold: the default) and are logged; only store failures are returned.
func (g *Gateway) Load(ctx context.Context) (State, error) {
	st := State{LowStockThreshold: models.DefaultLowStockThreshold}

	if err := loadKey(ctx, g, KeyProducts, &st.Products); err != nil {
		return State{}, err
	}
	if err := validateProducts(st.Products); err != nil {
		g.logger.Warn("discarding stored products", zap.Error(err))
		st.Products = nil
	}
	if err := loadKey(ctx, g, KeyStockTransactions, &st.StockTransactions); err != nil {
		return State{}, err
	}
	if err := loadKey(ctx, g, KeyStockOutHistory, &st.StockOutHistory); err != nil {
		return State{}, err
	}

	raw, err := g.store.Get(ctx, KeyLowStockThreshold)
	switch {
	case errors.Is(err, storage.ErrKeyNotFound):
	case err != nil:
		return State{}, fmt.Errorf("persistence: load %s: %w", KeyLowStockThreshold, err)
	default:
		st.LowStockThreshold = models.ParseThreshold(raw)
	}

	st.Products = orEmpty(st.Products)
	st.StockTransactions = orEmpty(st.StockTransactions)
	st.StockOutHistory = orEmpty(st.StockOutHistory)
	return st, nil
}

func loadKey[T any](ctx context.Context, g *Gateway, key string, dst *[]T) error {
	raw, err := g.store.Get(ctx, key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("persistence: load %s: %w", key, err)
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		g.logger.Warn("stored value is corrupt, using empty collection", zap.String("key", key), zap.Error(err))
		return nil
	}
	*dst = out
	return nil
}

// SaveActivities overwrites the activity log key.
func (g *Gateway) SaveActivities(ctx context.Context, entries []models.ActivityEntry) error {
	data, err := json.Marshal(orEmpty(entries))
	if err != nil {
		return fmt.Errorf("persistence: encode %s: %w", KeyActivities, err)
	}
	if err := g.store.Set(ctx, map[string]string{KeyActivities: string(data)}); err != nil {
		return fmt.Errorf("persistence: save activities: %w", err)
	}
	return nil
}

// LoadActivities reads the activity log with the same fail-open policy as Load.
func (g *Gateway) LoadActivities(ctx context.Context) ([]models.ActivityEntry, error) {
	var entries []models.ActivityEntry
	if err := loadKey(ctx, g, KeyActivities, &entries); err != nil {
		return nil, err
	}
	return orEmpty(entries), nil
}

// Snapshot is the JSON export format.
type Snapshot struct {
	Products          []models.Product          `json:"products"`
	StockTransactions []models.StockTransaction `json:"stockTransactions"`
	StockOutHistory   []models.StockOutRecord   `json:"stockOutHistory"`
	LowStockThreshold int                       `json:"lowStockThreshold"`
	ExportDate        time.Time                 `json:"exportDate"`
}

// SnapshotFileName is the file name of an export or backup taken at t.
func SnapshotFileName(t time.Time) string {
	return "inventory_backup_" + t.Format("2006-01-02") + ".json"
}

// ExportSnapshot bundles st with the export time.
func (g *Gateway) ExportSnapshot(st State) Snapshot {
	return Snapshot{
		Products:          orEmpty(st.Products),
		StockTransactions: orEmpty(st.StockTransactions),
		StockOutHistory:   orEmpty(st.StockOutHistory),
		LowStockThreshold: st.LowStockThreshold,
		ExportDate:        g.now(),
	}
}

type importPayload struct {
	Products          []models.Product          `json:"products"`
	StockTransactions []models.StockTransaction `json:"stockTransactions"`
	StockOutHistory   []models.StockOutRecord   `json:"stockOutHistory"`
	LowStockThreshold any                       `json:"lowStockThreshold"`
}

// ImportSnapshot parses an export file completely before returning. Malformed
// input yields ErrParse and no State; missing keys default to empty / 5.
func (g *Gateway) ImportSnapshot(data []byte) (State, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return State{}, fmt.Errorf("%w: empty document", ErrParse)
	}

	var p importPayload
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := validateProducts(p.Products); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return State{
		Products:          orEmpty(p.Products),
		StockTransactions: orEmpty(p.StockTransactions),
		StockOutHistory:   orEmpty(p.StockOutHistory),
		LowStockThreshold: models.ParseThreshold(p.LowStockThreshold),
	}, nil
}

func validateProducts(products []models.Product) error {
	seen := make(map[string]bool, len(products))
	for i, p := range products {
		switch {
		case p.ID == "":
			return fmt.Errorf("product %d: missing id", i)
		case strings.TrimSpace(p.Name) == "":
			return fmt.Errorf("product %s: missing name", p.ID)
		case seen[p.ID]:
			return fmt.Errorf("product %d: duplicate id %s", i, p.ID)
		case p.Quantity < 0:
			return fmt.Errorf("product %d: negative quantity", i)
		}
		seen[p.ID] = true
	}
	return nil
}
