// Package storage provides the string-keyed blob stores the inventory state is
// serialized into.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by Get for an absent key.
var ErrKeyNotFound = errors.New("storage: key not found")

// Store is a string-keyed blob store. Set writes all values in one batch.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, values map[string]string) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Driver      string
	BoltPath    string
	RedisAddr   string
	RedisPrefix string
	PostgresURL string
}

// Open builds the Store named by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "", "bolt":
		return OpenBolt(opts.BoltPath)
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		return OpenRedis(ctx, opts.RedisAddr, opts.RedisPrefix)
	case "postgres":
		return OpenPostgres(ctx, opts.PostgresURL)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", opts.Driver)
	}
}
