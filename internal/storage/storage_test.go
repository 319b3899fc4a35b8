package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "test:products")
	require.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, map[string]string{
		"test:products":          `[{"id":"1"}]`,
		"test:lowStockThreshold": "7",
	}))

	v, err := s.Get(ctx, "test:products")
	require.NoError(t, err)
	require.Equal(t, `[{"id":"1"}]`, v)

	require.NoError(t, s.Set(ctx, map[string]string{"test:products": `[]`}))
	v, err = s.Get(ctx, "test:products")
	require.NoError(t, err)
	require.Equal(t, `[]`, v)

	v, err = s.Get(ctx, "test:lowStockThreshold")
	require.NoError(t, err)
	require.Equal(t, "7", v)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestBoltStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.db")
	s, err := OpenBolt(path)
	require.NoError(t, err)
	exerciseStore(t, s)

	require.NoError(t, s.Set(context.Background(), map[string]string{"test:activities": "[]"}))
	require.NoError(t, s.Close())

	reopened, err := OpenBolt(path)
	require.NoError(t, err)
	defer reopened.Close()
	v, err := reopened.Get(context.Background(), "test:activities")
	require.NoError(t, err)
	require.Equal(t, "[]", v)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStore(client, "inventory:")
	defer s.Close()

	exerciseStore(t, s)

	require.NoError(t, s.Set(context.Background(), map[string]string{"products": "[]"}))
	require.True(t, mr.Exists("inventory:products"))
}

func TestOpenRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := OpenRedis(context.Background(), addr, "")
	require.Error(t, err)
}

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	s, err := OpenPostgres(context.Background(), url)
	require.NoError(t, err)
	defer s.Close()

	exerciseStore(t, s)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "floppy"})
	require.Error(t, err)

	s, err := Open(context.Background(), Options{Driver: "memory"})
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, s)
}
