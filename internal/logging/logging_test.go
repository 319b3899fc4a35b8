package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/rogerio-castellano/inventory-ledger/internal/config"
)

func TestNew_Level(t *testing.T) {
	logger, err := New(config.Log{Mode: "production", Level: "warn"})
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	require.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	_, err = New(config.Log{Level: "loud"})
	require.Error(t, err)
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.log")
	logger, err := New(config.Log{Level: "info", File: path})
	require.NoError(t, err)

	logger.Info("product below threshold")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"product below threshold"`)
}
