package cart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":8081", cfg.Addr)
	require.Equal(t, "http://localhost:8082", cfg.StockURL)
	require.Equal(t, "cart.json", cfg.SnapshotFile)
	require.Empty(t, cfg.RedisAddr)
	require.False(t, cfg.Debug)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("CART_ADDR", ":9999")
	t.Setenv("CART_STOCK_URL", "http://stock.internal:8082")
	t.Setenv("CART_REDIS_ADDR", "redis:6379")
	t.Setenv("CART_DEBUG", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.Addr)
	require.Equal(t, "http://stock.internal:8082", cfg.StockURL)
	require.Equal(t, "redis:6379", cfg.RedisAddr)
	require.True(t, cfg.Debug)
}
