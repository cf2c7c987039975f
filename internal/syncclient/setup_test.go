package syncclient

import (
	"context"
	"net"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/cache"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/config"
)

func TestOpenCacheFile(t *testing.T) {
	cfg := config.Defaults()
	cfg.Client.CachePath = filepath.Join(t.TempDir(), "events.json")

	store, closeCache, err := OpenCache(cfg)
	require.NoError(t, err)
	defer closeCache()

	fc, ok := store.(*cache.FileCache)
	require.True(t, ok)
	assert.Equal(t, cfg.Client.CachePath, fc.Path())
}

func TestOpenCacheRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)

	cfg := config.Defaults()
	cfg.Client.CacheBackend = "redis"
	cfg.Redis.Host = host
	cfg.Redis.Port = port
	cfg.Client.APIURL = "http://127.0.0.1:1"

	c, closeCache, err := NewFromConfig(cfg, WithProbe(false))
	require.NoError(t, err)
	defer closeCache()

	// API_URL points nowhere, so the create is recorded locally and mirrored to Redis.
	_, err = c.Create(context.Background(), glucoseInput)
	require.NoError(t, err)
	assert.True(t, mr.Exists(cfg.Client.CacheKey))
}

func TestOpenCacheUnknownBackend(t *testing.T) {
	cfg := config.Defaults()
	cfg.Client.CacheBackend = "s3"

	_, _, err := OpenCache(cfg)
	assert.ErrorContains(t, err, "unknown cache backend")
}
