package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/logger"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "petDiabetesEvents", cfg.Client.CacheKey)
	assert.True(t, cfg.Client.Probe)
	assert.Equal(t, logger.LevelInfo, cfg.Logger.Level)
	assert.False(t, cfg.IsProduction())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: production
db:
  driver: sqlite
  path: /tmp/eventos.db
client:
  api_url: http://api.internal:8080
  timeout: 3s
logger:
  level: debug
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "/tmp/eventos.db", cfg.DB.Path)
	assert.Equal(t, "http://api.internal:8080", cfg.Client.APIURL)
	assert.Equal(t, 5*time.Second, cfg.Client.Timeout)
	assert.Equal(t, logger.LevelDebug, cfg.Logger.Level)
	assert.Equal(t, "text", cfg.Logger.Format)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("API_TIMEOUT", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "API_TIMEOUT")
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.DB.Driver = "mongo"
	cfg.Client.CacheBackend = "disk"
	cfg.Client.APIURL = "localhost"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
	assert.Contains(t, err.Error(), "CACHE_BACKEND")
	assert.Contains(t, err.Error(), "API_URL")
}

func TestRedisAddr(t *testing.T) {
	assert.Equal(t, "cache:6380", RedisConfig{Host: "cache", Port: "6380"}.Addr())
}

func TestLoggerOptions(t *testing.T) {
	lc := LoggerConfig{LevelName: "debug", Level: logger.LevelDebug, OutputPath: "stdout", Format: "text"}
	assert.Equal(t, logger.Config{Level: logger.LevelDebug, OutputPath: "stdout", Format: "text"}, lc.Options())
}
