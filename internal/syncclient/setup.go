package syncclient

import (
	"fmt"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/cache"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/config"
)

// OpenCache builds the cache backend selected by cfg. The returned close
// function is never nil.
func OpenCache(cfg *config.Config) (cache.Cache, func() error, error) {
	switch cfg.Client.CacheBackend {
	case "", "file":
		return cache.NewFileCache(cfg.Client.CachePath), func() error { return nil }, nil
	case "redis":
		rc, err := cache.NewRedisCache(cfg.Redis, cfg.Client.CacheKey)
		if err != nil {
			return nil, nil, err
		}
		return rc, rc.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Client.CacheBackend)
	}
}

// NewFromConfig builds an HTTP-backed client with the configured cache.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Client, func() error, error) {
	store, closeCache, err := OpenCache(cfg)
	if err != nil {
		return nil, nil, err
	}

	remote := NewHTTPRemote(cfg.Client.APIURL, cfg.Client.Timeout)
	opts = append([]Option{WithProbe(cfg.Client.Probe)}, opts...)
	return NewClient(remote, store, opts...), closeCache, nil
}
