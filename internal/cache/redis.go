package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/config"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/domain"
)

// RedisCache stores the snapshot under a single key without expiry.
type RedisCache struct {
	client *redis.Client
	key    string
}

// NewRedisCache connects to Redis and checks the connection.
func NewRedisCache(cfg config.RedisConfig, key string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisCacheWithClient(client, key), nil
}

// NewRedisCacheWithClient uses an existing client.
func NewRedisCacheWithClient(client *redis.Client, key string) *RedisCache {
	if key == "" {
		key = DefaultKey
	}
	return &RedisCache{client: client, key: key}
}

// Save overwrites the snapshot key.
func (c *RedisCache) Save(ctx context.Context, events []domain.Event) error {
	data, err := encode(events)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key, data, 0).Err(); err != nil {
		return fmt.Errorf("cache error writing %s: %w", c.key, err)
	}
	return nil
}

// Load reads the snapshot key.
func (c *RedisCache) Load(ctx context.Context) ([]domain.Event, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache error reading %s: %w", c.key, err)
	}

	events, err := decode(data)
	if err != nil {
		return nil, false, fmt.Errorf("corrupt JSON in %s: %w", c.key, err)
	}
	return events, true, nil
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
