package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/config"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/logger"
)

// stateTTL clears abandoned conversations.
const stateTTL = 24 * time.Hour

// RedisManager manages chat states using Redis
type RedisManager struct {
	client *redis.Client
}

// NewRedisManager creates a new Redis-based state manager
func NewRedisManager(cfg config.RedisConfig) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisManagerWithClient(client), nil
}

// NewRedisManagerWithClient uses an existing client.
func NewRedisManagerWithClient(client *redis.Client) *RedisManager {
	return &RedisManager{client: client}
}

func stateKey(chatID int64) string {
	return fmt.Sprintf("chat:%d:state", chatID)
}

func tempKey(chatID int64) string {
	return fmt.Sprintf("chat:%d:temp", chatID)
}

// SetUserState sets the state for a chat with TTL
func (m *RedisManager) SetUserState(chatID int64, state string) {
	if err := m.client.Set(context.Background(), stateKey(chatID), state, stateTTL).Err(); err != nil {
		logger.Warn("Failed to save chat state", "chat_id", chatID, "error", err)
	}
}

// GetUserState gets the state for a chat
func (m *RedisManager) GetUserState(chatID int64) string {
	state, err := m.client.Get(context.Background(), stateKey(chatID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("Failed to read chat state", "chat_id", chatID, "error", err)
		}
		return None
	}
	return state
}

// SetTempData sets temporary data for a chat
func (m *RedisManager) SetTempData(chatID int64, key string, value string) {
	ctx := context.Background()
	pipe := m.client.TxPipeline()
	pipe.HSet(ctx, tempKey(chatID), key, value)
	pipe.Expire(ctx, tempKey(chatID), stateTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn("Failed to save chat data", "chat_id", chatID, "key", key, "error", err)
	}
}

// GetTempData gets temporary data for a chat
func (m *RedisManager) GetTempData(chatID int64, key string) (string, bool) {
	value, err := m.client.HGet(context.Background(), tempKey(chatID), key).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

// ClearTempData clears all temporary data for a chat
func (m *RedisManager) ClearTempData(chatID int64) {
	m.client.Del(context.Background(), tempKey(chatID))
}

// Close closes the Redis connection
func (m *RedisManager) Close() error {
	return m.client.Close()
}
