// Package cache — TTL key-value кэш поверх Redis. Если Redis недоступен
// на старте, кэш работает на map в памяти процесса.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

type Client struct {
	redis  *redis.Client
	logger *slog.Logger
	now    func() time.Time

	mu     sync.RWMutex
	memory map[string]memoryEntry
}

// New подключается к Redis по addr; пустой addr или неудачный ping
// переключают кэш в режим fallback без ошибки.
func New(ctx context.Context, addr, password string, db int, logger *slog.Logger) *Client {
	c := &Client{
		logger: logger,
		now:    func() time.Time { return time.Now() },
		memory: make(map[string]memoryEntry),
	}

	if addr == "" {
		logger.Warn("redis addr not configured, using in-memory cache")
		return c
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis not available, using in-memory cache", slog.Any("error", err))
		_ = client.Close()
		return c
	}

	logger.Info("redis connected", slog.String("addr", addr))
	c.redis = client
	return c
}

// Get десериализует значение в dest и сообщает, был ли ключ найден.
// Ошибки кэша неотличимы от промаха.
func (c *Client) Get(ctx context.Context, key string, dest any) bool {
	if c.redis != nil {
		raw, err := c.redis.Get(ctx, key).Bytes()
		if err != nil {
			if err != redis.Nil {
				c.logger.Warn("cache get failed", slog.String("key", key), slog.Any("error", err))
			}
			return false
		}
		return json.Unmarshal(raw, dest) == nil
	}

	c.mu.RLock()
	entry, ok := c.memory[key]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expiresAt) {
		return false
	}
	return json.Unmarshal(entry.data, dest) == nil
}

// Set сохраняет значение с TTL, best-effort.
func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache marshal failed", slog.String("key", key), slog.Any("error", err))
		return
	}

	if c.redis != nil {
		if err := c.redis.Set(ctx, key, raw, ttl).Err(); err != nil {
			c.logger.Warn("cache set failed", slog.String("key", key), slog.Any("error", err))
		}
		return
	}

	c.mu.Lock()
	c.memory[key] = memoryEntry{data: raw, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

func (c *Client) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}

	if c.redis != nil {
		if err := c.redis.Del(ctx, keys...).Err(); err != nil {
			c.logger.Warn("cache delete failed", slog.Any("error", err))
		}
		return
	}

	c.mu.Lock()
	for _, key := range keys {
		delete(c.memory, key)
	}
	c.mu.Unlock()
}

func (c *Client) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}
