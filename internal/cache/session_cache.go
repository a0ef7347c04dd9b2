package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Sessions are revocable, so cached copies must not outlive a revoked row by
// much; the TTL only bounds staleness for entries the eviction path missed.
const SessionCacheTTL = 30 * time.Minute

type SessionCache struct {
	client *redis.Client
}

func NewSessionCache(client *redis.Client) *SessionCache {
	return &SessionCache{client: client}
}

func (c *SessionCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}
	return []byte(val), nil
}

func (c *SessionCache) Set(ctx context.Context, key string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, jsonData, SessionCacheTTL).Err()
}

func (c *SessionCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// SessionKey builds the cache key for a session token.
func SessionKey(token string) string {
	return fmt.Sprintf("session:token:%s", token)
}
