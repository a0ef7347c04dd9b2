package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const PostCacheTTL = 5 * time.Minute

// postsListKey caches the full post listing; it is evicted on every write.
const postsListKey = "posts:all"

type PostCache struct {
	client *redis.Client
}

func NewPostCache(client *redis.Client) *PostCache {
	return &PostCache{client: client}
}

func (c *PostCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}
	return []byte(val), nil
}

func (c *PostCache) Set(ctx context.Context, key string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, jsonData, PostCacheTTL).Err()
}

func (c *PostCache) Delete(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}

// PostKey builds the cache key for a single post.
func PostKey(postID string) string {
	return fmt.Sprintf("post:%s", postID)
}

// PostsKey builds the cache key for the post listing.
func PostsKey() string {
	return postsListKey
}
