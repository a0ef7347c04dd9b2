package middleware

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"postboard/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

//go:embed rate_limiter.lua
var luaScript string

// RateLimiterConfig holds rate limiter configuration
type RateLimiterConfig struct {
	Capacity   int     // Maximum number of tokens (max burst)
	RefillRate float64 // Tokens refilled per second
}

// DefaultRateLimiterConfig returns default rate limiter settings:
// 10 requests per second with burst capacity of 20.
func DefaultRateLimiterConfig() *RateLimiterConfig {
	return &RateLimiterConfig{
		Capacity:   20,
		RefillRate: 10.0,
	}
}

// RateLimiterMiddleware implements a token bucket in Redis via a Lua script.
// Buckets are keyed by client IP: the endpoints it guards run before any
// session is resolved, so IP is the only stable identity available.
func RateLimiterMiddleware(redisClient *redis.Client, config *RateLimiterConfig) gin.HandlerFunc {
	ctx := context.Background()
	scriptSHA, err := redisClient.ScriptLoad(ctx, luaScript).Result()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load Lua script for rate limiter")
	}

	return func(c *gin.Context) {
		key := ClientRateLimiterKey(c.ClientIP())
		now := time.Now().Unix()

		result, err := redisClient.EvalSha(ctx, scriptSHA, []string{key},
			config.Capacity,
			config.RefillRate,
			now,
		).Result()

		if err != nil {
			logrus.WithError(err).Error("Failed to execute rate limiter Lua script")
			// Fail open: allow request if Redis fails
			c.Next()
			return
		}

		allowed := result.(int64)
		if allowed == 0 {
			observability.IncRateLimited()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"message":     "Too many requests",
				"retry_after": fmt.Sprintf("%.1f seconds", 1.0/config.RefillRate),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// ClientRateLimiterKey builds the bucket key for a client address.
func ClientRateLimiterKey(ip string) string {
	return fmt.Sprintf("ratelimit:ip:%s", ip)
}
