package middleware

// StrictRateLimiter guards credential endpoints (register, login).
// Burst: 5 requests, sustained: 1 request per 2 seconds per client.
func StrictRateLimiter() *RateLimiterConfig {
	return &RateLimiterConfig{
		Capacity:   5,
		RefillRate: 0.5,
	}
}
