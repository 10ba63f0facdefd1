package security

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	redis *redis.Client
}

func NewRateLimiter(redisClient *redis.Client) *RateLimiter {
	return &RateLimiter{redis: redisClient}
}

// Limit wraps a handler with a fixed-window per-IP counter in Redis. The
// window resets when the key expires; Redis being down fails open so the
// door queue never stalls on the limiter.
func (r *RateLimiter) Limit(name string, max int, window time.Duration, next func(*core.RequestEvent) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		key := fmt.Sprintf("ratelimit:%s:%s", name, e.RealIP())

		count, err := r.redis.Incr(e.Request.Context(), key).Result()
		if err == nil {
			if count == 1 {
				r.redis.Expire(e.Request.Context(), key, window)
			}
			if count > int64(max) {
				return apis.NewApiError(429, "Too many requests", nil)
			}
		}

		return next(e)
	}
}
