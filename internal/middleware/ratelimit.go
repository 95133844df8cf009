package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/gigflow/api/pkg/response"
)

type RateLimiter struct {
	redis *redis.Client
}

func NewRateLimiter(redisClient *redis.Client) *RateLimiter {
	return &RateLimiter{redis: redisClient}
}

// Limit creates a rate limiting middleware. Authenticated requests are
// counted per user, anonymous ones per client IP.
func (rl *RateLimiter) Limit(keyPrefix string, maxRequests int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := GetUserID(c)
		if caller == "" {
			caller = c.IP()
		}

		key := fmt.Sprintf("ratelimit:%s:%s", keyPrefix, caller)
		ctx := context.Background()

		// Increment counter
		count, err := rl.redis.Incr(ctx, key).Result()
		if err != nil {
			// If Redis fails, allow the request
			return c.Next()
		}

		// Set expiration on first request
		if count == 1 {
			rl.redis.Expire(ctx, key, window)
		}

		if count > int64(maxRequests) {
			ttl, _ := rl.redis.TTL(ctx, key).Result()
			c.Set("Retry-After", fmt.Sprintf("%d", int(ttl.Seconds())))
			return response.RateLimited(c)
		}

		// Add rate limit headers
		c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", maxRequests))
		c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", maxRequests-int(count)))

		return c.Next()
	}
}

// AuthLimit guards login/register against brute force.
func (rl *RateLimiter) AuthLimit(maxPer15Min int) fiber.Handler {
	return rl.Limit("auth", maxPer15Min, 15*time.Minute)
}

// BidLimit guards bid creation against spamming.
func (rl *RateLimiter) BidLimit(maxPerMin int) fiber.Handler {
	return rl.Limit("bids", maxPerMin, time.Minute)
}

// APILimit is the general per-caller request budget.
func (rl *RateLimiter) APILimit(maxPerMin int) fiber.Handler {
	return rl.Limit("api", maxPerMin, time.Minute)
}
