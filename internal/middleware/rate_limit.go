package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"store-pos/pkg/logger"
)

// Counter is the part of *redis.Client the limiter needs.
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// LoginRateLimiter allows limit attempts per client IP within window.
// A nil counter or a Redis failure lets requests through.
func LoginRateLimiter(counter Counter, limit int, window time.Duration, log logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if counter == nil || limit <= 0 {
			return c.Next()
		}

		ctx := c.UserContext()
		key := "rate_limit:login:" + c.IP()

		count, err := counter.Incr(ctx, key).Result()
		if err != nil {
			log.Warnf("rate limiter unavailable: %s", err.Error())
			return c.Next()
		}
		if count == 1 {
			if err := counter.Expire(ctx, key, window).Err(); err != nil {
				log.Warnf("rate limiter expire %s: %s", key, err.Error())
			}
		}

		if count > int64(limit) {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(window.Seconds())))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"messages": []fiber.Map{{"level": "error", "text": "Too many login attempts. Try again later."}},
			})
		}
		return c.Next()
	}
}
