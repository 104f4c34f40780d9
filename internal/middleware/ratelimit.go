package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy defines the behavior when the rate limit store (Redis) is unavailable.
type FailPolicy int

const (
	// FailOpen lets the write through when Redis cannot be reached.
	FailOpen FailPolicy = iota
	// FailClosed rejects the write with 503.
	FailClosed
)

var errNoRedis = errors.New("rate limit store not configured")

// WriteLimit is the budget of one write route.
type WriteLimit struct {
	// Name is the bucket prefix, e.g. "add_friend".
	Name   string
	Max    int
	Window time.Duration
	// Param keys the bucket by a route parameter (userId, thoughtId) instead
	// of the caller IP, so one user or thought cannot be flooded from many
	// addresses.
	Param  string
	Policy FailPolicy
}

// WriteLimiter enforces fixed-window budgets on mutating routes using Redis counters.
type WriteLimiter struct {
	rdb     *redis.Client
	enabled bool
}

// NewWriteLimiter returns a limiter backed by rdb. A disabled limiter passes
// every request through, which is how test and development runs are configured.
func NewWriteLimiter(rdb *redis.Client, enabled bool) *WriteLimiter {
	return &WriteLimiter{rdb: rdb, enabled: enabled}
}

// Allow counts one hit against key and reports whether it is within max for the current window.
func (l *WriteLimiter) Allow(ctx context.Context, key string, max int, window time.Duration) (bool, error) {
	if !l.enabled {
		return true, nil
	}
	if l.rdb == nil {
		return false, errNoRedis
	}

	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		return nil
	})
	if err != nil {
		return false, err
	}
	return incr.Val() <= int64(max), nil
}

// Route returns the middleware guarding one write route.
func (l *WriteLimiter) Route(limit WriteLimit) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := bucketKey(c, limit)

		allowed, err := l.Allow(c.UserContext(), key, limit.Max, limit.Window)
		if err != nil {
			Logger.WarnContext(c.UserContext(), "rate limit check failed",
				slog.String("limit", limit.Name),
				slog.String("error", err.Error()),
			)
			if limit.Policy == FailClosed {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "rate limit unavailable",
				})
			}
			return c.Next()
		}

		if !allowed {
			c.Set(fiber.HeaderRetryAfter, fmt.Sprintf("%d", int(limit.Window.Seconds())))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
			})
		}
		return c.Next()
	}
}

func bucketKey(c *fiber.Ctx, limit WriteLimit) string {
	if limit.Param != "" {
		if v := c.Params(limit.Param); v != "" {
			return fmt.Sprintf("rl:%s:%s:%s", limit.Name, limit.Param, v)
		}
	}
	return fmt.Sprintf("rl:%s:ip:%s", limit.Name, c.IP())
}
