package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimit is one fixed-window budget.
type RateLimit struct {
	Requests int
	Window   time.Duration
}

// RateLimiterMiddleware enforces per-client fixed-window budgets in redis,
// with separate buckets for reads and writes. Tracking taps are cheap but
// write the ledger on every request, so they get the tighter write budget
// while dashboard polling draws from the read one. Redis being unreachable
// fails open: a cache outage must not block completions.
func RateLimiterMiddleware(rdb *redis.Client, log *zap.Logger, read, write RateLimit) gin.HandlerFunc {
	return func(c *gin.Context) {
		budget, bucket := read, "read"
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			budget, bucket = write, "write"
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), bucket)

		count, err := rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			log.Warn("rate limiter skipped, redis error", zap.Error(err))
			c.Next()
			return
		}

		if count == 1 {
			if err := rdb.Expire(c.Request.Context(), key, budget.Window).Err(); err != nil {
				log.Warn("rate limiter expire failed, dropping key", zap.Error(err))
				rdb.Del(c.Request.Context(), key)
				c.Next()
				return
			}
		}

		ttl, err := rdb.TTL(c.Request.Context(), key).Result()
		if err != nil {
			ttl = budget.Window
		}

		resetTime := time.Now().Add(ttl).Unix()
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", budget.Requests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", max(0, int64(budget.Requests)-count)))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", resetTime))

		if count > int64(budget.Requests) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":     "error",
				"message":    "Too many requests. Slow down!",
				"retry_in_s": int(ttl.Seconds()),
			})
			return
		}

		c.Next()
	}
}
