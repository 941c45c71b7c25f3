package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
)

// RateLimiter is a fixed-window limiter shared by every API instance through redis.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{rdb: rdb, limit: limit, window: window, prefix: "rl"}
}

// Middleware fails open when redis is unreachable. A nil limiter lets every
// request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.rdb == nil {
			c.Next()
			return
		}

		key := rl.prefix + ":" + c.FullPath() + ":" + c.ClientIP()
		count, err := rl.incr(c.Request.Context(), key)
		if err != nil {
			logger.Warn("rate limiter error", "err", err)
			c.Next()
			return
		}
		if count > int64(rl.limit) {
			httperr.Write(c, http.StatusTooManyRequests, "rate_limited", "Too many requests.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) incr(ctx context.Context, key string) (int64, error) {
	ms := rl.window.Milliseconds()
	res, err := fixedWindowScript.Run(ctx, rl.rdb, []string{key}, ms).Result()
	if err != nil {
		return 0, err
	}
	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}
