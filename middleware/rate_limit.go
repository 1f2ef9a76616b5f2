package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/n0cod3develper-byte/Documental/logger"
	"github.com/n0cod3develper-byte/Documental/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// LoginRateLimit caps login attempts per client IP inside a fixed window.
// Redis being down must not lock everyone out, so errors fail open.
func LoginRateLimit(client *redis.Client, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:login:%s", c.ClientIP())
		ctx := c.Request.Context()

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.Warnf("rate limit check failed: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			if err := client.Expire(ctx, key, window).Err(); err != nil {
				logger.Warnf("rate limit expire failed: %v", err)
			}
		}

		if count > int64(max) {
			utils.Error(c, http.StatusTooManyRequests, "too many login attempts, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
