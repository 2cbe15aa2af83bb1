package middleware

import (
	"net/http"
	"time"

	"github.com/AmineGaf/fraud-detection-system/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit applies a per-client fixed-window limit to the routes it wraps,
// keyed by client IP and request path.
func RateLimit(rdb *redis.Client, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := service.CheckAndSetRateLimit(
			c.Request.Context(), rdb, c.ClientIP(), c.FullPath(), window,
		)
		if err != nil {
			// Redis trouble should not lock everyone out of auth.
			c.Next()
			return
		}

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}

		c.Next()
	}
}
