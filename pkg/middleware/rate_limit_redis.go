package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/eatsexchange/eats-exchange-server/pkg/logger"
	"github.com/eatsexchange/eats-exchange-server/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "ratelimit:"

// RedisRateLimitMiddleware is a fixed-window limiter shared by all replicas.
// Each window admits rps*window+burst requests per key. The counter and its
// expiry are written in one MULTI so a crash cannot leave an immortal key.
// When Redis is unreachable requests are let through.
func RedisRateLimitMiddleware(client *redis.Client, rps float64, burst int, window time.Duration) gin.HandlerFunc {
	if client == nil {
		return RateLimitMiddleware(rps, burst)
	}
	if window < time.Second {
		window = time.Second
	}
	secs := int64(window / time.Second)
	limit := int64(rps*float64(secs)) + int64(burst)
	retryAfter := strconv.FormatInt(secs, 10)

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := rateLimitKeyPrefix + limiterKey(c) + ":" + strconv.FormatInt(time.Now().Unix()/secs, 10)

		var incr *redis.IntCmd
		_, err := client.TxPipelined(ctx, func(p redis.Pipeliner) error {
			incr = p.Incr(ctx, key)
			p.Expire(ctx, key, window+time.Second)
			return nil
		})
		if err != nil {
			logger.Warnf("rate limiter: redis unavailable, admitting request: %v", err)
			c.Next()
			return
		}
		if incr.Val() > limit {
			c.Header("Retry-After", retryAfter)
			metrics.RateLimitRejected.WithLabelValues("redis").Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Rate limit exceeded"})
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("redis").Inc()
		c.Next()
	}
}
