package middleware

import (
	"net/http"
	"sync"

	"github.com/eatsexchange/eats-exchange-server/pkg/metrics"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterKey buckets by email when the request carries a verified identity,
// either from CookieAuth or from Identify ahead of the limiter, and by client
// IP otherwise.
func limiterKey(c *gin.Context) string {
	if email, ok := ClaimsEmail(c); ok {
		return "email:" + email
	}
	if email := c.GetString(IdentityKey); email != "" {
		return "email:" + email
	}
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}

// RateLimitMiddleware returns a Gin middleware enforcing a token-bucket per-key limit.
// rps = allowed events per second, burst = maximum tokens in bucket.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	// per-key limiter store, one per middleware instance
	var limiters sync.Map // map[string]*rate.Limiter

	return func(c *gin.Context) {
		key := limiterKey(c)
		v, _ := limiters.LoadOrStore(key, rate.NewLimiter(rate.Limit(rps), burst))
		if !v.(*rate.Limiter).Allow() {
			c.Header("Retry-After", "1")
			metrics.RateLimitRejected.WithLabelValues("memory").Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Rate limit exceeded"})
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
		c.Next()
	}
}
