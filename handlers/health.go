package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/eatsexchange/eats-exchange-server/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

// RegisterHealth mounts GET / (banner), /health (liveness) and /ready, which
// runs every check and answers 503 if any fails.
func RegisterHealth(r gin.IRoutes, checks map[string]Check) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Eats Exchange Server is running")
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	names := make([]string, 0, len(checks))
	for n := range checks {
		names = append(names, n)
	}
	sort.Strings(names)

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := gin.H{}
		for _, n := range names {
			if err := checks[n](ctx); err != nil {
				logger.Warnf("readiness: %s: %v", n, err)
				results[n] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			results[n] = "ok"
		}
		state := "ready"
		if status != http.StatusOK {
			state = "not ready"
		}
		c.JSON(status, gin.H{"status": state, "checks": results})
	})
}
