package main

import (
	"net/http"
	"time"

	"github.com/eatsexchange/eats-exchange-server/handlers"
	"github.com/eatsexchange/eats-exchange-server/internal/access"
	"github.com/eatsexchange/eats-exchange-server/internal/config"
	listinghandler "github.com/eatsexchange/eats-exchange-server/internal/listing/handler"
	listingservice "github.com/eatsexchange/eats-exchange-server/internal/listing/service"
	requesthandler "github.com/eatsexchange/eats-exchange-server/internal/request/handler"
	requestservice "github.com/eatsexchange/eats-exchange-server/internal/request/service"
	"github.com/eatsexchange/eats-exchange-server/internal/revocation"
	"github.com/eatsexchange/eats-exchange-server/internal/storage"
	"github.com/eatsexchange/eats-exchange-server/internal/tokens"
	"github.com/eatsexchange/eats-exchange-server/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// app holds everything the router needs. Optional collaborators (idp,
// images, redis) are nil when not configured.
type app struct {
	cfg      *config.Config
	policy   access.Policy
	listings listingservice.Service
	requests requestservice.Service
	tokens   *tokens.Service
	deny     *revocation.Denylist
	idp      handlers.IDTokenVerifier
	images   storage.ImageStore
	redis    *redis.Client
	checks   map[string]handlers.Check
}

func newRouter(a *app) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(), middleware.CORS(a.cfg.CORS.AllowedOrigins))

	if a.cfg.RateLimit.Enabled {
		r.Use(middleware.Identify(a.cfg.Cookie.Name, a.tokens))
		if a.cfg.RateLimit.UseRedis && a.redis != nil {
			win := time.Duration(a.cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(a.redis, a.cfg.RateLimit.RPS, a.cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(a.cfg.RateLimit.RPS, a.cfg.RateLimit.Burst))
		}
	}

	var rev middleware.RevocationChecker
	if a.deny.Enabled() {
		rev = a.deny
	}
	guard := middleware.CookieAuth(a.cfg.Cookie.Name, a.tokens, rev)
	routes := access.NewRouter(r, a.policy, guard)

	handlers.RegisterHealth(r, a.checks)
	cookie := tokens.Cookie{Name: a.cfg.Cookie.Name, Domain: a.cfg.Cookie.Domain, Secure: a.cfg.Cookie.Secure}
	handlers.NewAuthHandler(a.tokens, cookie, a.idp, a.deny).Register(routes)
	listinghandler.RegisterListingRoutes(routes, a.listings)
	requesthandler.RegisterRequestRoutes(routes, a.requests)
	if a.images != nil {
		handlers.NewImageHandler(a.images).Register(routes)
	}
	handlers.RegisterSwagger(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})
	return r
}
