package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/eatsexchange/eats-exchange-server/handlers"
	"github.com/eatsexchange/eats-exchange-server/internal/access"
	"github.com/eatsexchange/eats-exchange-server/internal/apierror"
	"github.com/eatsexchange/eats-exchange-server/internal/config"
	"github.com/eatsexchange/eats-exchange-server/internal/database"
	listingservice "github.com/eatsexchange/eats-exchange-server/internal/listing/service"
	"github.com/eatsexchange/eats-exchange-server/internal/oidc"
	requestservice "github.com/eatsexchange/eats-exchange-server/internal/request/service"
	"github.com/eatsexchange/eats-exchange-server/internal/revocation"
	"github.com/eatsexchange/eats-exchange-server/internal/storage"
	"github.com/eatsexchange/eats-exchange-server/internal/tokens"
	"github.com/eatsexchange/eats-exchange-server/pkg/logger"
	"github.com/eatsexchange/eats-exchange-server/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	logger.Infof("config loaded: env=%s mongo=%v redis=%v oidc=%v minio=%v", cfg.Server.Environment,
		cfg.MongoDB.URI != "", cfg.Redis.Addr() != "", cfg.OIDC.Enabled(), cfg.MinIO.Endpoint != "")

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := apierror.RegisterValidators(); err != nil {
		logger.Fatalf("register validators: %v", err)
	}

	policy, err := access.FromConfig(cfg.Access.Overrides)
	if err != nil {
		logger.Fatalf("invalid ACCESS_POLICY: %v", err)
	}
	logger.Debugf("access policy: %v", policy.Routes())

	ctx := context.Background()
	a := &app{cfg: cfg, policy: policy, checks: map[string]handlers.Check{}}

	var mongoClient *mongo.Client
	if cfg.MongoDB.URI != "" {
		mongoClient, err = database.ConnectWithRetry(ctx, database.Options{
			URI:       cfg.MongoDB.URI,
			Timeout:   cfg.MongoDB.Timeout,
			StableAPI: cfg.MongoDB.StableAPI,
		}, cfg.MongoDB.MaxAttempts)
		if err != nil {
			logger.Fatalf("mongodb: %v", err)
		}
		db := mongoClient.Database(cfg.MongoDB.Database)
		a.listings = listingservice.NewMongoService(ctx, db.Collection(database.FoodsCollection))
		a.requests = requestservice.NewMongoService(ctx, db.Collection(database.RequestsCollection))
		a.checks["mongodb"] = func(ctx context.Context) error { return mongoClient.Ping(ctx, readpref.Primary()) }
		logger.Infof("connected to MongoDB database %s", cfg.MongoDB.Database)
	} else {
		a.listings = listingservice.NewMemoryService()
		a.requests = requestservice.NewMemoryService()
	}

	if addr := cfg.Redis.Addr(); addr != "" {
		a.redis = redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := a.redis.Ping(ctx).Err(); err != nil {
			logger.Warnf("redis %s not reachable yet: %v", addr, err)
		}
		a.deny = revocation.NewDenylist(a.redis)
		a.checks["redis"] = func(ctx context.Context) error { return a.redis.Ping(ctx).Err() }
	}

	a.tokens, err = tokens.NewService(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL)
	if err != nil {
		logger.Fatalf("token service: %v", err)
	}

	if cfg.OIDC.Enabled() {
		ver, err := oidc.NewVerifier(ctx, cfg.OIDC.Issuer, cfg.OIDC.ClientID)
		if err != nil {
			logger.Fatalf("oidc: %v", err)
		}
		a.idp = ver
	}

	if cfg.MinIO.Endpoint != "" {
		store, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			logger.Warnf("image uploads disabled: %v", err)
		} else {
			a.images = store
			a.checks["minio"] = store.Ping
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      newRouter(a),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Eats Exchange Server is running on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Infof("received %s, shutting down", sig)
	case err := <-errCh:
		logger.Errorf("server failed: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("http shutdown: %v", err)
	}
	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			logger.Errorf("mongodb disconnect: %v", err)
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.Errorf("redis close: %v", err)
		}
	}
	logger.Infof("server stopped")
}
