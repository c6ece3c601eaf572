package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/eatsexchange/eats-exchange-server/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Cookie    CookieConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	OIDC      OIDCConfig
	MinIO     MinIOConfig
	Access    AccessConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type MongoDBConfig struct {
	URI       string
	Database  string
	Timeout   time.Duration
	StableAPI bool
	// startup connection attempts before giving up
	MaxAttempts int
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port, or "" when Redis is not configured.
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return r.Host + ":" + r.Port
}

type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
}

type CookieConfig struct {
	Name   string
	Domain string
	Secure bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

type OIDCConfig struct {
	Issuer   string
	ClientID string
}

// Enabled reports whether POST /jwt must carry a verifiable identity token.
func (o OIDCConfig) Enabled() bool { return o.Issuer != "" && o.ClientID != "" }

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type AccessConfig struct {
	// Overrides is the raw ACCESS_POLICY value, e.g. "PUT /foods/:id=authenticated".
	Overrides string
}

type LogConfig struct {
	Level  string
	Format string
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "5000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", 30)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 30)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 10)
	v.SetDefault("MONGODB_DATABASE", "eatsExchangeDB")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("MONGODB_STABLE_API", true)
	v.SetDefault("MONGODB_MAX_ATTEMPTS", 5)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_ACCESS_TOKEN_TTL", 600)
	v.SetDefault("COOKIE_NAME", "token")
	v.SetDefault("COOKIE_SECURE", true)
	v.SetDefault("CLIENT_ORIGINS", "http://localhost:5173")
	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_USE_REDIS", false)
	v.SetDefault("RATE_LIMIT_RPS", 10.0)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)
	v.SetDefault("MINIO_BUCKET", "eats-exchange")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	// PORT and ACCESS_TOKEN_SECRET are the names the hosting platform and
	// the existing deployment already export.
	_ = v.BindEnv("SERVER_PORT", "SERVER_PORT", "PORT")
	_ = v.BindEnv("JWT_SECRET", "JWT_SECRET", "ACCESS_TOKEN_SECRET")

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("SERVER_PORT"),
			Host:            v.GetString("SERVER_HOST"),
			Environment:     v.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:     time.Duration(v.GetInt("SERVER_READ_TIMEOUT")) * time.Second,
			WriteTimeout:    time.Duration(v.GetInt("SERVER_WRITE_TIMEOUT")) * time.Second,
			ShutdownTimeout: time.Duration(v.GetInt("SERVER_SHUTDOWN_TIMEOUT")) * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:         mongoURI(v),
			Database:    v.GetString("MONGODB_DATABASE"),
			Timeout:     time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
			StableAPI:   v.GetBool("MONGODB_STABLE_API"),
			MaxAttempts: v.GetInt("MONGODB_MAX_ATTEMPTS"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:         v.GetString("JWT_SECRET"),
			AccessTokenTTL: time.Duration(v.GetInt("JWT_ACCESS_TOKEN_TTL")) * time.Minute,
		},
		Cookie: CookieConfig{
			Name:   v.GetString("COOKIE_NAME"),
			Domain: v.GetString("COOKIE_DOMAIN"),
			Secure: v.GetBool("COOKIE_SECURE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CLIENT_ORIGINS")),
		},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      v.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         v.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		OIDC: OIDCConfig{
			Issuer:   v.GetString("OIDC_ISSUER"),
			ClientID: v.GetString("OIDC_CLIENT_ID"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
		},
		Access: AccessConfig{
			Overrides: v.GetString("ACCESS_POLICY"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET (or ACCESS_TOKEN_SECRET) is required")
	}
	if len(cfg.JWT.Secret) < 32 {
		logger.Warnf("JWT secret is shorter than 32 bytes; use a longer value in production")
	}
	if cfg.JWT.AccessTokenTTL <= 0 {
		return nil, fmt.Errorf("JWT_ACCESS_TOKEN_TTL must be positive")
	}
	if cfg.MongoDB.URI == "" {
		logger.Warnf("MONGODB_URI is not set; listings and requests are kept in memory")
	}

	return cfg, nil
}

// mongoURI prefers MONGODB_URI and otherwise assembles an Atlas SRV URI from
// DB_USER / DB_PASS / MONGODB_HOST, the variables existing deployments export.
func mongoURI(v *viper.Viper) string {
	if uri := v.GetString("MONGODB_URI"); uri != "" {
		return uri
	}
	user, pass, host := v.GetString("DB_USER"), v.GetString("DB_PASS"), v.GetString("MONGODB_HOST")
	if user == "" || pass == "" || host == "" {
		return ""
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(user, pass),
		Host:     host,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}
	return u.String()
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
