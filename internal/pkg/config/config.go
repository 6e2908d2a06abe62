package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SiteURL is the public base URL, used in QR payloads and checkout
	// redirect targets.
	SiteURL string `env:"SITE_URL, default=http://localhost:8080"`

	SessionSecret string `env:"SESSION_SECRET"`
	// SessionTTLHours is the session cookie lifetime; the middleware
	// re-issues the cookie with this TTL on every request.
	SessionTTLHours int `env:"SESSION_TTL_HOURS, default=24"`

	// AllowDebug exposes the env debug endpoint outside development.
	AllowDebug bool `env:"ALLOW_DEBUG, default=false"`

	// EnableDBSeed and SeedToken gate the admin role seeding endpoint.
	// Both must be set for the endpoint to do anything.
	EnableDBSeed bool   `env:"ENABLE_DB_SEED, default=false"`
	SeedToken    string `env:"SEED_TOKEN"`

	Mongo  MongoConfig
	Redis  RedisConfig
	OAuth  OAuthConfig
	Stripe StripeConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=marketplace"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type OAuthConfig struct {
	Provider     string `env:"OAUTH_PROVIDER,      default=google"`
	ClientID     string `env:"OAUTH_CLIENT_ID"`
	ClientSecret string `env:"OAUTH_CLIENT_SECRET"`
	AuthURL      string `env:"OAUTH_AUTH_URL,      default=https://accounts.google.com/o/oauth2/auth"`
	TokenURL     string `env:"OAUTH_TOKEN_URL,     default=https://oauth2.googleapis.com/token"`
	UserInfoURL  string `env:"OAUTH_USERINFO_URL,  default=https://openidconnect.googleapis.com/v1/userinfo"`
	RedirectURL  string `env:"OAUTH_REDIRECT_URL"`
}

type StripeConfig struct {
	SecretKey     string `env:"STRIPE_SECRET_KEY"`
	WebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// IsProduction reports whether the service runs with production hardening.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
