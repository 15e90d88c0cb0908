package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Finnhub FinnhubConfig
}

// SessionConfig covers the credentials this service consumes. The session
// secret is shared with the external auth collaborator that issues the
// tokens; this service only verifies them.
type SessionConfig struct {
	Secret        string `env:"AUTH_SESSION_SECRET"`
	SessionCookie string `env:"AUTH_SESSION_COOKIE, default=signalist_session"`
	GuestCookie   string `env:"GUEST_COOKIE,        default=signalist_guest_session"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=signalist"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// FinnhubConfig points at the external quote collaborator. Lookups are
// best-effort; an empty APIKey disables enrichment entirely.
type FinnhubConfig struct {
	BaseURL  string        `env:"FINNHUB_BASE_URL,  default=https://finnhub.io/api/v1"`
	APIKey   string        `env:"FINNHUB_API_KEY"`
	CacheTTL time.Duration `env:"QUOTE_CACHE_TTL,   default=1m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
