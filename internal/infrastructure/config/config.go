package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StorageMemory = "memory"
	StorageMongo  = "mongo"
)

type Config struct {
	Port         string        `env:"PORT,          default=5000"`
	Env          string        `env:"ENV,           default=development"`
	JWTSecret    string        `env:"JWT_SECRET,    default=healthhub-dev-secret"`
	TokenTTL     time.Duration `env:"TOKEN_TTL,     default=24h"`
	LogLevel     string        `env:"LOG_LEVEL,     default=info"`
	AuthRequired bool          `env:"AUTH_REQUIRED, default=false"`
	CORSOrigin   []string      `env:"CORS_ORIGIN,   default=*"`

	Storage   StorageConfig
	RateLimit RateLimitConfig
	Mongo     MongoConfig
	Redis   RedisConfig
	Kafka   KafkaConfig

	RecommendationWorkers int `env:"RECOMMENDATION_WORKERS, default=4"`
}

type StorageConfig struct {
	Backend string `env:"STORAGE_BACKEND, default=memory"`
	Seed    bool   `env:"SEED_DATA,       default=true"`
}

// RateLimitConfig caps requests per client IP. RPS 0 disables the limiter.
type RateLimitConfig struct {
	RPS   float64 `env:"RATE_LIMIT_RPS,   default=20"`
	Burst int     `env:"RATE_LIMIT_BURST, default=100"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=healthhub"`
}

// RedisConfig leaves Addr empty by default; the workout cache is then a no-op.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,  default=0"`
	CacheTTL time.Duration `env:"CACHE_TTL, default=5m"`
}

// KafkaConfig leaves Brokers empty by default; activity is then only logged.
type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS"`
	Topic   string   `env:"KAFKA_TOPIC, default=activity-log"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case StorageMemory, StorageMongo:
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", StorageMemory, StorageMongo, c.Storage.Backend)
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	return nil
}

// IsDevelopment reports whether error responses may carry internals.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

func (c *Config) Addr() string {
	return ":" + c.Port
}
