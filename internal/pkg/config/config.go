package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DevSecret is the fallback signing secret used when JWT_SECRET is unset.
// Fine for local development; running production on it is an operational
// mistake, so Load's caller logs a warning when IsDevSecret reports true.
const DevSecret = "dev-secret-change-me"

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	JWTSecret string        `env:"JWT_SECRET, default=dev-secret-change-me"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=168h"`

	Mongo MongoConfig
	Redis RedisConfig
	Seed  SeedConfig
	Login LoginConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=smilecare"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// SeedConfig describes the one-time staff account created at startup when it
// does not already exist.
type SeedConfig struct {
	StaffName     string `env:"STAFF_NAME,     default=Clinic Staff"`
	StaffEmail    string `env:"STAFF_EMAIL,    default=staff@smilecare.com"`
	StaffPassword string `env:"STAFF_PASSWORD, default=password123"`
}

// LoginConfig tunes the failed-login throttle.
type LoginConfig struct {
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	Cooldown    time.Duration `env:"LOGIN_COOLDOWN,     default=15m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// IsDevSecret reports whether the signing secret is the development default.
func (c *Config) IsDevSecret() bool {
	return c.JWTSecret == DevSecret
}
