package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all environment-driven settings for the server
type Config struct {
	Host string `env:"HOST" envDefault:""`
	Port int    `env:"PORT" envDefault:"5000"`

	// StorageType selects the storage backend: "memory" or "redis"
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL" envDefault:""`

	// JWTSecret signs auth tokens; required outside local development
	JWTSecret     string        `env:"JWT_SECRET" envDefault:"dev-secret"`
	TokenDuration time.Duration `env:"TOKEN_DURATION" envDefault:"168h"`

	// ImageHostURL points at the external photo host; empty means photos
	// pass through unmodified
	ImageHostURL string `env:"IMAGE_HOST_URL" envDefault:""`
}

// Load reads configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
