package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds application configuration from environment. It is parsed once
// at startup and passed down explicitly; nothing reads it ambiently.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	DBPoolSize  int    `env:"DB_POOL_SIZE" envDefault:"25"`

	JWTSecret      string        `env:"JWT_SECRET,required"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"30m"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config from environment: %w", err)
	}
	if cfg.DBPoolSize < 2 {
		cfg.DBPoolSize = 2
	}
	return &cfg, nil
}
