// internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full server configuration, read from the environment.
// A .env file is loaded first via godotenv's autoload in main.
type Config struct {
	Addr          string        `env:"ADDR" envDefault:":8080"`
	DatabaseURL   string        `env:"DATABASE_URL,required,notEmpty"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	AllowedOrigin string        `env:"ALLOWED_ORIGIN" envDefault:"http://localhost:5179"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"72h"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
