package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

type Config struct {
	Host              string        `env:"HOST"`
	Port              int           `env:"PORT,default=8080"`
	Env               string        `env:"APP_ENV,default=development"`
	LogLevel          string        `env:"LOG_LEVEL,default=info"`
	PostgresDSN       string        `env:"POSTGRES_DSN"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT,default=5s"`
	RateLimitRPS      int           `env:"RATE_LIMIT_RPS,default=50"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal environ: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if c.RateLimitRPS < 0 {
		return errors.New("rate limit must not be negative")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}
	return nil
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuditEnabled reports whether decisions are written to Postgres.
func (c Config) AuditEnabled() bool {
	return c.PostgresDSN != ""
}
