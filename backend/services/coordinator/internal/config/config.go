package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	libconfig "gamecafe/backend/libs/config"
)

// Config defines coordinator configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"COORDINATOR_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"COORDINATOR_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"COORDINATOR_REDIS_ADDR"`
		Password string `yaml:"password" env:"COORDINATOR_REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"COORDINATOR_REDIS_DB"`
		TTL      int    `yaml:"ttlSeconds" env:"COORDINATOR_REDIS_TTL"`
	} `yaml:"redis"`
	Auth struct {
		JWTSecret         string        `yaml:"jwtSecret" env:"COORDINATOR_JWT_SECRET"`
		TokenTTL          time.Duration `yaml:"tokenTTL" env:"COORDINATOR_TOKEN_TTL"`
		BootstrapUser     string        `yaml:"bootstrapUser" env:"COORDINATOR_BOOTSTRAP_USER"`
		BootstrapPassword string        `yaml:"bootstrapPassword" env:"COORDINATOR_BOOTSTRAP_PASSWORD"`
	} `yaml:"auth"`
	Billing struct {
		DefaultHourlyRate string `yaml:"defaultHourlyRate" env:"COORDINATOR_DEFAULT_HOURLY_RATE"`
	} `yaml:"billing"`
}

// Load reads configuration via the shared helper. Postgres and Redis are
// optional; the coordinator runs fully in-memory without them.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.Redis.TTL = 86400
	cfg.Auth.TokenTTL = 8 * time.Hour
	cfg.Billing.DefaultHourlyRate = "5.00"

	if err := libconfig.Load(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return nil, errors.New("config: jwt secret required")
	}
	if _, err := decimal.NewFromString(cfg.Billing.DefaultHourlyRate); err != nil {
		return nil, fmt.Errorf("config: invalid default hourly rate: %w", err)
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// DefaultHourlyRate returns the parsed default rate.
func (c *Config) DefaultHourlyRate() decimal.Decimal {
	rate, err := decimal.NewFromString(c.Billing.DefaultHourlyRate)
	if err != nil {
		return decimal.NewFromInt(5)
	}
	return rate
}

// ActiveSessionTTL returns the cache TTL as a duration.
func (c *Config) ActiveSessionTTL() time.Duration {
	if c.Redis.TTL <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Redis.TTL) * time.Second
}
