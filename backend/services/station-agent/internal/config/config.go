package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	libconfig "gamecafe/backend/libs/config"
)

// Config defines station agent configuration.
type Config struct {
	Coordinator struct {
		URL     string        `yaml:"url" env:"AGENT_COORDINATOR_URL"`
		Timeout time.Duration `yaml:"timeout" env:"AGENT_REQUEST_TIMEOUT"`
	} `yaml:"coordinator"`
	Station struct {
		Name       string `yaml:"name" env:"AGENT_STATION_NAME"`
		IPAddress  string `yaml:"ipAddress" env:"AGENT_STATION_IP"`
		Port       int    `yaml:"port" env:"AGENT_STATION_PORT"`
		HourlyRate string `yaml:"hourlyRate" env:"AGENT_HOURLY_RATE"`
	} `yaml:"station"`
	HeartbeatInterval time.Duration `yaml:"heartbeatInterval" env:"AGENT_HEARTBEAT_INTERVAL"`
}

// Load reads configuration via the shared helper.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.Coordinator.Timeout = 10 * time.Second
	cfg.Station.Port = 5000
	cfg.Station.HourlyRate = "5.00"
	cfg.HeartbeatInterval = 30 * time.Second

	if err := libconfig.Load(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Coordinator.URL) == "" {
		return nil, errors.New("config: coordinator url required")
	}
	if strings.TrimSpace(cfg.Station.Name) == "" {
		return nil, errors.New("config: station name required")
	}
	if _, err := decimal.NewFromString(cfg.Station.HourlyRate); err != nil {
		return nil, fmt.Errorf("config: invalid hourly rate: %w", err)
	}
	return cfg, nil
}

// HourlyRate returns the parsed local rate.
func (c *Config) HourlyRate() decimal.Decimal {
	rate, err := decimal.NewFromString(c.Station.HourlyRate)
	if err != nil {
		return decimal.NewFromInt(5)
	}
	return rate
}
