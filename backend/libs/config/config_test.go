package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	HTTP struct {
		Port int `yaml:"port"`
	} `yaml:"http"`
	Coordinator struct {
		URL     string        `yaml:"url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"coordinator"`
	Debug  bool   `yaml:"debug"`
	Secret string `yaml:"secret" env:"APP_SECRET"`
}

func TestLoadFromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "http:\n  port: 9090\ncoordinator:\n  url: http://localhost:8080\n  timeout: 15s\ndebug: true\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	var cfg testConfig
	if err := Load(&cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Fatalf("HTTP.Port = %d, want 9090", cfg.HTTP.Port)
	}
	if cfg.Coordinator.URL != "http://localhost:8080" {
		t.Fatalf("Coordinator.URL = %q", cfg.Coordinator.URL)
	}
	if cfg.Coordinator.Timeout != 15*time.Second {
		t.Fatalf("Coordinator.Timeout = %s, want 15s", cfg.Coordinator.Timeout)
	}
	if !cfg.Debug {
		t.Fatalf("Debug = false, want true")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("http:\n  port: 9090\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("COORDINATOR_TIMEOUT", "1m30s")
	t.Setenv("APP_SECRET", "s3cret")

	var cfg testConfig
	if err := Load(&cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 7070 {
		t.Fatalf("HTTP.Port = %d, want env override 7070", cfg.HTTP.Port)
	}
	if cfg.Coordinator.Timeout != 90*time.Second {
		t.Fatalf("Coordinator.Timeout = %s, want 1m30s", cfg.Coordinator.Timeout)
	}
	if cfg.Secret != "s3cret" {
		t.Fatalf("Secret = %q, want value from APP_SECRET tag", cfg.Secret)
	}
}

func TestEnvOnlyWithoutFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("HTTP_PORT", "8081")

	var cfg testConfig
	if err := Load(&cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 8081 {
		t.Fatalf("HTTP.Port = %d, want 8081", cfg.HTTP.Port)
	}
}

func TestLoadRejectsBadTarget(t *testing.T) {
	if err := Load(nil); err == nil {
		t.Fatalf("Load(nil) succeeded")
	}
	var notStruct int
	if err := Load(&notStruct); err == nil {
		t.Fatalf("Load(*int) succeeded")
	}
}

func TestBadDurationValueIsAnError(t *testing.T) {
	t.Setenv("COORDINATOR_TIMEOUT", "soon")

	var cfg testConfig
	if err := Load(&cfg); err == nil {
		t.Fatalf("Load with unparseable duration succeeded")
	}
}
