// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, and duration parsing

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "0.0.0.0:8200"
  external_base_url: "https://mcp.example.com/"

session:
  queue_size: 50
  ping_interval: "30s"

origins:
  allowed:
    - "http://localhost:3000"
    - "https://app.example.com"

logging:
  level: "debug"
  format: "json"

metrics:
  enabled: true
  path: "/metrics"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.HTTPAddr != "0.0.0.0:8200" {
		t.Errorf("expected http_addr 0.0.0.0:8200, got %q", cfg.Server.HTTPAddr)
	}
	if cfg.Server.ExternalBaseURL != "https://mcp.example.com/" {
		t.Errorf("unexpected external_base_url %q", cfg.Server.ExternalBaseURL)
	}
	if cfg.Session.QueueSize != 50 {
		t.Errorf("expected queue_size 50, got %d", cfg.Session.QueueSize)
	}
	if cfg.Session.PingInterval != 30*time.Second {
		t.Errorf("expected ping_interval 30s, got %v", cfg.Session.PingInterval)
	}
	if len(cfg.Origins.Allowed) != 2 {
		t.Errorf("expected 2 allowed origins, got %d", len(cfg.Origins.Allowed))
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  http_addr: \":9000\"\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Session.QueueSize != DefaultQueueSize {
		t.Errorf("expected default queue size %d, got %d", DefaultQueueSize, cfg.Session.QueueSize)
	}
	if cfg.Session.PingInterval != DefaultPingInterval {
		t.Errorf("expected default ping interval %v, got %v", DefaultPingInterval, cfg.Session.PingInterval)
	}
	if len(cfg.Origins.Allowed) == 0 {
		t.Error("expected default allowed origins to be populated")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %q", cfg.Logging.Level)
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("TEST_MCP_BASE_URL", "https://from-env.example.com/")

	cfg, err := Load(writeConfig(t, `
server:
  external_base_url: "${TEST_MCP_BASE_URL}"
`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.ExternalBaseURL != "https://from-env.example.com/" {
		t.Errorf("expected env-expanded base URL, got %q", cfg.Server.ExternalBaseURL)
	}
}

func TestLoad_UnsetEnvVarExpandsToEmpty(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
server:
  external_base_url: "${DEFINITELY_NOT_SET_MCP_VAR}"
`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.ExternalBaseURL != "" {
		t.Errorf("expected empty base URL, got %q", cfg.Server.ExternalBaseURL)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	_, err := Load(writeConfig(t, `
session:
  ping_interval: "banana"
`))
	if err == nil {
		t.Fatal("expected error for invalid duration")
	}
	if !strings.Contains(err.Error(), "ping_interval") {
		t.Errorf("expected error to mention ping_interval, got %v", err)
	}
}

func TestLoad_InvalidQueueSize(t *testing.T) {
	_, err := Load(writeConfig(t, `
session:
  queue_size: -5
`))
	if err == nil {
		t.Fatal("expected error for negative queue size")
	}
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	_, err := Load(writeConfig(t, `
logging:
  format: "xml"
`))
	if err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
	if cfg.Server.HTTPAddr != DefaultHTTPAddr {
		t.Errorf("unexpected default addr %q", cfg.Server.HTTPAddr)
	}
}
