// ABOUTME: Configuration loading and parsing for account-support-mcp
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete account-support-mcp configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Session SessionConfig `yaml:"session"`
	Origins OriginsConfig `yaml:"origins"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig holds server address configuration
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`

	// ExternalBaseURL is the externally reachable base URL advertised in the
	// SSE endpoint event. If empty, it is derived from forwarded headers or
	// the request host.
	ExternalBaseURL string `yaml:"external_base_url"`
}

// SessionConfig holds per-session queue and stream timing configuration
type SessionConfig struct {
	QueueSize    int           `yaml:"queue_size"`
	PingInterval time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	PingIntervalRaw string `yaml:"ping_interval"`
}

// OriginsConfig holds the Origin allow-list applied to /sse and inbox requests
type OriginsConfig struct {
	Allowed []string `yaml:"allowed"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig holds metrics endpoint configuration
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Defaults used when the config file omits a value.
const (
	DefaultHTTPAddr     = ":8200"
	DefaultQueueSize    = 100
	DefaultPingInterval = 15 * time.Second
	DefaultMetricsPath  = "/metrics"
)

// defaultAllowedOrigins mirrors the deployments this server is paired with:
// a local web frontend plus Docker host networking.
var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost",
	"http://127.0.0.1",
	"http://host.docker.internal:8200",
	"http://host.docker.internal:3000",
	"http://host.docker.internal",
}

// Default returns a Config populated with defaults, suitable for running
// without a config file.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr: DefaultHTTPAddr,
		},
		Session: SessionConfig{
			QueueSize:    DefaultQueueSize,
			PingInterval: DefaultPingInterval,
		},
		Origins: OriginsConfig{
			Allowed: append([]string(nil), defaultAllowedOrigins...),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    DefaultMetricsPath,
		},
	}
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values.
// Missing fields fall back to defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Parse duration fields
	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	applyDefaults(cfg)

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	// Match ${VAR_NAME} pattern
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// applyDefaults fills zero values left after unmarshaling an explicit file.
func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPAddr == "" {
		cfg.Server.HTTPAddr = DefaultHTTPAddr
	}
	if cfg.Session.QueueSize == 0 {
		cfg.Session.QueueSize = DefaultQueueSize
	}
	if cfg.Session.PingInterval == 0 {
		cfg.Session.PingInterval = DefaultPingInterval
	}
	if len(cfg.Origins.Allowed) == 0 {
		cfg.Origins.Allowed = append([]string(nil), defaultAllowedOrigins...)
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}

	if c.Session.QueueSize < 1 {
		return fmt.Errorf("session.queue_size must be at least 1, got %d", c.Session.QueueSize)
	}

	if c.Session.PingInterval <= 0 {
		return fmt.Errorf("session.ping_interval must be positive")
	}

	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be \"text\" or \"json\", got %q", c.Logging.Format)
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	var err error

	if cfg.Session.PingIntervalRaw != "" {
		cfg.Session.PingInterval, err = time.ParseDuration(cfg.Session.PingIntervalRaw)
		if err != nil {
			return fmt.Errorf("parsing ping_interval %q: %w", cfg.Session.PingIntervalRaw, err)
		}
	}

	return nil
}
