// Package config handles configuration loading for account-support-mcp.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults; the server runs with
// no config file at all.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	server:
//	  external_base_url: "${EXTERNAL_BASE_URL}"
//
// Syntax: ${VAR_NAME}
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax:
//
//	session:
//	  ping_interval: "15s"
//
// Supported units: ns, us, ms, s, m, h
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: "0.0.0.0:8200"
//	  external_base_url: "https://mcp.example.com/"
//
// Session queue and keepalive:
//
//	session:
//	  queue_size: 100
//	  ping_interval: "15s"
//
// Origin allow-list:
//
//	origins:
//	  allowed:
//	    - "http://localhost:3000"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// Metrics:
//
//	metrics:
//	  enabled: true
//	  path: "/metrics"
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load("/etc/account-support-mcp/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Or start from defaults:
//
//	cfg := config.Default()
package config
