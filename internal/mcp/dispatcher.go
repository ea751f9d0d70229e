// ABOUTME: JSON-RPC method dispatcher for the MCP surface.
// ABOUTME: Stateless per call; routes to the tool registry for tools/call.

package mcp

import (
	"errors"
	"log/slog"

	"github.com/fintools/account-support-mcp/internal/tools"
)

// DefaultProtocolVersion is advertised when the client does not request one.
const DefaultProtocolVersion = "2025-06-18"

// Server identity returned from initialize.
const (
	ServerName        = "account-support-mcp"
	ServerVersion     = "1.0.0"
	ServerDescription = "Customer Account Support MCP Server"
)

// Config holds configuration for the Dispatcher.
type Config struct {
	Registry *tools.Registry
	Logger   *slog.Logger

	// ProtocolVersion overrides DefaultProtocolVersion when set.
	ProtocolVersion string
}

// Dispatcher interprets JSON-RPC methods and produces responses. It carries
// no per-call state; the only state crossing calls lives in the tool
// registry's dataset.
type Dispatcher struct {
	registry        *tools.Registry
	logger          *slog.Logger
	protocolVersion string
}

// NewDispatcher creates a Dispatcher over the given tool registry.
func NewDispatcher(cfg Config) (*Dispatcher, error) {
	if cfg.Registry == nil {
		return nil, errors.New("registry is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	version := cfg.ProtocolVersion
	if version == "" {
		version = DefaultProtocolVersion
	}

	return &Dispatcher{
		registry:        cfg.Registry,
		logger:          logger,
		protocolVersion: version,
	}, nil
}

// Dispatch executes one JSON-RPC call. A nil return means no response is due
// (protocol-level notifications such as notifications/initialized). Panics
// inside dispatch surface as internal errors, never as transport failures.
func (d *Dispatcher) Dispatch(method string, params map[string]any, id any) (resp *Response) {
	defer func() {
		if rec := recover(); rec != nil {
			d.logger.Error("dispatch panicked",
				"method", method,
				"id", id,
				"panic", rec,
			)
			resp = NewError(id, CodeInternalError, "Internal error", nil)
		}
	}()

	if params == nil {
		params = map[string]any{}
	}

	switch method {
	case "initialize":
		return d.handleInitialize(params, id)
	case "notifications/initialized":
		// Acknowledged but never answered, even if an id was supplied.
		d.logger.Info("rpc notification", "method", method)
		return nil
	case "ping":
		d.logger.Debug("rpc ping", "id", id)
		return NewResult(id, map[string]any{})
	case "tools/list":
		return d.handleToolsList(id)
	case "tools/call":
		return d.handleToolsCall(params, id)
	default:
		d.logger.Warn("rpc method not found", "method", method, "id", id)
		return NewError(id, CodeMethodNotFound, "Method not found", map[string]any{"method": method})
	}
}

// handleInitialize echoes the client's protocol version when supplied and
// returns static capability and identity metadata.
func (d *Dispatcher) handleInitialize(params map[string]any, id any) *Response {
	version := d.protocolVersion
	if v, ok := params["protocolVersion"].(string); ok && v != "" {
		version = v
	}

	d.logger.Info("rpc initialize", "id", id, "protocol_version", version)

	return NewResult(id, map[string]any{
		"protocolVersion": version,
		"capabilities": map[string]any{
			"tools": map[string]any{"listChanged": true},
		},
		"serverInfo": map[string]any{
			"name":        ServerName,
			"version":     ServerVersion,
			"description": ServerDescription,
		},
	})
}

// handleToolsList returns the full tool catalog in registry order.
func (d *Dispatcher) handleToolsList(id any) *Response {
	all := d.registry.List()

	infos := make([]ToolInfo, 0, len(all))
	for _, t := range all {
		infos = append(infos, ToolInfo{
			Name:        t.Name,
			Title:       t.Title(),
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}

	d.logger.Debug("rpc tools/list", "id", id, "count", len(infos))
	return NewResult(id, ListToolsResult{Tools: infos})
}

// handleToolsCall invokes the named tool. All tool-layer failures come back
// as tool results with isError set; only the registry Call boundary decides.
func (d *Dispatcher) handleToolsCall(params map[string]any, id any) *Response {
	name, _ := params["name"].(string)
	arguments, _ := params["arguments"].(map[string]any)

	d.logger.Info("rpc tools/call", "id", id, "tool_name", name)

	result := d.registry.Call(name, arguments)

	d.logger.Debug("rpc tools/call complete",
		"id", id,
		"tool_name", name,
		"is_error", result.IsError,
	)
	return NewResult(id, result)
}
