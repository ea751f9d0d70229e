// ABOUTME: Static registry mapping tool names to handlers and input schemas.
// ABOUTME: The Call boundary converts handler faults into structured tool errors.

package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// ErrToolCollision indicates a tool name was registered twice.
var ErrToolCollision = errors.New("tool name collision")

// Handler executes a tool against its decoded arguments. Domain failures are
// reported through the returned payload (success=false), not through err;
// err is reserved for faults in the tool itself.
type Handler func(args map[string]any) (map[string]any, error)

// Tool pairs a tool name with its input schema and handler.
type Tool struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Handler     Handler
}

// Title derives the display title from the tool name
// ("search_customer" -> "Search Customer").
func (t *Tool) Title() string {
	words := strings.Split(t.Name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Content is one content block in a tool result.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Result is the outcome of a tools/call invocation in MCP shape. Domain-level
// failures (record not found, invalid state) are successful Results whose
// payload says success=false; IsError is reserved for invocation failures.
type Result struct {
	Content           []Content      `json:"content"`
	StructuredContent map[string]any `json:"structuredContent"`
	IsError           bool           `json:"isError"`
}

// Success wraps a tool payload as a successful result.
func Success(out map[string]any) *Result {
	text, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		text = []byte(fmt.Sprintf("%v", out))
	}
	return &Result{
		Content:           []Content{{Type: "text", Text: string(text)}},
		StructuredContent: out,
		IsError:           false,
	}
}

// Error wraps a failure message as a tool-level error result.
func Error(msg string, details map[string]any) *Result {
	structured := map[string]any{"error": msg}
	for k, v := range details {
		structured[k] = v
	}
	return &Result{
		Content:           []Content{{Type: "text", Text: msg}},
		StructuredContent: structured,
		IsError:           true,
	}
}

// Registry is the immutable-at-runtime tool table. Registration happens once
// at startup; afterwards only lookups occur, so reads need no locking beyond
// the mutex kept for safety during setup.
type Registry struct {
	mu     sync.RWMutex
	order  []string
	tools  map[string]*Tool
	logger *slog.Logger
}

// NewRegistry creates an empty tool registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		tools:  make(map[string]*Tool),
		logger: logger,
	}
}

// Register adds a tool. Names must be unique.
func (r *Registry) Register(t *Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[t.Name]; exists {
		return fmt.Errorf("%w: %s", ErrToolCollision, t.Name)
	}
	r.tools[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

// List returns all tools in registration order.
func (r *Registry) List() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Call looks up the named tool and runs it. This is the single place faults
// from business logic are caught and converted to structured tool errors:
// unknown names, handler errors, and handler panics all become Results with
// IsError set rather than transport failures.
func (r *Registry) Call(name string, args map[string]any) (result *Result) {
	r.mu.RLock()
	tool, ok := r.tools[name]
	r.mu.RUnlock()

	if !ok {
		r.logger.Warn("tools/call unknown tool", "tool_name", name)
		return Error(fmt.Sprintf("Unknown tool: %s", name), nil)
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("tool panicked",
				"tool_name", name,
				"panic", rec,
			)
			result = Error("Tool execution failed", map[string]any{"error": fmt.Sprintf("%v", rec)})
		}
	}()

	if args == nil {
		args = map[string]any{}
	}

	out, err := tool.Handler(args)
	if err != nil {
		r.logger.Warn("tool execution failed",
			"tool_name", name,
			"error", err,
		)
		return Error("Tool execution failed", map[string]any{"error": err.Error()})
	}

	return Success(out)
}
