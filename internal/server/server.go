// ABOUTME: HTTP transport for the MCP server: SSE stream, inbox, and health.
// ABOUTME: Pairs one-way SSE delivery with plain POST for the return path.

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/fintools/account-support-mcp/internal/mcp"
	"github.com/fintools/account-support-mcp/internal/session"
	"github.com/fintools/account-support-mcp/internal/tools"
)

// MaxRequestBodySize is the maximum allowed size for inbox bodies (1MB).
const MaxRequestBodySize = 1 << 20

// DefaultPingInterval is the SSE keepalive interval when none is configured.
const DefaultPingInterval = 15 * time.Second

// Config holds configuration for the Server.
type Config struct {
	Sessions   *session.Registry
	Dispatcher *mcp.Dispatcher
	Tools      *tools.Registry
	Store      *tools.Store
	Logger     *slog.Logger
	Metrics    *Metrics // optional

	// AllowedOrigins is the Origin allow-list for /sse and inbox requests.
	// Requests without an Origin header are always permitted.
	AllowedOrigins []string

	// ExternalBaseURL, when set, is used verbatim as the base for inbox URLs.
	// Otherwise the base is derived from forwarded headers or the request.
	ExternalBaseURL string

	// PingInterval is the SSE keepalive interval.
	PingInterval time.Duration
}

// Server implements the bidirectional JSON-RPC transport: SSE for
// server-to-client delivery, HTTP POST for client-to-server delivery.
type Server struct {
	sessions     *session.Registry
	dispatcher   *mcp.Dispatcher
	tools        *tools.Registry
	store        *tools.Store
	logger       *slog.Logger
	metrics      *Metrics
	origins      map[string]struct{}
	originList   []string
	externalBase string
	pingInterval time.Duration
}

// NewServer creates the HTTP transport over the given collaborators.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Sessions == nil {
		return nil, errors.New("session registry is required")
	}
	if cfg.Dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	if cfg.Tools == nil {
		return nil, errors.New("tool registry is required")
	}
	if cfg.Store == nil {
		return nil, errors.New("store is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	interval := cfg.PingInterval
	if interval <= 0 {
		interval = DefaultPingInterval
	}

	origins := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		origins[strings.TrimRight(o, "/")] = struct{}{}
	}

	return &Server{
		sessions:     cfg.Sessions,
		dispatcher:   cfg.Dispatcher,
		tools:        cfg.Tools,
		store:        cfg.Store,
		logger:       logger,
		metrics:      cfg.Metrics,
		origins:      origins,
		originList:   append([]string(nil), cfg.AllowedOrigins...),
		externalBase: cfg.ExternalBaseURL,
		pingInterval: interval,
	}, nil
}

// Router builds the chi router with CORS middleware and all routes mounted.
func (s *Server) Router(metricsPath string) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.originList,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/sse", s.handleSSE)
	r.Post("/inbox/{sessionID}", s.handleInbox)
	r.Post("/notify-tools-refresh/{sessionID}", s.handleNotifyToolsRefresh)
	r.Get("/healthz", s.handleHealthz)

	if s.metrics != nil && metricsPath != "" {
		r.Method(http.MethodGet, metricsPath, s.metrics.Handler())
	}

	return r
}

// originAllowed reports whether the declared origin passes the allow-list.
// Absence of an Origin header is permitted; a present origin must match an
// allow-list entry by scheme://host[:port].
func (s *Server) originAllowed(origin string) bool {
	if origin == "" {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	_, ok := s.origins[u.Scheme+"://"+u.Host]
	return ok
}

// externalBaseURL resolves the externally reachable base URL: static
// configuration first, then forwarded headers, then the request itself.
func (s *Server) externalBaseURL(r *http.Request) string {
	if s.externalBase != "" {
		return strings.TrimRight(s.externalBase, "/") + "/"
	}

	scheme := r.Header.Get("X-Forwarded-Proto")
	if scheme == "" {
		scheme = "http"
		if r.TLS != nil {
			scheme = "https"
		}
	}

	host := r.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = r.Host
	}

	prefix := strings.TrimRight(r.Header.Get("X-Forwarded-Prefix"), "/")

	return fmt.Sprintf("%s://%s%s/", scheme, host, prefix)
}

// handleHealthz reports liveness plus a little introspection: open session
// count, the registered tool names, and the dataset size.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"sessions":  s.sessions.Count(),
		"tools":     s.tools.Names(),
		"customers": s.store.CustomerCount(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("failed to encode response", "error", err)
	}
}
