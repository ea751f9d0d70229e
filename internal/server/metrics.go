// ABOUTME: Prometheus metrics for the SSE transport and tool dispatch.
// ABOUTME: Uses a private registry so only our collectors are exported.

package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	OpenSessions     prometheus.Gauge
	SSEConnections   prometheus.Counter
	MessagesEnqueued prometheus.Counter
	MessagesDropped  prometheus.Counter
	ToolCalls        *prometheus.CounterVec
}

// NewMetrics creates the collector set on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		OpenSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "account_mcp_open_sessions",
			Help: "Number of currently open SSE sessions",
		}),
		SSEConnections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "account_mcp_sse_connections_total",
			Help: "Total SSE connections accepted",
		}),
		MessagesEnqueued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "account_mcp_messages_enqueued_total",
			Help: "Total messages enqueued onto session queues",
		}),
		MessagesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "account_mcp_messages_dropped_total",
			Help: "Total messages evicted from full session queues",
		}),
		ToolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "account_mcp_tool_calls_total",
			Help: "Total tools/call invocations by tool and outcome",
		}, []string{"tool", "outcome"}),
	}

	registry.MustRegister(
		m.OpenSessions,
		m.SSEConnections,
		m.MessagesEnqueued,
		m.MessagesDropped,
		m.ToolCalls,
	)
	return m
}

// Handler serves the metrics in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
