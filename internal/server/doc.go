// Package server provides the HTTP transport pairing SSE delivery with a
// per-session POST inbox.
//
// # Data Flow
//
// A client opens GET /sse. The server allocates a session with a bounded
// outbound queue and emits an "endpoint" event carrying the session's inbox
// URL. The client POSTs JSON-RPC envelopes to that URL; the inbox validates
// them, hands them to the dispatcher, and enqueues the serialized response
// onto the session's queue. The SSE loop drains the queue to the wire as
// "message" events, interleaved with keepalive pings.
//
// # Decoupling
//
// The inbox never waits on the SSE side: enqueueing is non-blocking with
// eviction of the oldest pending message when the queue is full. A slow or
// stalled SSE consumer therefore cannot delay or fail a POST. POST callers
// always see 204 on structurally valid envelopes; outcomes - including
// domain-level failures - are observed asynchronously on the stream.
//
// # Endpoints
//
//   - GET  /sse                               - establish the stream
//   - POST /inbox/{session_id}                - deliver a JSON-RPC envelope
//   - POST /notify-tools-refresh/{session_id} - push tools/list_changed
//   - GET  /healthz                           - liveness and introspection
//   - GET  /metrics                           - Prometheus metrics (optional)
//
// # Origin Policy
//
// Requests carrying an Origin header are checked against a configured
// allow-list by scheme://host[:port]; requests without one are permitted.
// The check runs before any session or body work and fails with 403.
package server
