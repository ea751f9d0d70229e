// ABOUTME: SSE stream endpoint: session allocation and the queue drain loop.
// ABOUTME: The first event is always "endpoint" with the session's inbox URL.

package server

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fintools/account-support-mcp/internal/session"
)

// handleSSE establishes the long-lived stream. It allocates a session,
// advertises the inbox URL as the first event, then pumps the session queue
// to the wire until the client disconnects or a write fails.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if !s.originAllowed(origin) {
		http.Error(w, "Origin not allowed", http.StatusForbidden)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	sess := s.sessions.Create()
	defer func() {
		// Teardown races with any other removal path; Remove is idempotent.
		s.sessions.Remove(sess.ID)
		if s.metrics != nil {
			s.metrics.OpenSessions.Set(float64(s.sessions.Count()))
		}
		s.logger.Info("SSE closed", "session_id", sess.ID)
	}()

	inboxURL := s.externalBaseURL(r) + "inbox/" + sess.ID
	sess.Publish(session.Message{Event: session.EventEndpoint, Data: inboxURL})

	if s.metrics != nil {
		s.metrics.SSEConnections.Inc()
		s.metrics.OpenSessions.Set(float64(s.sessions.Count()))
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	flusher.Flush()

	s.logger.Info("SSE connected",
		"session_id", sess.ID,
		"endpoint", inboxURL,
		"origin", origin,
	)

	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			if _, err := io.WriteString(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case msg, open := <-sess.Messages():
			if !open {
				return
			}
			if err := writeSSEEvent(w, msg); err != nil {
				s.logger.Warn("SSE write failed",
					"session_id", sess.ID,
					"error", err,
				)
				return
			}
			flusher.Flush()
		}
	}
}

// writeSSEEvent emits one event/data frame. Payloads are single-line JSON or
// URLs, so no data-field splitting is needed.
func writeSSEEvent(w io.Writer, msg session.Message) error {
	_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
	return err
}
