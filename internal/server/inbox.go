// ABOUTME: Inbox endpoint: validates POSTed JSON-RPC envelopes and dispatches.
// ABOUTME: Responses travel back asynchronously over the session's SSE stream.

package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fintools/account-support-mcp/internal/mcp"
	"github.com/fintools/account-support-mcp/internal/session"
	"github.com/fintools/account-support-mcp/internal/tools"
)

// handleInbox accepts one JSON-RPC envelope addressed to a session.
// Validation order: origin (403), session (404), JSON parse (400/-32700),
// object shape (400/-32600). Structurally valid deliveries always get 204;
// the dispatch outcome reaches the client over SSE.
func (s *Server) handleInbox(w http.ResponseWriter, r *http.Request) {
	if !s.originAllowed(r.Header.Get("Origin")) {
		http.Error(w, "Origin not allowed", http.StatusForbidden)
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		http.Error(w, "Unknown session", http.StatusNotFound)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBodySize+1))
	if err != nil || int64(len(body)) > MaxRequestBodySize {
		s.logger.Warn("inbox body read failed", "session_id", sessionID, "error", err)
		s.writeJSON(w, http.StatusBadRequest, mcp.NewError(nil, mcp.CodeParseError, "Parse error", nil))
		return
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		s.logger.Warn("inbox parse error", "session_id", sessionID)
		s.writeJSON(w, http.StatusBadRequest, mcp.NewError(nil, mcp.CodeParseError, "Parse error", nil))
		return
	}

	envelope, ok := raw.(map[string]any)
	if !ok {
		s.logger.Warn("inbox invalid request: body is not an object", "session_id", sessionID)
		s.writeJSON(w, http.StatusBadRequest, mcp.NewError(nil, mcp.CodeInvalidRequest, "Invalid Request", nil))
		return
	}

	id := envelope["id"]
	method, _ := envelope["method"].(string)
	params, _ := envelope["params"].(map[string]any)
	if params == nil {
		params = map[string]any{}
	}
	isNotification := id == nil

	s.logger.Info("inbox recv",
		"session_id", sessionID,
		"id", id,
		"method", method,
	)

	resp := s.dispatcher.Dispatch(method, params, id)
	s.recordToolCall(method, params, resp)

	// Notifications never produce a delivery, whatever dispatch returned.
	if isNotification || resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	payload, err := resp.Encode()
	if err != nil {
		s.logger.Error("failed to encode response",
			"session_id", sessionID,
			"id", id,
			"error", err,
		)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	evicted, published := sess.Publish(session.Message{Event: session.EventMessage, Data: payload})
	if evicted {
		s.logger.Warn("session queue full, evicted oldest message", "session_id", sessionID)
		if s.metrics != nil {
			s.metrics.MessagesDropped.Inc()
		}
	}
	if published && s.metrics != nil {
		s.metrics.MessagesEnqueued.Inc()
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleNotifyToolsRefresh pushes a tools/list_changed notification onto the
// named session's queue.
func (s *Server) handleNotifyToolsRefresh(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		http.Error(w, "Unknown session", http.StatusNotFound)
		return
	}

	note, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"method":  "notifications/tools/list_changed",
	})
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	sess.Publish(session.Message{Event: session.EventMessage, Data: string(note)})
	if s.metrics != nil {
		s.metrics.MessagesEnqueued.Inc()
	}

	s.logger.Info("sent tools/list_changed", "session_id", sessionID)
	s.writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// recordToolCall updates the tool-call counter for tools/call dispatches.
func (s *Server) recordToolCall(method string, params map[string]any, resp *mcp.Response) {
	if s.metrics == nil || method != "tools/call" || resp == nil {
		return
	}

	name, _ := params["name"].(string)
	outcome := "ok"
	if result, ok := resp.Result.(*tools.Result); ok && result.IsError {
		outcome = "error"
	}
	if resp.Error != nil {
		outcome = "rpc_error"
	}
	s.metrics.ToolCalls.WithLabelValues(name, outcome).Inc()
}
