// ABOUTME: Thread-safe registry of active SSE sessions and their outbound queues.
// ABOUTME: Each session owns a bounded FIFO queue drained by exactly one stream.

package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event identifies the SSE event kind of an outbound message.
type Event string

// Outbound event kinds.
const (
	// EventEndpoint carries the session's inbox URL. Sent exactly once,
	// first, per session.
	EventEndpoint Event = "endpoint"

	// EventMessage carries a serialized JSON-RPC response or notification.
	EventMessage Event = "message"
)

// Message is one outbound item: an SSE event tag and its payload.
type Message struct {
	Event Event
	Data  string
}

// Session pairs an opaque identifier with a bounded outbound message queue.
// The registry owns the session; the SSE stream drains its queue.
type Session struct {
	ID        string
	CreatedAt time.Time

	queue chan Message

	closeMu sync.Mutex // protects closed and queue close
	closed  bool       // true after queue is closed
}

// Messages returns the receive side of the session's queue. The channel is
// closed when the session is removed from the registry.
func (s *Session) Messages() <-chan Message {
	return s.queue
}

// Publish appends a message to the session's queue without ever blocking the
// caller. If the queue is full, the single oldest pending message is evicted
// to make room. Returns evicted=true when that happened, and ok=false if the
// session was already closed and the message was discarded.
func (s *Session) Publish(msg Message) (evicted, ok bool) {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()

	if s.closed {
		return false, false
	}

	select {
	case s.queue <- msg:
		return false, true
	default:
	}

	// Queue full: drop the oldest item, then push. Holding closeMu keeps
	// other publishers out, so the freed slot cannot be stolen.
	select {
	case <-s.queue:
	default:
	}
	s.queue <- msg
	return true, true
}

// close shuts the queue exactly once. Pending messages are discarded by the
// garbage collector along with the channel.
func (s *Session) close() {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.queue)
	}
}

// Registry manages the set of active sessions.
type Registry struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	queueSize int
	logger    *slog.Logger
}

// NewRegistry creates a Registry whose sessions carry queues of the given
// capacity. A capacity below 1 falls back to 1.
func NewRegistry(queueSize int, logger *slog.Logger) *Registry {
	if queueSize < 1 {
		queueSize = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		sessions:  make(map[string]*Session),
		queueSize: queueSize,
		logger:    logger,
	}
}

// Create allocates a new session with a unique random identifier.
func (r *Registry) Create() *Session {
	sess := &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		queue:     make(chan Message, r.queueSize),
	}

	r.mu.Lock()
	r.sessions[sess.ID] = sess
	r.mu.Unlock()

	r.logger.Debug("session created", "session_id", sess.ID)
	return sess
}

// Get returns the session with the given id, if it exists.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	sess, ok := r.sessions[id]
	r.mu.RUnlock()
	return sess, ok
}

// Remove destroys the session and closes its queue. Safe to call for ids that
// were already removed; returns whether the session existed.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	sess, existed := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if existed {
		sess.close()
		r.logger.Debug("session removed", "session_id", id)
	}
	return existed
}

// Count returns the number of active sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
