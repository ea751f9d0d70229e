// Package session manages the lifecycle of SSE client sessions.
//
// # Overview
//
// A session is the pairing of one open SSE stream with one inbox URL and a
// bounded outbound message queue. The Registry is the single owner of all
// sessions: it creates them when a client connects to /sse, hands out
// references to the inbox handler, and destroys them when the stream closes.
//
// # Queue Semantics
//
// Each session's queue is a bounded FIFO. Producers (inbox requests) never
// block and never fail on a full queue: Publish evicts the single oldest
// pending message to make room for the new one. This is a deliberate
// loss-of-delivery policy that keeps slow SSE consumers from ever stalling
// the HTTP side.
//
// Within one session, delivery order matches enqueue order, except for
// messages lost to eviction.
//
// # Concurrency
//
// All Registry operations are safe for concurrent use. Publish may be called
// from any number of goroutines; the queue is drained by exactly one SSE
// stream loop. Remove is idempotent, so the stream teardown path and any
// other cleanup path may race without consequence.
package session
