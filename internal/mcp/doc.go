// Package mcp implements the JSON-RPC 2.0 dispatch for the Model Context
// Protocol method surface.
//
// # Overview
//
// MCP (Model Context Protocol) is a standard for AI tool integration. This
// package interprets the JSON-RPC methods a client may send over the inbox
// and produces the responses that travel back over the SSE channel.
//
// # Methods
//
//   - initialize - handshake; echoes the client's protocolVersion (or the
//     server default) and returns capability/identity metadata
//   - notifications/initialized - acknowledged, never answered
//   - ping - liveness probe, returns an empty result
//   - tools/list - the full tool catalog; single page, cursor ignored
//   - tools/call - executes a tool via the registry
//
// Any other method yields a -32601 method-not-found error carrying the
// offending method name as error data.
//
// # Statelessness
//
// Dispatch is a pure function of (method, params, id). Session existence is
// the transport layer's concern; the only state crossing calls is the tool
// registry's dataset, which tool executions may read and mutate.
//
// # Error Model
//
// Transport-framing faults map to the standard JSON-RPC codes (-32700 parse,
// -32600 invalid request, -32601 method not found, -32603 internal).
// Tool-domain failures never appear as JSON-RPC errors: they ride inside
// successful responses as tool results with isError or success=false set.
package mcp
