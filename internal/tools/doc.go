// Package tools provides the tool registry and the account-support tool set.
//
// # Overview
//
// Tools are registered once at startup and looked up by exact name through an
// ordinary mapping; there is no dynamic registration at runtime. Each tool
// carries a JSON Schema describing its arguments and a Handler executing it.
//
// # Error Model
//
// Three failure layers are kept apart:
//
//   - Domain failures (record not found, wrong account type) are data: the
//     handler returns a payload with success=false and the Result is NOT
//     marked as an error. The tool executed correctly; the requested
//     operation was inapplicable.
//   - Invocation failures (unknown tool name, handler error, handler panic)
//     are caught at the Call boundary and become Results with IsError set.
//   - Nothing from a tool ever propagates to the transport layer as an error.
//
// # Dataset
//
// The Store holds the mock customer dataset: three customers, an identifier
// index (account numbers, masked card numbers, SWIFT/BIC codes), and product
// portfolios. Mutating tools (freeze_account, unfreeze_account,
// update_address) change the records in place; the Store serializes all
// access behind a mutex so concurrent tool calls stay consistent.
package tools
