// ABOUTME: JSON-RPC 2.0 envelope types and error codes for the MCP surface.
// ABOUTME: Request ids are kept as opaque values and echoed verbatim.

package mcp

import "encoding/json"

// JSON-RPC 2.0 types

// Response represents a JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *RPCError `json:"error,omitempty"`
}

// RPCError represents a JSON-RPC 2.0 error object.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Standard JSON-RPC error codes
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// NewResult builds a successful response echoing the request id.
func NewResult(id, result any) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
}

// NewError builds an error response echoing the request id. A nil data value
// is replaced with an empty object so the error envelope shape is stable.
func NewError(id any, code int, message string, data any) *Response {
	if data == nil {
		data = map[string]any{}
	}
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &RPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// Encode serializes the response for the wire.
func (r *Response) Encode() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ToolInfo is one entry in a tools/list result.
type ToolInfo struct {
	Name        string          `json:"name"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// ListToolsResult is the result for tools/list. Pagination is accepted but
// the catalog always fits one page, so NextCursor stays null.
type ListToolsResult struct {
	Tools      []ToolInfo `json:"tools"`
	NextCursor any        `json:"nextCursor"`
}
