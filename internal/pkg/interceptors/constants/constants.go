// Package constants names the metadata headers and context keys shared by the
// HTTP middleware, the gRPC interceptors and the logger.
package constants

// contextKey is unexported so keys from other packages with the same
// underlying string cannot collide.
type contextKey string

const (
	HeaderXRequestId  = "x-request-id"
	HeaderXTerminalId = "x-terminal-id"

	ContextKeyRequestID  contextKey = HeaderXRequestId
	ContextKeyTerminalID contextKey = HeaderXTerminalId
)
