// Package interceptors carries the request id (and terminal id) between the
// register's HTTP edge and the gRPC services it calls.
package interceptors

import (
	"context"

	"google.golang.org/grpc/metadata"

	"github.com/jcmexdev/pos-checkout/internal/pkg/interceptors/constants"
)

// WithRequestID stores id in ctx for logging and outgoing calls.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, constants.ContextKeyRequestID, id)
}

// WithTerminalID stores the register id in ctx.
func WithTerminalID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, constants.ContextKeyTerminalID, id)
}

// GetMetadataValue looks key up in the context values first, then in the
// incoming and outgoing gRPC metadata. It returns "" when absent.
func GetMetadataValue(ctx context.Context, key string) string {
	if v, ok := ctx.Value(contextKeyFor(key)).(string); ok && v != "" {
		return v
	}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if vals := md.Get(key); len(vals) > 0 {
			return vals[0]
		}
	}
	if md, ok := metadata.FromOutgoingContext(ctx); ok {
		if vals := md.Get(key); len(vals) > 0 {
			return vals[0]
		}
	}
	return ""
}

// ContextWithPropagatedIDs copies the request and terminal ids into the
// outgoing gRPC metadata of ctx, skipping the ones that are unset.
func ContextWithPropagatedIDs(ctx context.Context) context.Context {
	var kv []string
	for _, key := range []string{constants.HeaderXRequestId, constants.HeaderXTerminalId} {
		if v := GetMetadataValue(ctx, key); v != "" {
			if md, ok := metadata.FromOutgoingContext(ctx); ok && len(md.Get(key)) > 0 {
				continue
			}
			kv = append(kv, key, v)
		}
	}
	if len(kv) == 0 {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, kv...)
}

func contextKeyFor(header string) any {
	switch header {
	case constants.HeaderXRequestId:
		return constants.ContextKeyRequestID
	case constants.HeaderXTerminalId:
		return constants.ContextKeyTerminalID
	}
	return header
}
