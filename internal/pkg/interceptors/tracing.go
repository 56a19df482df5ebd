package interceptors

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/jcmexdev/pos-checkout/internal/pkg/interceptors/constants"
)

// TraceServerInterceptor moves the request and terminal ids from incoming
// metadata into the context and logs each call with its outcome.
func TraceServerInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		requestID := GetMetadataValue(ctx, constants.HeaderXRequestId)
		terminalID := GetMetadataValue(ctx, constants.HeaderXTerminalId)
		if requestID != "" {
			ctx = WithRequestID(ctx, requestID)
		}
		if terminalID != "" {
			ctx = WithTerminalID(ctx, terminalID)
		}

		start := time.Now()
		resp, err := handler(ctx, req)

		slog.InfoContext(ctx, "grpc call",
			slog.String("method", info.FullMethod),
			slog.String("terminal_id", terminalID),
			slog.String("code", status.Code(err).String()),
			slog.Duration("elapsed", time.Since(start)),
		)
		return resp, err
	}
}

// PropagateIDsClientInterceptor forwards the request and terminal ids of the
// calling context as outgoing metadata.
func PropagateIDsClientInterceptor() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		return invoker(ContextWithPropagatedIDs(ctx), method, req, reply, cc, opts...)
	}
}
