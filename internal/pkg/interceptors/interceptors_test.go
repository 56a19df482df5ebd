package interceptors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/jcmexdev/pos-checkout/internal/pkg/interceptors/constants"
)

func TestContextWithPropagatedIDs(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithTerminalID(ctx, "T1")

	out := ContextWithPropagatedIDs(ctx)

	md, ok := metadata.FromOutgoingContext(out)
	require.True(t, ok)
	assert.Equal(t, []string{"req-1"}, md.Get(constants.HeaderXRequestId))
	assert.Equal(t, []string{"T1"}, md.Get(constants.HeaderXTerminalId))

	again, _ := metadata.FromOutgoingContext(ContextWithPropagatedIDs(out))
	assert.Len(t, again.Get(constants.HeaderXRequestId), 1, "ids are not appended twice")
}

func TestContextWithPropagatedIDs_Nothing(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, ContextWithPropagatedIDs(ctx))
}

func TestGetMetadataValue_Incoming(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(constants.HeaderXRequestId, "req-9"))
	assert.Equal(t, "req-9", GetMetadataValue(ctx, constants.HeaderXRequestId))
	assert.Empty(t, GetMetadataValue(ctx, constants.HeaderXTerminalId))
}

func TestTraceServerInterceptor_MovesIDsIntoContext(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		constants.HeaderXRequestId, "req-2",
		constants.HeaderXTerminalId, "T7",
	))

	var seenReq, seenTerm any
	handler := func(ctx context.Context, req any) (any, error) {
		seenReq = ctx.Value(constants.ContextKeyRequestID)
		seenTerm = ctx.Value(constants.ContextKeyTerminalID)
		return "ok", nil
	}

	resp, err := TraceServerInterceptor()(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/x/Y"}, handler)

	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.Equal(t, "req-2", seenReq)
	assert.Equal(t, "T7", seenTerm)
}

func TestPropagateIDsClientInterceptor(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-3")

	var got metadata.MD
	invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		got, _ = metadata.FromOutgoingContext(ctx)
		return nil
	}

	require.NoError(t, PropagateIDsClientInterceptor()(ctx, "/x/Y", nil, nil, nil, invoker))
	assert.Equal(t, []string{"req-3"}, got.Get(constants.HeaderXRequestId))
}
