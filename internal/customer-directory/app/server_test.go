package app

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/wrapperspb"

	directoryv1 "github.com/jcmexdev/pos-checkout/internal/customer-directory/api/directoryv1"
	"github.com/jcmexdev/pos-checkout/internal/pkg/interceptors"
)

func startServer(t *testing.T, srv *DirectoryServer) directoryv1.CustomerDirectoryClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(grpc.UnaryInterceptor(interceptors.TraceServerInterceptor()))
	directoryv1.RegisterCustomerDirectoryServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return directoryv1.NewCustomerDirectoryClient(conn)
}

func TestResolveByPhone_Hit(t *testing.T) {
	client := startServer(t, NewDirectoryServer(map[string]string{"03001234567": "Ali Khan"}))

	res, err := client.ResolveByPhone(context.Background(), wrapperspb.String("03001234567"))

	require.NoError(t, err)
	assert.Equal(t, "Ali Khan", res.GetValue())
}

func TestResolveByPhone_Miss(t *testing.T) {
	client := startServer(t, NewDirectoryServer(map[string]string{"03001234567": "Ali Khan"}))

	_, err := client.ResolveByPhone(context.Background(), wrapperspb.String("0300 1234567"))

	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestResolveByPhone_Blank(t *testing.T) {
	client := startServer(t, NewDirectoryServer(nil))

	_, err := client.ResolveByPhone(context.Background(), wrapperspb.String(" "))

	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestRegister(t *testing.T) {
	srv := NewDirectoryServer(nil)
	client := startServer(t, srv)

	srv.Register("111", "Sara")
	res, err := client.ResolveByPhone(context.Background(), wrapperspb.String("111"))

	require.NoError(t, err)
	assert.Equal(t, "Sara", res.GetValue())
	assert.Equal(t, 1, srv.Len())
}

func TestNewDirectoryServer_CopiesInput(t *testing.T) {
	in := map[string]string{"1": "A"}
	srv := NewDirectoryServer(in)
	in["2"] = "B"
	assert.Equal(t, 1, srv.Len())
}
