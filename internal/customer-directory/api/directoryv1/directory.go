// Package directoryv1 is the wire contract of the customer directory:
// service pos.customer.v1.CustomerDirectory with a single unary method,
// ResolveByPhone, taking the phone and returning the customer name as
// google.protobuf.StringValue. A phone with no customer is codes.NotFound.
package directoryv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName              = "pos.customer.v1.CustomerDirectory"
	ResolveByPhoneFullMethod = "/" + ServiceName + "/ResolveByPhone"
)

type CustomerDirectoryServer interface {
	ResolveByPhone(ctx context.Context, phone *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

// UnimplementedCustomerDirectoryServer can be embedded for forward compatibility.
type UnimplementedCustomerDirectoryServer struct{}

func (UnimplementedCustomerDirectoryServer) ResolveByPhone(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method ResolveByPhone not implemented")
}

var CustomerDirectoryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CustomerDirectoryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ResolveByPhone", Handler: resolveByPhoneHandler},
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterCustomerDirectoryServer(s grpc.ServiceRegistrar, srv CustomerDirectoryServer) {
	s.RegisterService(&CustomerDirectoryServiceDesc, srv)
}

func resolveByPhoneHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CustomerDirectoryServer).ResolveByPhone(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ResolveByPhoneFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CustomerDirectoryServer).ResolveByPhone(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

type CustomerDirectoryClient interface {
	ResolveByPhone(ctx context.Context, phone *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

type customerDirectoryClient struct {
	cc grpc.ClientConnInterface
}

func NewCustomerDirectoryClient(cc grpc.ClientConnInterface) CustomerDirectoryClient {
	return &customerDirectoryClient{cc: cc}
}

func (c *customerDirectoryClient) ResolveByPhone(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, ResolveByPhoneFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
