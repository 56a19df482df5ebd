// Package app implements the customer directory gRPC service.
package app

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	directoryv1 "github.com/jcmexdev/pos-checkout/internal/customer-directory/api/directoryv1"
	"github.com/jcmexdev/pos-checkout/internal/pkg/interceptors"
	"github.com/jcmexdev/pos-checkout/internal/pkg/interceptors/constants"
)

// DirectoryServer resolves phones by exact string match. It never creates a
// customer as a side effect of a lookup.
type DirectoryServer struct {
	directoryv1.UnimplementedCustomerDirectoryServer
	mu        sync.RWMutex
	customers map[string]string
}

var _ directoryv1.CustomerDirectoryServer = (*DirectoryServer)(nil)

// NewDirectoryServer serves the given phone → name entries.
func NewDirectoryServer(customers map[string]string) *DirectoryServer {
	s := &DirectoryServer{customers: make(map[string]string, len(customers))}
	for phone, name := range customers {
		s.customers[phone] = name
	}
	return s
}

func (s *DirectoryServer) ResolveByPhone(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	phone := req.GetValue()
	if strings.TrimSpace(phone) == "" {
		return nil, status.Error(codes.InvalidArgument, "phone is required")
	}

	s.mu.RLock()
	name, ok := s.customers[phone]
	s.mu.RUnlock()

	slog.DebugContext(ctx, "directory lookup",
		slog.String("terminal_id", interceptors.GetMetadataValue(ctx, constants.HeaderXTerminalId)),
		slog.Bool("found", ok),
	)
	if !ok {
		return nil, status.Errorf(codes.NotFound, "no customer for phone %s", phone)
	}
	return wrapperspb.String(name), nil
}

// Register adds or renames a customer.
func (s *DirectoryServer) Register(phone, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[phone] = name
}

func (s *DirectoryServer) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.customers)
}
