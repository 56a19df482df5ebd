// Package directory adapts customer lookups to the checkout Directory port.
package directory

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/jcmexdev/pos-checkout/internal/checkout/ports"
	directoryv1 "github.com/jcmexdev/pos-checkout/internal/customer-directory/api/directoryv1"
	"github.com/jcmexdev/pos-checkout/internal/pkg/interceptors"
)

// GRPCDirectory resolves phones against the customer-directory service.
type GRPCDirectory struct {
	client  directoryv1.CustomerDirectoryClient
	timeout time.Duration
}

var _ ports.Directory = (*GRPCDirectory)(nil)

// NewGRPCDirectory bounds every lookup by timeout; zero means no bound.
func NewGRPCDirectory(client directoryv1.CustomerDirectoryClient, timeout time.Duration) *GRPCDirectory {
	return &GRPCDirectory{client: client, timeout: timeout}
}

// ResolveByPhone maps codes.NotFound to a miss. Any other failure is returned.
func (d *GRPCDirectory) ResolveByPhone(ctx context.Context, phone string) (string, bool, error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	res, err := d.client.ResolveByPhone(interceptors.ContextWithPropagatedIDs(ctx), wrapperspb.String(phone))
	if status.Code(err) == codes.NotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("grpc ResolveByPhone: %w", err)
	}
	return res.GetValue(), true, nil
}
