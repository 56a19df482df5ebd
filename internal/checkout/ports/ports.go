// Package ports lists the collaborators the checkout engine calls out to.
// Adapters live outside internal/checkout.
package ports

import (
	"context"

	"github.com/jcmexdev/pos-checkout/internal/checkout/domain"
)

// Catalog resolves a product id to its display name and unit price.
// Implementations return domain.ErrProductNotFound for unknown ids.
type Catalog interface {
	LookupProduct(ctx context.Context, id string) (domain.Product, error)
}

// Directory resolves a customer phone number. A miss is reported with
// found == false and a nil error.
type Directory interface {
	ResolveByPhone(ctx context.Context, phone string) (name string, found bool, err error)
}

// ReceiptSink receives every finalized receipt (print, email, journal, bus).
type ReceiptSink interface {
	Emit(ctx context.Context, receipt domain.Receipt) error
}

// HoldArchive stores suspended bills so they can be resumed later.
// Take returns domain.ErrHoldNotFound when id is unknown.
type HoldArchive interface {
	Save(ctx context.Context, bill domain.HeldBill) error
	Take(ctx context.Context, id string) (domain.HeldBill, error)
}
