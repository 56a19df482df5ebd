package holds

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/jcmexdev/pos-checkout/internal/checkout/domain"
	"github.com/jcmexdev/pos-checkout/internal/checkout/ports"
)

// MemoryArchive keeps held bills in process memory. They are lost on restart.
type MemoryArchive struct {
	mu    sync.Mutex
	bills map[string]domain.HeldBill
}

var _ ports.HoldArchive = (*MemoryArchive)(nil)

func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{bills: make(map[string]domain.HeldBill)}
}

func (a *MemoryArchive) Save(_ context.Context, bill domain.HeldBill) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	bill.Items = slices.Clone(bill.Items)
	a.bills[bill.ID] = bill
	return nil
}

func (a *MemoryArchive) Take(_ context.Context, id string) (domain.HeldBill, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	bill, ok := a.bills[id]
	if !ok {
		return domain.HeldBill{}, fmt.Errorf("holds: %q: %w", id, domain.ErrHoldNotFound)
	}
	delete(a.bills, id)
	return bill, nil
}
