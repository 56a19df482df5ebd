package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jcmexdev/pos-checkout/internal/checkout/domain"
	"github.com/jcmexdev/pos-checkout/internal/checkout/money"
)

type mapCatalog map[string]domain.Product

func testCatalog() mapCatalog {
	c := mapCatalog{}
	for _, p := range []struct{ id, name, price string }{
		{"3", "Latte", "4.00"},
		{"4", "Croissant", "3.00"},
		{"1", "Espresso", "3.50"},
	} {
		c[p.id] = domain.Product{ID: p.id, Name: p.name, UnitPrice: money.MustParse(p.price)}
	}
	return c
}

func (c mapCatalog) LookupProduct(_ context.Context, id string) (domain.Product, error) {
	p, ok := c[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

type recordingSink struct {
	receipts []domain.Receipt
	err      error
}

func (s *recordingSink) Emit(_ context.Context, r domain.Receipt) error {
	s.receipts = append(s.receipts, r)
	return s.err
}

type mapHolds struct {
	bills   map[string]domain.HeldBill
	saveErr error
}

func newMapHolds() *mapHolds { return &mapHolds{bills: map[string]domain.HeldBill{}} }

func (h *mapHolds) Save(_ context.Context, b domain.HeldBill) error {
	if h.saveErr != nil {
		return h.saveErr
	}
	h.bills[b.ID] = b
	return nil
}

func (h *mapHolds) Take(_ context.Context, id string) (domain.HeldBill, error) {
	b, ok := h.bills[id]
	if !ok {
		return domain.HeldBill{}, domain.ErrHoldNotFound
	}
	delete(h.bills, id)
	return b, nil
}

type failingDirectory struct{}

func (failingDirectory) ResolveByPhone(context.Context, string) (string, bool, error) {
	return "", false, errors.New("directory unavailable")
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("00000000-%04x-4000-8000-000000000000", n)
	}
}

var fixedNow = func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }
