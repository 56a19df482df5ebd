package receiptlog

import (
	"context"
	"time"

	"github.com/jcmexdev/pos-checkout/internal/checkout/domain"
	"github.com/jcmexdev/pos-checkout/internal/checkout/ports"
)

// Journal adapts a Repository to the receipt sink port.
type Journal struct {
	repo Repository
	now  func() time.Time
}

var _ ports.ReceiptSink = (*Journal)(nil)

func NewJournal(repo Repository) *Journal {
	return &Journal{repo: repo, now: time.Now}
}

func (j *Journal) Name() string { return "journal" }

func (j *Journal) Emit(ctx context.Context, r domain.Receipt) error {
	return j.repo.Save(ctx, NewEntry(ctx, r, j.now()))
}

// Receipt returns a journaled receipt by id.
func (j *Journal) Receipt(ctx context.Context, id string) (domain.Receipt, error) {
	e, err := j.repo.Get(ctx, id)
	if err != nil {
		return domain.Receipt{}, err
	}
	return e.Receipt, nil
}

// Recent returns up to limit receipts of terminalID, newest first.
func (j *Journal) Recent(ctx context.Context, terminalID string, limit int) ([]domain.Receipt, error) {
	entries, err := j.repo.ListByTerminal(ctx, terminalID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Receipt, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Receipt)
	}
	return out, nil
}
