package receiptlog

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get for an unknown receipt id.
	ErrNotFound = errors.New("receiptlog: receipt not found")
	// ErrConflict is returned by Save when the receipt id is already
	// journaled with different content.
	ErrConflict = errors.New("receiptlog: receipt id already journaled")
)

// Repository persists journal entries. Save appends; saving an identical
// receipt again is a no-op, a different receipt under a known id fails with
// ErrConflict.
type Repository interface {
	Save(ctx context.Context, entry *Entry) error
	Get(ctx context.Context, receiptID string) (*Entry, error)
	ListByTerminal(ctx context.Context, terminalID string, limit int) ([]*Entry, error)
}
