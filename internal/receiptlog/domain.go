// Package receiptlog keeps a durable, append-only journal of every finalized
// sale.
//
// Each entry stores the full receipt plus the trace and span ids that were
// active when it was written, so a row can be matched to its distributed
// trace. The journal is also a receipt sink: wire a Journal into the
// delivery dispatcher and every receipt lands here.
package receiptlog

import (
	"time"

	"github.com/jcmexdev/pos-checkout/internal/checkout/domain"
)

// Entry is a single row in the receipts table.
type Entry struct {
	Receipt domain.Receipt

	// TraceID is the W3C trace id of the span that finalized the sale,
	// or empty when no span was active.
	TraceID string
	SpanID  string

	// RecordedAt is when the row was written, not when the sale happened.
	RecordedAt time.Time
}
