package receiptlog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/jcmexdev/pos-checkout/internal/checkout/domain"
)

// TraceInfo holds the OTel identifiers extracted from a context.
type TraceInfo struct {
	TraceID string
	SpanID  string
}

// ExtractTraceInfo reads the active span from ctx. Both fields are empty when
// ctx carries no valid span (e.g. in unit tests).
func ExtractTraceInfo(ctx context.Context) TraceInfo {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return TraceInfo{}
	}
	return TraceInfo{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}

// NewEntry builds a journal entry for r with the trace info taken from ctx.
func NewEntry(ctx context.Context, r domain.Receipt, now time.Time) *Entry {
	ti := ExtractTraceInfo(ctx)
	return &Entry{
		Receipt:    r.Clone(),
		TraceID:    ti.TraceID,
		SpanID:     ti.SpanID,
		RecordedAt: now.UTC(),
	}
}
