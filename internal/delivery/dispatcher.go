// Package delivery fans a finalized receipt out to every configured sink
// (journal, message bus, printer).
package delivery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jcmexdev/pos-checkout/internal/checkout/domain"
	"github.com/jcmexdev/pos-checkout/internal/checkout/ports"
)

// Sink is a receipt sink with a name for logs and errors.
type Sink interface {
	ports.ReceiptSink
	Name() string
}

// Dispatcher delivers each receipt to its sinks in order. A failing sink
// does not stop the ones after it.
type Dispatcher struct {
	sinks []Sink
}

var _ ports.ReceiptSink = (*Dispatcher)(nil)

func NewDispatcher(sinks ...Sink) *Dispatcher {
	return &Dispatcher{sinks: sinks}
}

// Emit returns the joined errors of every sink that failed, or nil.
func (d *Dispatcher) Emit(ctx context.Context, r domain.Receipt) error {
	ctx, span := otel.Tracer("delivery").Start(ctx, "delivery.Emit")
	defer span.End()
	span.SetAttributes(attribute.String("receipt.id", r.ID), attribute.Int("delivery.sinks", len(d.sinks)))

	var errs []error
	for _, s := range d.sinks {
		if err := s.Emit(ctx, r.Clone()); err != nil {
			slog.ErrorContext(ctx, "receipt sink failed",
				slog.String("sink", s.Name()),
				slog.String("receipt_id", r.ID),
				slog.Any("error", err),
			)
			errs = append(errs, fmt.Errorf("delivery: %s: %w", s.Name(), err))
			continue
		}
		slog.DebugContext(ctx, "receipt delivered", slog.String("sink", s.Name()), slog.String("receipt_id", r.ID))
	}

	err := errors.Join(errs...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "receipt delivery incomplete")
	}
	return err
}

// Sinks lists the configured sink names in delivery order.
func (d *Dispatcher) Sinks() []string {
	names := make([]string, 0, len(d.sinks))
	for _, s := range d.sinks {
		names = append(names, s.Name())
	}
	return names
}
