package receipts

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jcmexdev/pos-checkout/internal/checkout/domain"
	"github.com/jcmexdev/pos-checkout/internal/checkout/ports"
)

// Printer writes rendered receipts to w, one blank line between receipts.
type Printer struct {
	mu     sync.Mutex
	w      io.Writer
	header Header
}

var _ ports.ReceiptSink = (*Printer)(nil)

func NewPrinter(w io.Writer, h Header) *Printer {
	return &Printer{w: w, header: h}
}

func (p *Printer) Name() string { return "printer" }

func (p *Printer) Emit(_ context.Context, r domain.Receipt) error {
	text := strings.Join(Render(r, p.header), "\n") + "\n\n"

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := io.WriteString(p.w, text); err != nil {
		return fmt.Errorf("printer: %s: %w", r.ID, err)
	}
	return nil
}
