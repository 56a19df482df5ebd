// Package customer attaches an optional customer to the order being rung up.
package customer

import (
	"context"
	"fmt"
	"strings"

	"github.com/jcmexdev/pos-checkout/internal/checkout/ports"
)

// Binding is the customer attached to the active order. A binding with a
// phone and no name is the normal "no match" state.
type Binding struct {
	dir   ports.Directory
	phone string
	name  string
}

func NewBinding(dir ports.Directory) *Binding {
	return &Binding{dir: dir}
}

// SetPhone stores phone as entered and resolves it against the directory.
// A blank phone clears the binding without a lookup. On a lookup error the
// phone is kept, the name is cleared and the error is returned.
func (b *Binding) SetPhone(ctx context.Context, phone string) error {
	if strings.TrimSpace(phone) == "" {
		b.Clear()
		return nil
	}
	b.phone = phone
	b.name = ""
	if b.dir == nil {
		return nil
	}

	name, found, err := b.dir.ResolveByPhone(ctx, phone)
	if err != nil {
		return fmt.Errorf("resolve customer: %w", err)
	}
	if found {
		b.name = name
	}
	return nil
}

func (b *Binding) Clear() {
	b.phone = ""
	b.name = ""
}

func (b *Binding) Phone() string { return b.phone }

// ResolvedName is empty when no customer matched.
func (b *Binding) ResolvedName() string { return b.name }

func (b *Binding) Resolved() bool { return b.name != "" }
