package app

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/pos-checkout/internal/catalog"
	"github.com/jcmexdev/pos-checkout/internal/checkout/money"
	"github.com/jcmexdev/pos-checkout/internal/checkout/order"
)

func newRegistry() *Registry {
	return NewRegistry(NewSessionFactory(money.MustParse("0.08"), order.Deps{
		Catalog: catalog.NewMemory(catalog.Reference()),
	}))
}

func TestRegistry_SessionPerTerminal(t *testing.T) {
	reg := newRegistry()
	ctx := context.Background()

	require.NoError(t, reg.Do("T1", func(s *order.Session) error { return s.AddItem(ctx, "1") }))
	require.NoError(t, reg.Do("T2", func(s *order.Session) error { return nil }))

	_ = reg.Do("T1", func(s *order.Session) error {
		assert.Equal(t, "T1", s.TerminalID())
		assert.Len(t, s.Items(), 1)
		return nil
	})
	_ = reg.Do("T2", func(s *order.Session) error {
		assert.Empty(t, s.Items())
		return nil
	})
	assert.Equal(t, []string{"T1", "T2"}, reg.Terminals())
}

func TestRegistry_RejectsBlankTerminal(t *testing.T) {
	err := newRegistry().Do("  ", func(*order.Session) error { return nil })
	assert.ErrorIs(t, err, ErrInvalidTerminal)
}

func TestRegistry_SerializesPerTerminal(t *testing.T) {
	reg := newRegistry()
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = reg.Do("T1", func(s *order.Session) error { return s.AddItem(ctx, "1") })
		}()
	}
	wg.Wait()

	_ = reg.Do("T1", func(s *order.Session) error {
		require.Len(t, s.Items(), 1)
		assert.Equal(t, 50, s.Items()[0].Quantity)
		return nil
	})
}
