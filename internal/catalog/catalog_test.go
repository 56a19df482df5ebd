package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/pos-checkout/internal/checkout/domain"
)

func TestMemory_LookupProduct(t *testing.T) {
	c := NewMemory(Reference())

	p, err := c.LookupProduct(context.Background(), "9")
	require.NoError(t, err)
	assert.Equal(t, "T-Shirt", p.Name)
	assert.Equal(t, "19.99", p.UnitPrice.StringFixed(2))

	_, err = c.LookupProduct(context.Background(), "99")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestMemory_List(t *testing.T) {
	c := NewMemory(Reference())
	ctx := context.Background()

	all, err := c.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 12)

	food, err := c.List(ctx, Filter{Category: "Food"})
	require.NoError(t, err)
	assert.Len(t, food, 4)

	tea, err := c.List(ctx, Filter{Category: "all", Query: "TEA"})
	require.NoError(t, err)
	require.Len(t, tea, 1)
	assert.Equal(t, "11", tea[0].ID)

	none, err := c.List(ctx, Filter{Category: "electronics", Query: "bagel"})
	require.NoError(t, err)
	assert.Empty(t, none)
}
