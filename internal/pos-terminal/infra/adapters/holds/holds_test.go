package holds

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/pos-checkout/internal/checkout/domain"
	"github.com/jcmexdev/pos-checkout/internal/checkout/ports"
	"github.com/jcmexdev/pos-checkout/internal/pkg/cache"
)

func heldBill(id string) domain.HeldBill {
	return domain.HeldBill{
		ID:         id,
		TerminalID: "T1",
		HeldAt:     time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Items: []domain.LineItem{
			{ProductID: "3", Name: "Latte", UnitPrice: decimal.RequireFromString("4.00"), Quantity: 2},
		},
		DiscountPercent: decimal.NewFromInt(10),
		CustomerPhone:   "03001234567",
	}
}

func archives(t *testing.T) map[string]ports.HoldArchive {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return map[string]ports.HoldArchive{
		"redis":  NewRedisArchive(cache.NewRedisCache(client, "pos-terminal"), time.Hour),
		"memory": NewMemoryArchive(),
	}
}

func TestArchive_SaveTake(t *testing.T) {
	for name, a := range archives(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, a.Save(ctx, heldBill("h1")))

			got, err := a.Take(ctx, "h1")
			require.NoError(t, err)
			assert.Equal(t, "T1", got.TerminalID)
			assert.Equal(t, "03001234567", got.CustomerPhone)
			assert.True(t, decimal.NewFromInt(10).Equal(got.DiscountPercent))
			require.Len(t, got.Items, 1)
			assert.Equal(t, 2, got.Items[0].Quantity)
			assert.True(t, decimal.RequireFromString("4").Equal(got.Items[0].UnitPrice))

			_, err = a.Take(ctx, "h1")
			assert.ErrorIs(t, err, domain.ErrHoldNotFound, "a hold resumes once")
		})
	}
}

func TestArchive_UnknownID(t *testing.T) {
	for name, a := range archives(t) {
		t.Run(name, func(t *testing.T) {
			_, err := a.Take(context.Background(), "missing")
			assert.ErrorIs(t, err, domain.ErrHoldNotFound)
		})
	}
}

func TestRedisArchive_Expires(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	a := NewRedisArchive(cache.NewRedisCache(client, "pos-terminal"), time.Minute)
	ctx := context.Background()

	require.NoError(t, a.Save(ctx, heldBill("h2")))
	assert.True(t, mr.Exists("pos-terminal:hold:h2"))

	mr.FastForward(2 * time.Minute)
	_, err := a.Take(ctx, "h2")
	assert.ErrorIs(t, err, domain.ErrHoldNotFound)
}

func TestMemoryArchive_CopiesItems(t *testing.T) {
	a := NewMemoryArchive()
	bill := heldBill("h3")
	require.NoError(t, a.Save(context.Background(), bill))
	bill.Items[0].Quantity = 99

	got, err := a.Take(context.Background(), "h3")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Items[0].Quantity)
}
