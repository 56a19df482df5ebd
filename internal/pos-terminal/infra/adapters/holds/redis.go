// Package holds stores suspended bills between HoldBill and ResumeHeld.
package holds

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jcmexdev/pos-checkout/internal/checkout/domain"
	"github.com/jcmexdev/pos-checkout/internal/checkout/ports"
	"github.com/jcmexdev/pos-checkout/internal/pkg/cache"
)

const cacheOperation = "hold"

// RedisArchive keeps held bills in Redis until they are resumed or expire.
type RedisArchive struct {
	cache cache.Cache
	ttl   time.Duration
}

var _ ports.HoldArchive = (*RedisArchive)(nil)

func NewRedisArchive(c cache.Cache, ttl time.Duration) *RedisArchive {
	return &RedisArchive{cache: c, ttl: ttl}
}

func (a *RedisArchive) Save(ctx context.Context, bill domain.HeldBill) error {
	b, err := json.Marshal(bill)
	if err != nil {
		return fmt.Errorf("holds: encode %q: %w", bill.ID, err)
	}
	if err := a.cache.Set(ctx, a.cache.GenerateKey(cacheOperation, bill.ID), b, a.ttl); err != nil {
		return fmt.Errorf("holds: save %q: %w", bill.ID, err)
	}
	return nil
}

// Take removes and returns the bill, so a hold can be resumed only once.
func (a *RedisArchive) Take(ctx context.Context, id string) (domain.HeldBill, error) {
	raw, found, err := a.cache.Take(ctx, a.cache.GenerateKey(cacheOperation, id))
	if err != nil {
		return domain.HeldBill{}, fmt.Errorf("holds: take %q: %w", id, err)
	}
	if !found {
		return domain.HeldBill{}, fmt.Errorf("holds: %q: %w", id, domain.ErrHoldNotFound)
	}

	var bill domain.HeldBill
	if err := json.Unmarshal([]byte(raw), &bill); err != nil {
		return domain.HeldBill{}, fmt.Errorf("holds: decode %q: %w", id, err)
	}
	return bill, nil
}
