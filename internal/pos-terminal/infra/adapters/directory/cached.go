package directory

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jcmexdev/pos-checkout/internal/checkout/ports"
	"github.com/jcmexdev/pos-checkout/internal/pkg/cache"
)

const cacheOperation = "customer"

// CachedDirectory is a read-through cache in front of another Directory.
// Misses are cached too, so an unknown phone is not looked up again until
// the entry expires. Concurrent lookups of one phone share a single call.
type CachedDirectory struct {
	next  ports.Directory
	cache cache.Cache
	ttl   time.Duration
	sfg   singleflight.Group
}

var _ ports.Directory = (*CachedDirectory)(nil)

func NewCachedDirectory(next ports.Directory, c cache.Cache, ttl time.Duration) *CachedDirectory {
	return &CachedDirectory{next: next, cache: c, ttl: ttl}
}

type cachedLookup struct {
	Name  string `json:"name,omitempty"`
	Found bool   `json:"found"`
}

// ResolveByPhone consults the cache first. Cache failures are logged and
// the lookup falls through to the wrapped directory. The shared lookup
// outlives a cancelled caller so callers that joined it still get an answer.
func (d *CachedDirectory) ResolveByPhone(ctx context.Context, phone string) (string, bool, error) {
	key := d.cache.GenerateKey(cacheOperation, phone)
	flightCtx := context.WithoutCancel(ctx)

	ch := d.sfg.DoChan(key, func() (any, error) {
		ctx := flightCtx
		if raw, ok, err := d.cache.Get(ctx, key); err != nil {
			slog.WarnContext(ctx, "customer cache get failed", slog.Any("error", err))
		} else if ok {
			var hit cachedLookup
			if err := json.Unmarshal([]byte(raw), &hit); err == nil {
				return hit, nil
			}
			slog.WarnContext(ctx, "customer cache entry unreadable", slog.String("key", key))
		}

		name, found, err := d.next.ResolveByPhone(ctx, phone)
		if err != nil {
			return nil, err
		}
		res := cachedLookup{Name: name, Found: found}

		if b, err := json.Marshal(res); err == nil {
			if err := d.cache.Set(ctx, key, b, d.ttl); err != nil {
				slog.WarnContext(ctx, "customer cache set failed", slog.Any("error", err))
			}
		}
		return res, nil
	})

	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return "", false, r.Err
		}
		res := r.Val.(cachedLookup)
		return res.Name, res.Found, nil
	}
}

// Forget drops the cached result for phone.
func (d *CachedDirectory) Forget(ctx context.Context, phone string) error {
	return d.cache.Delete(ctx, d.cache.GenerateKey(cacheOperation, phone))
}
