package market

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/logger"
)

// cachedPrice is the JSON shape stored in the cache under price keys. Price
// is a pointer so an entry without a price field is distinguishable from a
// genuine zero and can be discarded instead of served.
type cachedPrice struct {
	Price *float64 `json:"price"`
}

// Resolver answers "what is the current price for this ticker" using the
// cache-aside pattern: check the cache, fall back to the quote provider on a
// miss, and populate the cache with the fetched price.
//
// Every failure — cache backend down, provider unreachable, unknown ticker —
// degrades to a nil price. Callers must treat nil as "couldn't price this
// instrument", never as zero. Concurrent misses for the same ticker may each
// hit the provider and each write the cache; last write wins, which is fine
// because the cached value is a fresh quote either way.
type Resolver struct {
	store    cache.Store
	provider QuoteProvider
	ttl      time.Duration
}

// NewResolver creates a price resolver. ttl bounds how long a cached quote is
// served before the provider is consulted again.
func NewResolver(store cache.Store, provider QuoteProvider, ttl time.Duration) *Resolver {
	return &Resolver{store: store, provider: provider, ttl: ttl}
}

// CacheKey returns the canonical cache key for a ticker.
func CacheKey(ticker string) string {
	return "price:" + strings.ToUpper(ticker)
}

// CurrentPrice returns the current market price for ticker, or nil when no
// price could be obtained.
func (r *Resolver) CurrentPrice(ctx context.Context, ticker string) *float64 {
	key := CacheKey(ticker)

	val, err := r.store.Get(ctx, key)
	if err == nil {
		var entry cachedPrice
		if jsonErr := json.Unmarshal([]byte(val), &entry); jsonErr == nil && entry.Price != nil {
			return entry.Price
		}
		logger.Get().Warnw("discarding malformed cache entry", "key", key, "value", val)
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		// A broken cache backend is treated as a miss: fail open to the provider.
		logger.Get().Warnw("price cache unavailable", "key", key, "error", err)
	}

	price, err := r.provider.Quote(ctx, ticker)
	if err != nil {
		logger.Get().Warnw("quote fetch failed", "ticker", ticker, "error", err)
		return nil
	}
	if price == nil {
		// No market price for this ticker. Not cached, so a symbol that
		// starts trading later is picked up on the next request.
		return nil
	}

	raw, err := json.Marshal(cachedPrice{Price: price})
	if err == nil {
		if setErr := r.store.SetWithTTL(ctx, key, string(raw), r.ttl); setErr != nil {
			logger.Get().Warnw("failed to cache price", "key", key, "error", setErr)
		}
	}

	return price
}
