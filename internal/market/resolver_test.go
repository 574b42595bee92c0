package market

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fintrack/internal/cache"
)

// fakeStore is an in-memory cache.Store with optional forced failures.
type fakeStore struct {
	mu      sync.Mutex
	entries map[string]string
	getErr  error
	setErr  error
	sets    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: map[string]string{}}
}

func (s *fakeStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return "", s.getErr
	}
	val, ok := s.entries[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return val, nil
}

func (s *fakeStore) SetWithTTL(_ context.Context, key, value string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.entries[key] = value
	s.sets++
	return nil
}

// fakeProvider returns a scripted price and counts calls.
type fakeProvider struct {
	price *float64
	err   error
	calls int
}

func (p *fakeProvider) Quote(_ context.Context, _ string) (*float64, error) {
	p.calls++
	return p.price, p.err
}

func floatPtr(f float64) *float64 { return &f }

func TestCurrentPrice(t *testing.T) {
	ctx := context.Background()

	t.Run("miss_fetches_and_caches", func(t *testing.T) {
		store := newFakeStore()
		provider := &fakeProvider{price: floatPtr(189.41)}
		r := NewResolver(store, provider, time.Hour)

		price := r.CurrentPrice(ctx, "aapl")
		if price == nil || *price != 189.41 {
			t.Fatalf("expected 189.41, got %v", price)
		}
		if provider.calls != 1 {
			t.Errorf("expected 1 provider call, got %d", provider.calls)
		}
		if got := store.entries["price:AAPL"]; got != `{"price":189.41}` {
			t.Errorf("unexpected cache entry: %q", got)
		}
	})

	t.Run("hit_skips_provider", func(t *testing.T) {
		store := newFakeStore()
		provider := &fakeProvider{price: floatPtr(189.41)}
		r := NewResolver(store, provider, time.Hour)

		first := r.CurrentPrice(ctx, "AAPL")
		second := r.CurrentPrice(ctx, "AAPL")
		if first == nil || second == nil || *first != *second {
			t.Fatalf("expected matching prices, got %v and %v", first, second)
		}
		if provider.calls != 1 {
			t.Errorf("expected exactly 1 provider call within TTL, got %d", provider.calls)
		}
	})

	t.Run("expired_entry_refetches", func(t *testing.T) {
		store := newFakeStore()
		provider := &fakeProvider{price: floatPtr(189.41)}
		r := NewResolver(store, provider, time.Hour)

		r.CurrentPrice(ctx, "AAPL")
		// TTL expiry surfaces as a missing key.
		delete(store.entries, "price:AAPL")
		r.CurrentPrice(ctx, "AAPL")

		if provider.calls != 2 {
			t.Errorf("expected 2 provider calls across expiry, got %d", provider.calls)
		}
	})

	t.Run("ticker_canonicalized_to_uppercase", func(t *testing.T) {
		store := newFakeStore()
		provider := &fakeProvider{price: floatPtr(42.0)}
		r := NewResolver(store, provider, time.Hour)

		r.CurrentPrice(ctx, "btc-usd")
		r.CurrentPrice(ctx, "BTC-USD")

		if provider.calls != 1 {
			t.Errorf("expected case-insensitive cache key, got %d provider calls", provider.calls)
		}
		if _, ok := store.entries["price:BTC-USD"]; !ok {
			t.Errorf("expected entry under price:BTC-USD, have %v", store.entries)
		}
	})

	t.Run("unknown_ticker_returns_nil_and_caches_nothing", func(t *testing.T) {
		store := newFakeStore()
		provider := &fakeProvider{price: nil}
		r := NewResolver(store, provider, time.Hour)

		if price := r.CurrentPrice(ctx, "NOSUCH"); price != nil {
			t.Fatalf("expected nil price, got %v", *price)
		}
		if store.sets != 0 {
			t.Errorf("expected no cache writes, got %d", store.sets)
		}
	})

	t.Run("provider_error_returns_nil", func(t *testing.T) {
		store := newFakeStore()
		provider := &fakeProvider{err: errors.New("connection refused")}
		r := NewResolver(store, provider, time.Hour)

		if price := r.CurrentPrice(ctx, "AAPL"); price != nil {
			t.Fatalf("expected nil price on provider error, got %v", *price)
		}
		if store.sets != 0 {
			t.Errorf("expected no cache writes, got %d", store.sets)
		}
	})

	t.Run("cache_backend_failure_fails_open", func(t *testing.T) {
		store := newFakeStore()
		store.getErr = errors.New("redis: connection pool exhausted")
		provider := &fakeProvider{price: floatPtr(77.7)}
		r := NewResolver(store, provider, time.Hour)

		price := r.CurrentPrice(ctx, "AAPL")
		if price == nil || *price != 77.7 {
			t.Fatalf("expected provider fallback price 77.7, got %v", price)
		}
	})

	t.Run("cache_write_failure_still_returns_price", func(t *testing.T) {
		store := newFakeStore()
		store.setErr = errors.New("redis: read only replica")
		provider := &fakeProvider{price: floatPtr(12.5)}
		r := NewResolver(store, provider, time.Hour)

		price := r.CurrentPrice(ctx, "AAPL")
		if price == nil || *price != 12.5 {
			t.Fatalf("expected 12.5 despite cache write failure, got %v", price)
		}
	})

	t.Run("malformed_cache_entry_falls_through", func(t *testing.T) {
		store := newFakeStore()
		store.entries["price:AAPL"] = "not-json"
		provider := &fakeProvider{price: floatPtr(150.0)}
		r := NewResolver(store, provider, time.Hour)

		price := r.CurrentPrice(ctx, "AAPL")
		if price == nil || *price != 150.0 {
			t.Fatalf("expected fresh quote 150.0, got %v", price)
		}
		if provider.calls != 1 {
			t.Errorf("expected provider call past malformed entry, got %d", provider.calls)
		}
	})

	t.Run("priceless_cache_entry_falls_through", func(t *testing.T) {
		store := newFakeStore()
		// Valid JSON with no price field must not be served as price 0.
		store.entries["price:AAPL"] = "{}"
		provider := &fakeProvider{price: floatPtr(150.0)}
		r := NewResolver(store, provider, time.Hour)

		price := r.CurrentPrice(ctx, "AAPL")
		if price == nil || *price != 150.0 {
			t.Fatalf("expected fresh quote 150.0, got %v", price)
		}
		if provider.calls != 1 {
			t.Errorf("expected provider call past price-less entry, got %d", provider.calls)
		}
	})
}
