package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fintrack/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*YahooClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := &config.Config{QuoteBaseURL: srv.URL, QuoteTimeout: 2 * time.Second}
	return NewYahooClient(cfg), srv
}

func TestYahooClientQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("returns_regular_market_price", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("symbols"); got != "AAPL" {
				t.Errorf("expected symbols=AAPL, got %q", got)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"quoteResponse":{"result":[{"symbol":"AAPL","regularMarketPrice":189.41}],"error":null}}`))
		})

		price, err := client.Quote(ctx, "AAPL")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if price == nil || *price != 189.41 {
			t.Fatalf("expected 189.41, got %v", price)
		}
	})

	t.Run("unknown_ticker_empty_result", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"quoteResponse":{"result":[],"error":null}}`))
		})

		price, err := client.Quote(ctx, "NOSUCHTICKER")
		if err != nil {
			t.Fatalf("expected no error for unknown ticker, got %v", err)
		}
		if price != nil {
			t.Fatalf("expected nil price, got %v", *price)
		}
	})

	t.Run("missing_price_field", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"quoteResponse":{"result":[{"symbol":"WEIRD"}],"error":null}}`))
		})

		price, err := client.Quote(ctx, "WEIRD")
		if err != nil {
			t.Fatalf("expected no error when price field absent, got %v", err)
		}
		if price != nil {
			t.Fatalf("expected nil price, got %v", *price)
		}
	})

	t.Run("http_error_status", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		if _, err := client.Quote(ctx, "AAPL"); err == nil {
			t.Fatal("expected error on non-200 status")
		}
	})

	t.Run("malformed_body", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>rate limited</html>`))
		})

		if _, err := client.Quote(ctx, "AAPL"); err == nil {
			t.Fatal("expected decode error on malformed body")
		}
	})
}
