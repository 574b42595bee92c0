// Package market implements price resolution and investment valuation:
// a cache-aside price resolver over an external quote provider, and the
// arithmetic that turns lots plus a current price into gain/loss figures.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"fintrack/internal/config"
)

// QuoteProvider fetches a live market price for a ticker.
//
// The two failure modes are distinct: (nil, nil) means the provider answered
// but knows no market price for the ticker (unknown symbol, delisted), while
// a non-nil error is a transient failure (network, HTTP status, decode). The
// resolver collapses both to "price unavailable" but callers that want to
// retry or alert can tell them apart here.
type QuoteProvider interface {
	Quote(ctx context.Context, ticker string) (*float64, error)
}

const quoteUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"

// yahooQuoteResponse is the relevant slice of the Yahoo Finance v7 quote payload.
type yahooQuoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol             string   `json:"symbol"`
			RegularMarketPrice *float64 `json:"regularMarketPrice"`
		} `json:"result"`
		Error *json.RawMessage `json:"error"`
	} `json:"quoteResponse"`
}

// YahooClient fetches quotes from the Yahoo Finance v7 quote endpoint.
type YahooClient struct {
	client *resty.Client
}

// NewYahooClient creates a quote client with base URL and timeout from config.
func NewYahooClient(cfg *config.Config) *YahooClient {
	client := resty.New().
		SetBaseURL(cfg.QuoteBaseURL).
		SetTimeout(cfg.QuoteTimeout).
		SetHeader("User-Agent", quoteUserAgent)
	return &YahooClient{client: client}
}

// Quote returns the regular market price for ticker, or nil when Yahoo has
// no price for the symbol.
func (y *YahooClient) Quote(ctx context.Context, ticker string) (*float64, error) {
	resp, err := y.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParam("symbols", ticker).
		Get("/v7/finance/quote")
	if err != nil {
		return nil, fmt.Errorf("quote request for %s: %w", ticker, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("quote request for %s: unexpected status %d", ticker, resp.StatusCode())
	}

	var quoteResp yahooQuoteResponse
	if err := json.Unmarshal(resp.Body(), &quoteResp); err != nil {
		return nil, fmt.Errorf("decoding quote response for %s: %w", ticker, err)
	}

	// Unknown tickers come back with an empty result list or without a
	// regularMarketPrice field. Both mean "no price known", not an error.
	if len(quoteResp.QuoteResponse.Result) == 0 {
		return nil, nil
	}
	return quoteResp.QuoteResponse.Result[0].RegularMarketPrice, nil
}
