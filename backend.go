package centime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/centime-app/centime/date"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Backend is the source of record the engine reads from. Implementations
// must be safe for concurrent use.
type Backend interface {
	// Accounts returns every account in wire form.
	Accounts(ctx context.Context) ([]AccountRecord, error)
	// Transactions returns the full transaction log in wire form.
	Transactions(ctx context.Context) ([]Record, error)
	// DailyPrices returns the observed prices of one symbol over a range.
	// A sparse or empty result is not an error.
	DailyPrices(ctx context.Context, symbol string, rng date.Range) ([]PricePoint, error)
	// CurrentTotal returns the authoritative live net worth in the
	// backend's display currency.
	CurrentTotal(ctx context.Context) (float64, error)
}

// HTTPBackend reads from a JSON HTTP API:
//
//	GET {base}/accounts
//	GET {base}/transactions
//	GET {base}/prices/{symbol}?from=YYYY-MM-DD&to=YYYY-MM-DD
//	GET {base}/summary/current
type HTTPBackend struct {
	base    string
	client  *http.Client
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewHTTPBackend builds a backend against the given base URL. Requests are
// rate limited to stay polite with upstream price providers proxied behind
// the API.
func NewHTTPBackend(base string, client *http.Client, log zerolog.Logger) *HTTPBackend {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPBackend{
		base:    base,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(10), 10),
		log:     log,
	}
}

// jget fetches a URL and decodes its JSON body into v.
func (b *HTTPBackend) jget(ctx context.Context, u string, v any) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	b.log.Debug().Str("url", u).Msg("backend request")
	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", u, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func (b *HTTPBackend) Accounts(ctx context.Context) ([]AccountRecord, error) {
	var recs []AccountRecord
	if err := b.jget(ctx, b.base+"/accounts", &recs); err != nil {
		return nil, fmt.Errorf("fetching accounts: %w", err)
	}
	return recs, nil
}

func (b *HTTPBackend) Transactions(ctx context.Context) ([]Record, error) {
	var recs []Record
	if err := b.jget(ctx, b.base+"/transactions", &recs); err != nil {
		return nil, fmt.Errorf("fetching transactions: %w", err)
	}
	return recs, nil
}

func (b *HTTPBackend) DailyPrices(ctx context.Context, symbol string, rng date.Range) ([]PricePoint, error) {
	u := fmt.Sprintf("%s/prices/%s?from=%s&to=%s",
		b.base, url.PathEscape(symbol), rng.From, rng.To)
	var points []PricePoint
	if err := b.jget(ctx, u, &points); err != nil {
		return nil, fmt.Errorf("fetching prices for %s: %w", symbol, err)
	}
	for i := range points {
		if points[i].Symbol == "" {
			points[i].Symbol = symbol
		}
	}
	return points, nil
}

func (b *HTTPBackend) CurrentTotal(ctx context.Context) (float64, error) {
	var summary struct {
		Total Numeric `json:"total"`
	}
	if err := b.jget(ctx, b.base+"/summary/current", &summary); err != nil {
		return 0, fmt.Errorf("fetching current total: %w", err)
	}
	return float64(summary.Total), nil
}
