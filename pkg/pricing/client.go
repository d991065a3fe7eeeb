// Package pricing implements the REST client for BTC price lookups.
//
// The client fetches current and historical prices by date and currency,
// retries transient failures with exponential backoff, and caches responses
// on disk. Price lookups are best-effort: callers treat a failed lookup as
// an absent price, never a fatal error (see [IsAbsent]).
package pricing

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/errors"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/httputil"
)

// DefaultBaseURL is the default price API endpoint (CoinGecko-compatible).
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// DefaultCurrency is the fiat currency used when none is specified.
const DefaultCurrency = "usd"

// Client is the price-lookup client. It is safe for concurrent use as long
// as the underlying cache is (the file cache is process-safe per entry).
type Client struct {
	http    *http.Client
	cache   *httputil.Cache
	baseURL string
}

// NewClient creates a price client.
//
// baseURL may be empty to use [DefaultBaseURL]. cache may be nil to disable
// response caching (every call hits the network).
func NewClient(baseURL string, cache *httputil.Cache) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    &http.Client{Timeout: 15 * time.Second},
		cache:   cache,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// CurrentPrice returns the current BTC price in the given fiat currency.
func (c *Client) CurrentPrice(ctx context.Context, currency string) (float64, error) {
	currency = normalizeCurrency(currency)
	if err := errors.ValidateCurrency(currency); err != nil {
		return 0, err
	}

	var out struct {
		Bitcoin map[string]float64 `json:"bitcoin"`
	}
	url := fmt.Sprintf("%s/simple/price?ids=bitcoin&vs_currencies=%s", c.baseURL, currency)
	if err := c.cached(ctx, "current:"+currency, url, &out); err != nil {
		return 0, err
	}

	price, ok := out.Bitcoin[currency]
	if !ok {
		return 0, errors.New(errors.ErrCodePriceNotFound, "no %s price in response", currency)
	}
	return price, nil
}

// HistoricalPrice returns the BTC price on the given date in the given fiat
// currency. Historical prices are immutable, so cached entries are reused
// regardless of age.
func (c *Client) HistoricalPrice(ctx context.Context, date time.Time, currency string) (float64, error) {
	currency = normalizeCurrency(currency)
	if err := errors.ValidateCurrency(currency); err != nil {
		return 0, err
	}

	var out struct {
		MarketData struct {
			CurrentPrice map[string]float64 `json:"current_price"`
		} `json:"market_data"`
	}
	day := date.UTC().Format("02-01-2006")
	url := fmt.Sprintf("%s/coins/bitcoin/history?date=%s", c.baseURL, day)
	if err := c.cached(ctx, "history:"+day, url, &out); err != nil {
		return 0, err
	}

	price, ok := out.MarketData.CurrentPrice[currency]
	if !ok {
		return 0, errors.New(errors.ErrCodePriceNotFound, "no %s price for %s", currency, day)
	}
	return price, nil
}

// IsAbsent reports whether err means "no price available" as opposed to a
// malformed request: not-found responses, rate limiting, and network
// failures all count as absent. Report rows carry a null fiat value in
// this case.
func IsAbsent(err error) bool {
	if err == nil {
		return false
	}
	var rl *errors.RateLimitedError
	if stderrors.As(err, &rl) {
		return true
	}
	return errors.Is(err, errors.ErrCodePriceNotFound) ||
		errors.Is(err, errors.ErrCodeNotFound) ||
		errors.Is(err, errors.ErrCodeNetwork)
}

// cached fetches url into v through the response cache and retry layer.
func (c *Client) cached(ctx context.Context, key, url string, v any) error {
	if c.cache != nil {
		if ok, _ := c.cache.Get(key, v); ok {
			return nil
		}
	}
	if err := httputil.RetryWithBackoff(ctx, func() error { return c.get(ctx, url, v) }); err != nil {
		return err
	}
	if c.cache != nil {
		_ = c.cache.Set(key, v)
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return errors.New(errors.ErrCodePriceNotFound, "price not found")
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &errors.RateLimitedError{RetryAfter: retryAfter}
	case resp.StatusCode >= 500:
		return &httputil.RetryableError{Err: errors.New(errors.ErrCodeNetwork, "status %d", resp.StatusCode)}
	default:
		return errors.New(errors.ErrCodeNetwork, "status %d", resp.StatusCode)
	}
}

func normalizeCurrency(currency string) string {
	if currency == "" {
		return DefaultCurrency
	}
	return strings.ToLower(currency)
}
