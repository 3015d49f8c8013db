// Package coingecko implements a coinfolio.PriceSource on top of the
// CoinGecko public API.
//
// Prices come from the simple/price endpoint, one request for all the coins
// of a portfolio. See https://docs.coingecko.com/v3.0.1/reference/simple-price
package coingecko

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/etnz/coinfolio"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the public CoinGecko API.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// DefaultTimeout bounds every request.
const DefaultTimeout = 20 * time.Second

// vsCurrency is the only quote currency requested.
const vsCurrency = "usd"

// demoKeyHeader carries the optional demo API key.
const demoKeyHeader = "x-cg-demo-api-key"

// Client is a CoinGecko API client.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client to another API root, e.g. a test server.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(base, "/") }
}

// WithAPIKey sets the demo API key.
func WithAPIKey(key string) Option { return func(c *Client) { c.apiKey = key } }

// WithTimeout overrides DefaultTimeout. Zero or negative values are ignored:
// requests are always bounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// WithCache keeps successful responses on disk in dir for ttl. A zero ttl
// disables the cache, which is the default.
func WithCache(dir string, ttl time.Duration) Option {
	return func(c *Client) {
		if ttl <= 0 {
			return
		}
		c.client.Transport = &diskCache{base: c.client.Transport, dir: dir, ttl: ttl, log: &c.log}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l zerolog.Logger) Option { return func(c *Client) { c.log = l } }

// New returns a Client for DefaultBaseURL with DefaultTimeout and no cache.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: DefaultTimeout, Transport: http.DefaultTransport},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch implements coinfolio.PriceSource. All ids are requested at once.
//
// Coins unknown to CoinGecko, or without a USD price, are absent from the
// result. Any other problem is a *coinfolio.PriceFetchError.
func (c *Client) Fetch(ctx context.Context, ids []coinfolio.ProviderID) (coinfolio.Quotes, error) {
	quotes := make(coinfolio.Quotes, len(ids))
	if len(ids) == 0 {
		return quotes, nil
	}

	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	q := url.Values{}
	q.Set("ids", strings.Join(names, ","))
	q.Set("vs_currencies", vsCurrency)
	addr := c.baseURL + "/simple/price?" + q.Encode()

	// {"ethereum":{"usd":1500.12},"solana":{"usd":150}}
	var content map[coinfolio.ProviderID]map[string]*decimal.Decimal
	if status, err := c.getJSON(ctx, addr, &content); err != nil {
		return nil, &coinfolio.PriceFetchError{Status: status, Err: err}
	}

	for _, id := range ids {
		price := content[id][vsCurrency]
		switch {
		case price == nil:
			c.log.Debug().Str("id", string(id)).Msg("no usd price")
		case price.IsNegative():
			c.log.Warn().Str("id", string(id)).Str("price", price.String()).Msg("ignoring negative price")
		default:
			quotes[id] = coinfolio.M(*price)
		}
	}
	c.log.Debug().Int("requested", len(ids)).Int("priced", len(quotes)).Msg("prices fetched")
	return quotes, nil
}
