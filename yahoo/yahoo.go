// Package yahoo fetches quotes, historical prices and exchange rates from
// the Yahoo Finance v8 chart endpoint.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/harksen/stockfolio"
)

const defaultBaseURL = "https://query2.finance.yahoo.com"

const userAgent = "stockfolio/1.0"

// Client talks to the Yahoo Finance chart API. The zero value is not usable,
// use New.
type Client struct {
	http    *http.Client
	baseURL string
	log     zerolog.Logger
}

// New returns a client with sensible timeouts.
func New(log zerolog.Logger) *Client {
	return &Client{
		http:    &http.Client{Timeout: 15 * time.Second},
		baseURL: defaultBaseURL,
		log:     log,
	}
}

// NewWithBaseURL points the client at an alternate endpoint, for tests.
func NewWithBaseURL(log zerolog.Logger, base string) *Client {
	c := New(log)
	c.baseURL = strings.TrimRight(base, "/")
	return c
}

// chartResponse is the subset of the v8 chart payload we read. Close series
// use pointers because Yahoo reports non-trading gaps as JSON nulls.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"previousClose"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote    []closeIndicator    `json:"quote"`
				AdjClose []adjCloseIndicator `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type closeIndicator struct {
	Close []*float64 `json:"close"`
}

type adjCloseIndicator struct {
	AdjClose []*float64 `json:"adjclose"`
}

// jwget performs a GET and unmarshals the JSON body into data.
func (c *Client) jwget(ctx context.Context, addr string, data interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(data)
}

// chart fetches the chart payload for one symbol and returns its single
// result entry.
func (c *Client) chart(ctx context.Context, symbol string, query url.Values) (*chartResponse, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), query.Encode())

	var raw chartResponse
	if err := c.jwget(ctx, addr, &raw); err != nil {
		return nil, err
	}
	if raw.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart %q: %s: %s", symbol, raw.Chart.Error.Code, raw.Chart.Error.Description)
	}
	if len(raw.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo chart %q: empty result", symbol)
	}
	return &raw, nil
}

// series fetches the daily close series for symbol since from.
func (c *Client) series(ctx context.Context, symbol string, from stockfolio.Date) (currency string, entries []stockfolio.Point, err error) {
	period1 := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC).Unix()
	query := url.Values{
		"interval": {"1d"},
		"period1":  {fmt.Sprint(period1)},
		"period2":  {fmt.Sprint(time.Now().Unix())},
	}

	raw, err := c.chart(ctx, symbol, query)
	if err != nil {
		return "", nil, err
	}
	result := raw.Chart.Result[0]

	closes := closeSeries(result.Indicators.AdjClose, result.Indicators.Quote)
	if len(closes) != len(result.Timestamp) {
		return "", nil, fmt.Errorf("yahoo chart %q: %d closes for %d timestamps", symbol, len(closes), len(result.Timestamp))
	}

	entries = make([]stockfolio.Point, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if closes[i] == nil {
			continue
		}
		on := stockfolio.NewDate(time.Unix(ts, 0).UTC().Date())
		entries = append(entries, stockfolio.Point{
			Date:  on,
			Value: decimal.NewFromFloat(*closes[i]),
		})
	}
	return result.Meta.Currency, entries, nil
}

// closeSeries prefers the adjusted close, falling back to the raw close.
func closeSeries(adj []adjCloseIndicator, quote []closeIndicator) []*float64 {
	if len(adj) > 0 && len(adj[0].AdjClose) > 0 {
		return adj[0].AdjClose
	}
	if len(quote) > 0 {
		return quote[0].Close
	}
	return nil
}

// FetchHistory implements stockfolio.MarketData.
func (c *Client) FetchHistory(ctx context.Context, symbol string, from stockfolio.Date) (*stockfolio.Historical, error) {
	currency, entries, err := c.series(ctx, symbol, from)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Str("symbol", symbol).Int("points", len(entries)).Msg("fetched historical series")
	return &stockfolio.Historical{
		Symbol:   symbol,
		Currency: currency,
		Entries:  entries,
	}, nil
}

// FetchRate implements stockfolio.MarketData.
func (c *Client) FetchRate(ctx context.Context, fromCurrency, toCurrency string, from stockfolio.Date) (*stockfolio.ExchangeRate, error) {
	pair := stockfolio.FXSymbol(fromCurrency, toCurrency)
	_, entries, err := c.series(ctx, pair, from)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Str("pair", pair).Int("points", len(entries)).Msg("fetched exchange rate series")
	return &stockfolio.ExchangeRate{
		From:    fromCurrency,
		To:      toCurrency,
		Entries: entries,
	}, nil
}

// FetchQuotes implements stockfolio.MarketData. One chart request per
// symbol, fetched concurrently; a symbol that fails is omitted from the map
// rather than failing the batch, matching the lookup-side skip handling.
func (c *Client) FetchQuotes(ctx context.Context, symbols []string) (map[string]stockfolio.Quote, error) {
	out := make(map[string]stockfolio.Quote, len(symbols))
	var mu sync.Mutex

	query := url.Values{"interval": {"1d"}, "range": {"1d"}}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, symbol := range symbols {
		g.Go(func() error {
			raw, err := c.chart(ctx, symbol, query)
			if err != nil {
				c.log.Warn().Err(err).Str("symbol", symbol).Msg("quote fetch failed")
				return nil
			}
			meta := raw.Chart.Result[0].Meta

			previous := meta.PreviousClose
			if previous == 0 {
				previous = meta.ChartPreviousClose
			}

			mu.Lock()
			out[symbol] = stockfolio.Quote{
				Symbol:        symbol,
				Price:         decimal.NewFromFloat(meta.RegularMarketPrice),
				PreviousClose: decimal.NewFromFloat(previous),
				Currency:      meta.Currency,
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
