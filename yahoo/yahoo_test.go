package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/harksen/stockfolio"
)

// chartPayload fakes the v8 chart endpoint for one symbol.
func chartPayload(currency string, body string) string {
	return fmt.Sprintf(`{"chart":{"result":[{"meta":{"currency":%q,"regularMarketPrice":42.5,"previousClose":41.0},%s}],"error":null}}`, currency, body)
}

func testServer(t *testing.T, responses map[string]string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := responses[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return NewWithBaseURL(zerolog.Nop(), srv.URL)
}

func ts(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 10, 0, 0, 0, time.UTC).Unix()
}

func decimalFrom(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	return decimal.RequireFromString(s)
}

func TestFetchHistory(t *testing.T) {
	body := fmt.Sprintf(
		`"timestamp":[%d,%d,%d],"indicators":{"quote":[{"close":[10.0,null,12.0]}],"adjclose":[{"adjclose":[9.5,null,11.5]}]}`,
		ts(2025, time.January, 2), ts(2025, time.January, 3), ts(2025, time.January, 6))

	c := testServer(t, map[string]string{
		"/v8/finance/chart/CBA.AX": chartPayload("AUD", body),
	})

	h, err := c.FetchHistory(context.Background(), "CBA.AX", stockfolio.NewDate(2025, time.January, 1))
	require.NoError(t, err)

	require.Equal(t, "CBA.AX", h.Symbol)
	require.Equal(t, "AUD", h.Currency)

	// The null gap day is dropped, adjusted closes preferred.
	require.Len(t, h.Entries, 2)
	require.Equal(t, stockfolio.NewDate(2025, time.January, 2), h.Entries[0].Date)
	require.True(t, h.Entries[0].Value.Equal(decimalFrom(t, "9.5")))
	require.Equal(t, stockfolio.NewDate(2025, time.January, 6), h.Entries[1].Date)
	require.True(t, h.Entries[1].Value.Equal(decimalFrom(t, "11.5")))
}

func TestFetchHistory_FallsBackToRawClose(t *testing.T) {
	body := fmt.Sprintf(
		`"timestamp":[%d],"indicators":{"quote":[{"close":[10.0]}],"adjclose":[]}`,
		ts(2025, time.January, 2))

	c := testServer(t, map[string]string{
		"/v8/finance/chart/CBA.AX": chartPayload("AUD", body),
	})

	h, err := c.FetchHistory(context.Background(), "CBA.AX", stockfolio.NewDate(2025, time.January, 1))
	require.NoError(t, err)
	require.Len(t, h.Entries, 1)
	require.True(t, h.Entries[0].Value.Equal(decimalFrom(t, "10")))
}

func TestFetchHistory_APIError(t *testing.T) {
	c := testServer(t, map[string]string{
		"/v8/finance/chart/NOPE": `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`,
	})

	_, err := c.FetchHistory(context.Background(), "NOPE", stockfolio.NewDate(2025, time.January, 1))
	require.ErrorContains(t, err, "Not Found")
}

func TestFetchRate(t *testing.T) {
	body := fmt.Sprintf(
		`"timestamp":[%d],"indicators":{"quote":[{"close":[0.65]}]}`,
		ts(2025, time.January, 2))

	c := testServer(t, map[string]string{
		"/v8/finance/chart/AUDUSD=X": chartPayload("USD", body),
	})

	r, err := c.FetchRate(context.Background(), "AUD", "USD", stockfolio.NewDate(2025, time.January, 1))
	require.NoError(t, err)
	require.Equal(t, "AUD", r.From)
	require.Equal(t, "USD", r.To)
	require.Len(t, r.Entries, 1)
	require.True(t, r.Entries[0].Value.Equal(decimalFrom(t, "0.65")))
}

func TestFetchQuotes(t *testing.T) {
	body := fmt.Sprintf(`"timestamp":[%d],"indicators":{"quote":[{"close":[42.0]}]}`, ts(2025, time.June, 13))

	c := testServer(t, map[string]string{
		"/v8/finance/chart/CBA.AX": chartPayload("AUD", body),
		"/v8/finance/chart/NVDA":   chartPayload("USD", body),
	})

	quotes, err := c.FetchQuotes(context.Background(), []string{"CBA.AX", "NVDA", "MISSING"})
	require.NoError(t, err)

	// Failed symbols are omitted, not fatal.
	require.Len(t, quotes, 2)

	q := quotes["CBA.AX"]
	require.Equal(t, "AUD", q.Currency)
	require.True(t, q.Price.Equal(decimalFrom(t, "42.5")))
	require.True(t, q.PreviousClose.Equal(decimalFrom(t, "41")))
	require.Equal(t, "USD", quotes["NVDA"].Currency)
}
