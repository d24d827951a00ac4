package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/harksen/stockfolio"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func p(v float64) *stockfolio.Percent {
	pv := stockfolio.Percent(v)
	return &pv
}

func TestPortfolioMarkdown(t *testing.T) {
	report := &stockfolio.PortfolioReport{
		Chart: []stockfolio.ChartPoint{
			{Date: stockfolio.NewDate(2025, time.June, 14), Value: d("1050")},
			{Date: stockfolio.NewDate(2025, time.June, 15), Value: d("1200")},
		},
		Holdings: []stockfolio.HoldingRow{
			{
				Symbol:          "BHP",
				Name:            "BHP Group",
				Currency:        "AUD",
				Units:           d("100"),
				BuyPrice:        d("10.11"),
				LastPrice:       d("12"),
				MarketValue:     d("1200"),
				PurchaseCost:    d("1011"),
				ProfitOrLoss:    d("189"),
				ProfitOrLossPct: p(18.69),
				Weight:          p(100),
			},
		},
		Trades: []stockfolio.TradeRow{
			{
				Date:        stockfolio.NewDate(2025, time.June, 10),
				Side:        stockfolio.BuySide,
				Symbol:      "BHP",
				AccountName: "Personal",
				Currency:    "AUD",
				Quantity:    d("100"),
				Price:       d("10"),
				Total:       d("1011"),
			},
		},
		MarketValue:  stockfolio.M(d("1200"), "AUD"),
		TodayChange:  stockfolio.M(d("100"), "AUD"),
		ProfitOrLoss: stockfolio.M(d("189"), "AUD"),
		Currency:     "AUD",
	}

	out := PortfolioMarkdown(report)

	require.Contains(t, out, "# Portfolio")
	require.Contains(t, out, "## Holdings")
	require.Contains(t, out, "## Value History")
	require.Contains(t, out, "## Trades")
	require.Contains(t, out, "BHP")
	require.Contains(t, out, "100.00%")
	require.Contains(t, out, "2025-06-10")
	require.NotContains(t, out, "## Sell History")
}

func TestAccountsMarkdown(t *testing.T) {
	out := AccountsMarkdown([]stockfolio.AccountReport{
		{
			Name:                   "Personal",
			AccountID:              "1234567",
			MarketValue:            stockfolio.M(d("1200"), "AUD"),
			TotalCost:              stockfolio.M(d("1011"), "AUD"),
			TodayChange:            stockfolio.M(d("100"), "AUD"),
			TodayChangePct:         p(9.09),
			UnrealizedProfitOrLoss: stockfolio.M(d("189"), "AUD"),
			RealizedProfitOrLoss:   stockfolio.M(d("0"), "AUD"),
			Currency:               "AUD",
		},
	})

	require.Contains(t, out, "# Accounts")
	require.Contains(t, out, "Personal")
	require.Contains(t, out, "1234567")
	require.Contains(t, out, "9.09%")
	// Undefined percentages render as n/a.
	require.Contains(t, out, "n/a")
}

func TestAccountsMarkdown_Empty(t *testing.T) {
	out := AccountsMarkdown(nil)
	require.Contains(t, out, "No accounts.")
}

func TestSecuritiesMarkdown(t *testing.T) {
	out := SecuritiesMarkdown([]*stockfolio.Security{
		stockfolio.NewSecurity("BHP", "BHP Group", "AUD", "ASX", "Stock"),
	})
	require.Contains(t, out, "# Securities")
	require.True(t, strings.Contains(out, "BHP Group"))
}
