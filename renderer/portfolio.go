// Package renderer turns reports into markdown documents.
package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"

	"github.com/harksen/stockfolio"
)

// PortfolioMarkdown renders the full portfolio report.
func PortfolioMarkdown(r *stockfolio.PortfolioReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio")

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{md.Bold("Market Value"), md.Bold(r.MarketValue.String()), ""},
		Rows: [][]string{
			{"Today's Change", r.TodayChange.SignedString(), signedPct(r.TodayChangePct)},
			{"Profit / Loss", r.ProfitOrLoss.SignedString(), signedPct(r.ProfitOrLossPct)},
		},
	})

	if len(r.Holdings) > 0 {
		doc.H2("Holdings")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Symbol", "Units", "Avg. Price", "Last Price", "Market Value", "Profit / Loss", "Weight"},
		}
		for _, h := range r.Holdings {
			table.Rows = append(table.Rows, []string{
				h.Symbol,
				h.Units.String(),
				amount(h.BuyPrice, h.Currency),
				amount(h.LastPrice, h.Currency),
				amount(h.MarketValue, h.Currency),
				signedAmount(h.ProfitOrLoss, h.Currency) + " " + signedPct(h.ProfitOrLossPct),
				pct(h.Weight),
			})
		}
		doc.Table(table)
	}

	if len(r.Chart) > 0 {
		doc.H2("Value History")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Date", "Value"},
		}
		for _, p := range sampleChart(r.Chart) {
			table.Rows = append(table.Rows, []string{p.Date.String(), amount(p.Value, r.Currency)})
		}
		doc.Table(table)
	}

	if len(r.Trades) > 0 {
		doc.H2("Trades")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Date", "Side", "Symbol", "Account", "Units", "Price", "Total"},
		}
		for _, t := range r.Trades {
			table.Rows = append(table.Rows, []string{
				t.Date.String(),
				string(t.Side),
				t.Symbol,
				t.AccountName,
				t.Quantity.String(),
				amount(t.Price, t.Currency),
				amount(t.Total, t.Currency),
			})
		}
		doc.Table(table)
	}

	if len(r.SellHistory) > 0 {
		doc.H2("Sell History")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignLeft,
			},
			Header: []string{"Sold", "Bought", "Symbol", "Units", "Profit / Loss", "Capital Gain", "Total", "CGT Discount"},
		}
		for _, s := range r.SellHistory {
			discount := ""
			if s.CGTDiscount {
				discount = "yes"
			}
			table.Rows = append(table.Rows, []string{
				s.SellDate.String(),
				s.BuyDate.String(),
				s.Symbol,
				s.Quantity.String(),
				signedAmount(s.ProfitOrLoss, s.Currency),
				signedAmount(s.CapitalGainOrLoss, s.Currency),
				amount(s.Total, s.Currency),
				discount,
			})
		}
		doc.Table(table)
	}

	return doc.String()
}

// sampleChart keeps the chart table terminal-sized: every point for windows
// up to about three months, month boundaries plus the endpoints otherwise.
func sampleChart(chart []stockfolio.ChartPoint) []stockfolio.ChartPoint {
	const full = 95
	if len(chart) <= full {
		return chart
	}
	var out []stockfolio.ChartPoint
	for i, p := range chart {
		if i == 0 || i == len(chart)-1 || p.Date.Day() == 1 {
			out = append(out, p)
		}
	}
	return out
}
