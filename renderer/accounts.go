package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"

	"github.com/harksen/stockfolio"
)

// AccountsMarkdown renders the per-account roll-up.
func AccountsMarkdown(reports []stockfolio.AccountReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Accounts")

	if len(reports) == 0 {
		doc.PlainText("No accounts.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Account", "Id", "Market Value", "Cost", "Today's Change", "Unrealized P/L", "Realized P/L"},
	}
	for _, r := range reports {
		table.Rows = append(table.Rows, []string{
			r.Name,
			r.AccountID,
			r.MarketValue.String(),
			r.TotalCost.String(),
			r.TodayChange.SignedString() + " " + pct(r.TodayChangePct),
			r.UnrealizedProfitOrLoss.SignedString() + " " + pct(r.UnrealizedProfitOrLossPct),
			r.RealizedProfitOrLoss.SignedString() + " " + pct(r.RealizedProfitOrLossPct),
		})
	}
	doc.Table(table)

	return doc.String()
}

// SecuritiesMarkdown renders the list of known securities.
func SecuritiesMarkdown(securities []*stockfolio.Security) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Securities")

	if len(securities) == 0 {
		doc.PlainText("No securities.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
		},
		Header: []string{"Symbol", "Name", "Currency", "Exchange", "Type"},
	}
	for _, sec := range securities {
		table.Rows = append(table.Rows, []string{sec.Symbol, sec.Name, sec.Currency, sec.Exchange, sec.Type})
	}
	doc.Table(table)

	return doc.String()
}
