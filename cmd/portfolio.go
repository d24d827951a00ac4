package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/harksen/stockfolio"
	"github.com/harksen/stockfolio/renderer"
)

type portfolioCmd struct {
	account   string
	exchanges string
	types     string
	months    int
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "display the portfolio report" }
func (*portfolioCmd) Usage() string {
	return `stk portfolio [-account <id>] [-exchanges <a,b>] [-types <a,b>] [-months <1|3|6|12|60>]

  Displays the portfolio report: combined market value, today's change,
  profit/loss, current holdings, the reconstructed daily value series, and
  the trade history. All combined figures are in the reporting currency.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Restrict to one account id")
	f.StringVar(&c.exchanges, "exchanges", "", "Comma-separated exchange filter")
	f.StringVar(&c.types, "types", "", "Comma-separated asset type filter")
	f.IntVar(&c.months, "months", 0, "Chart window in months (1, 3, 6, 12 or 60)")
}

func (c *portfolioCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sys, err := OpenSystem()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	filter := stockfolio.Filter{
		AccountID:   c.account,
		Exchanges:   splitList(c.exchanges),
		Types:       splitList(c.types),
		RangeMonths: c.months,
	}

	report := sys.PortfolioReport(ctx, filter)
	printMarkdown(renderer.PortfolioMarkdown(report))
	return subcommands.ExitSuccess
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
