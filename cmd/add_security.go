package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type addSecurityCmd struct {
	symbol   string
	name     string
	exchange string
	typ      string
}

func (*addSecurityCmd) Name() string     { return "add-security" }
func (*addSecurityCmd) Synopsis() string { return "add a new security to the portfolio" }
func (*addSecurityCmd) Usage() string {
	return `stk add-security -symbol <symbol> [-name <name>] [-exchange <exchange>] [-type <type>]

  Adds a new security. The symbol is verified against a live quote, and the
  security's currency is taken from the quote:
  - symbol: The ticker symbol (e.g., "NVDA", "CBA.AX"). Must be unique.
  - name: A display name; defaults to the symbol.
  - exchange: Exchange label used by report filters (e.g., "ASX").
  - type: Asset type label used by report filters (e.g., "ETF").
`
}

func (c *addSecurityCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Ticker symbol (required)")
	f.StringVar(&c.name, "name", "", "Display name")
	f.StringVar(&c.exchange, "exchange", "", "Exchange label")
	f.StringVar(&c.typ, "type", "", "Asset type label")
}

func (c *addSecurityCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" {
		fmt.Fprintln(os.Stderr, "Error: -symbol is required.")
		return subcommands.ExitUsageError
	}

	sys, err := OpenSystem()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	name := c.name
	if name == "" {
		name = c.symbol
	}

	if err := sys.AddSecurity(ctx, c.symbol, name, c.exchange, c.typ); err != nil {
		fmt.Fprintf(os.Stderr, "Error adding security %q: %v\n", c.symbol, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Added security %s.\n", c.symbol)
	return subcommands.ExitSuccess
}
