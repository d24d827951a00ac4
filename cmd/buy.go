package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/harksen/stockfolio"
)

// tradeFlags are the flags shared by the buy and sell commands.
type tradeFlags struct {
	symbol    string
	account   string
	date      string
	quantity  string
	price     string
	brokerage string
}

func (c *tradeFlags) set(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Ticker symbol (required)")
	f.StringVar(&c.account, "account", "", "Owning account id (required)")
	f.StringVar(&c.date, "date", "", "Trade date, YYYY-MM-DD (defaults to today)")
	f.StringVar(&c.quantity, "quantity", "", "Number of units (required)")
	f.StringVar(&c.price, "price", "", "Unit price in the security's currency (required)")
	f.StringVar(&c.brokerage, "brokerage", "", "Brokerage fee (defaults to the settings autofill value)")
}

// trade validates the flags into a Trade. The settings supply the brokerage
// default.
func (c *tradeFlags) trade(side stockfolio.TradeSide, settings stockfolio.Settings) (stockfolio.Trade, error) {
	t := stockfolio.Trade{AccountID: c.account, Symbol: c.symbol, Side: side}

	if c.symbol == "" || c.account == "" || c.quantity == "" || c.price == "" {
		return t, fmt.Errorf("-symbol, -account, -quantity and -price are required")
	}

	var err error
	if c.date != "" {
		if t.Date, err = stockfolio.ParseDate(c.date); err != nil {
			return t, fmt.Errorf("invalid -date: %w", err)
		}
	}
	if t.Quantity, err = decimal.NewFromString(c.quantity); err != nil {
		return t, fmt.Errorf("invalid -quantity %q: %w", c.quantity, err)
	}
	if t.Price, err = decimal.NewFromString(c.price); err != nil {
		return t, fmt.Errorf("invalid -price %q: %w", c.price, err)
	}
	if c.brokerage == "" {
		t.Brokerage = settings.BrokerageAutofill
	} else if t.Brokerage, err = decimal.NewFromString(c.brokerage); err != nil {
		return t, fmt.Errorf("invalid -brokerage %q: %w", c.brokerage, err)
	}
	return t, nil
}

type buyCmd struct {
	tradeFlags
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a buy trade" }
func (*buyCmd) Usage() string {
	return `stk buy -symbol <symbol> -account <id> -quantity <n> -price <p> [-brokerage <b>] [-date <YYYY-MM-DD>]

  Records a buy trade, opening a new lot for the account. GST on brokerage is
  applied from the settings.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) { c.set(f) }

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return executeTrade(&c.tradeFlags, stockfolio.BuySide)
}

func executeTrade(flags *tradeFlags, side stockfolio.TradeSide) subcommands.ExitStatus {
	sys, err := OpenSystem()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	t, err := flags.trade(side, sys.Store().Settings())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	tradeID, err := sys.RecordTrade(t)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording trade: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Recorded %s %s x %s %s (trade %s).\n", t.Side, t.Quantity, t.Symbol, t.Price, tradeID)
	return subcommands.ExitSuccess
}
