package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/harksen/stockfolio"
)

type sellCmd struct {
	tradeFlags
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sell trade" }
func (*sellCmd) Usage() string {
	return `stk sell -symbol <symbol> -account <id> -quantity <n> -price <p> [-brokerage <b>] [-date <YYYY-MM-DD>]

  Records a sell trade. The sold quantity is matched against the account's
  open lots oldest-first; the trade fails if the account does not own enough
  units as of the sell date.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) { c.set(f) }

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return executeTrade(&c.tradeFlags, stockfolio.SellSide)
}
