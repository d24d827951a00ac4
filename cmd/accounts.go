package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/harksen/stockfolio/renderer"
)

type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "display the per-account summary" }
func (*accountsCmd) Usage() string {
	return `stk accounts

  Displays every account with its market value, cost, today's change and
  realized/unrealized profit or loss, in the reporting currency.
`
}

func (*accountsCmd) SetFlags(*flag.FlagSet) {}

func (*accountsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sys, err := OpenSystem()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.AccountsMarkdown(sys.AccountSummary(ctx)))
	return subcommands.ExitSuccess
}
