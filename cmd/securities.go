package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/harksen/stockfolio/renderer"
)

type securitiesCmd struct{}

func (*securitiesCmd) Name() string     { return "securities" }
func (*securitiesCmd) Synopsis() string { return "list the known securities" }
func (*securitiesCmd) Usage() string {
	return `stk securities

  Lists every security in the portfolio with its currency, exchange and type.
`
}

func (*securitiesCmd) SetFlags(*flag.FlagSet) {}

func (*securitiesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sys, err := OpenSystem()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.SecuritiesMarkdown(sys.Securities()))
	return subcommands.ExitSuccess
}
