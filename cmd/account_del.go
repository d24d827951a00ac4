package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type accountDelCmd struct {
	id string
}

func (*accountDelCmd) Name() string     { return "account-del" }
func (*accountDelCmd) Synopsis() string { return "delete an account and all of its trades" }
func (*accountDelCmd) Usage() string {
	return `stk account-del -id <id>

  Deletes the account with the given id, removing its lots, buy history and
  sell history from every security. This cannot be undone.
`
}

func (c *accountDelCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Account id (required)")
}

func (c *accountDelCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}

	sys, err := OpenSystem()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if err := sys.DeleteAccount(c.id); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting account %s: %v\n", c.id, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Deleted account %s.\n", c.id)
	return subcommands.ExitSuccess
}
