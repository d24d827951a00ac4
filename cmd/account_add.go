package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type accountAddCmd struct {
	name string
}

func (*accountAddCmd) Name() string     { return "account-add" }
func (*accountAddCmd) Synopsis() string { return "create a new account" }
func (*accountAddCmd) Usage() string {
	return `stk account-add -name <name>

  Creates a new account with a generated 7-digit id.
`
}

func (c *accountAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Account name (required)")
}

func (c *accountAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name is required.")
		return subcommands.ExitUsageError
	}

	sys, err := OpenSystem()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	account, err := sys.CreateAccount(c.name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating account: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Created account %q with id %s.\n", account.Name, account.AccountID)
	return subcommands.ExitSuccess
}
