package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type accountRenameCmd struct {
	id   string
	name string
}

func (*accountRenameCmd) Name() string     { return "account-rename" }
func (*accountRenameCmd) Synopsis() string { return "rename an account" }
func (*accountRenameCmd) Usage() string {
	return `stk account-rename -id <id> -name <name>

  Renames the account with the given id.
`
}

func (c *accountRenameCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Account id (required)")
	f.StringVar(&c.name, "name", "", "New account name (required)")
}

func (c *accountRenameCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" || c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -id and -name are required.")
		return subcommands.ExitUsageError
	}

	sys, err := OpenSystem()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if err := sys.RenameAccount(c.id, c.name); err != nil {
		fmt.Fprintf(os.Stderr, "Error renaming account %s: %v\n", c.id, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Renamed account %s to %q.\n", c.id, c.name)
	return subcommands.ExitSuccess
}
