// Package cmd implements the CLI application to manage a portfolio.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/harksen/stockfolio"
	"github.com/harksen/stockfolio/yahoo"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addSecurityCmd{}, "securities")
	c.Register(&securitiesCmd{}, "securities")

	c.Register(&buyCmd{}, "trades")
	c.Register(&sellCmd{}, "trades")

	c.Register(&portfolioCmd{}, "reports")
	c.Register(&accountsCmd{}, "reports")

	c.Register(&accountAddCmd{}, "accounts")
	c.Register(&accountRenameCmd{}, "accounts")
	c.Register(&accountDelCmd{}, "accounts")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var storeDir = flag.String("store", ".stockfolio", "Path to the data folder")
var verbose = flag.Bool("v", false, "Enable debug logging")

func appLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// OpenSystem is the central function to open the data store and build the
// accounting system over it.
func OpenSystem() (*stockfolio.System, error) {
	log := appLogger()
	if err := os.MkdirAll(*storeDir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create store folder %q: %w", *storeDir, err)
	}
	store, err := stockfolio.NewStore(*storeDir, log)
	if err != nil {
		return nil, fmt.Errorf("cannot open store %q: %w", *storeDir, err)
	}
	return stockfolio.NewSystem(store, yahoo.New(log), log), nil
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the renderer cannot be built.
func printMarkdown(markdown string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(markdown)
		return
	}
	out, err := r.Render(markdown)
	if err != nil {
		fmt.Print(markdown)
		return
	}
	fmt.Print(out)
}
