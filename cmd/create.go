package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/pkruk/stockfolio"
)

// createCmd holds the flags for the 'create' subcommand.
type createCmd struct {
	cash float64
}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "create a new empty portfolio file" }
func (*createCmd) Usage() string {
	return `sfol create -cash <amount>

  Creates a new portfolio with the given initial cash balance and writes it
  to the portfolio file. Fails if the file already exists.
`
}

func (c *createCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.cash, "cash", 0, "Initial cash balance.")
}

func (c *createCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := os.Stat(*portfolioFile); err == nil {
		fmt.Fprintf(os.Stderr, "Error: portfolio file %q already exists\n", *portfolioFile)
		return subcommands.ExitFailure
	}

	p, err := stockfolio.NewPortfolio(c.cash, stockfolio.DefaultCurrency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating portfolio: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := stockfolio.SaveFile(*portfolioFile, p); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Created portfolio %s with cash %s\n", *portfolioFile, p.Cash())
	return subcommands.ExitSuccess
}
