package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/phuslu/log"
	"github.com/pkruk/stockfolio"
)

// updateCmd holds the flags for the 'update' subcommand.
type updateCmd struct {
	quotes string
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "update market prices from a quote file" }
func (*updateCmd) Usage() string {
	return `sfol update -quotes <file>

  Reads a JSON quote document ({"quotes": [{"symbol": ..., "price": ...}]})
  and updates the market price of every held symbol found in it. Quotes for
  symbols that are not held are skipped.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.quotes, "quotes", "", "Path to the JSON quote document.")
}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.quotes == "" {
		fmt.Fprintln(os.Stderr, "Error: -quotes flag is required")
		return subcommands.ExitUsageError
	}

	qf, err := os.Open(c.quotes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening quote file %q: %v\n", c.quotes, err)
		return subcommands.ExitFailure
	}
	defer qf.Close()

	quotes, err := stockfolio.DecodeQuotes(qf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading quotes: %v\n", err)
		return subcommands.ExitFailure
	}
	log.Debug().Str("file", c.quotes).Int("quotes", len(quotes)).Msg("quotes decoded")

	p, err := loadPortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	applied, err := p.ApplyQuotes(quotes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error applying quotes: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := savePortfolio(p); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Applied %d of %d quotes, total value %s\n", applied, len(quotes), p.Audit())
	return subcommands.ExitSuccess
}
