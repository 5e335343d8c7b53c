// Package cmd implements the CLI application to manage a portfolio ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/phuslu/log"
	"github.com/pkruk/stockfolio"
)

// Register registers the subcommands on the commander.
// A main package calls Register(), then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&createCmd{}, "portfolio")

	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")

	c.Register(&orderCmd{}, "orders")
	c.Register(&nextCmd{}, "orders")

	c.Register(&reportCmd{}, "reports")
	c.Register(&auditCmd{}, "reports")
	c.Register(&updateCmd{}, "reports")
}

// As a CLI application it is short lived, so global flag variables are fine.

var portfolioFile = flag.String("portfolio-file", "portfolio.txt", "Path to the portfolio file (line format)")
var ordersFile = flag.String("orders-file", "orders.jsonl", "Path to the pending orders file (JSONL format)")
var verbose = flag.Bool("v", false, "Enable verbose diagnostics on stderr")

// SetupLogger configures the diagnostics logger. Call it after flag.Parse.
func SetupLogger() {
	log.DefaultLogger = log.Logger{
		Level:  log.WarnLevel,
		Writer: &log.ConsoleWriter{Writer: os.Stderr},
	}
	if *verbose {
		log.DefaultLogger.Level = log.DebugLevel
	}
}

// loadPortfolio loads the portfolio and its pending orders from the app files.
func loadPortfolio() (*stockfolio.Portfolio, error) {
	p, err := stockfolio.LoadFile(*portfolioFile)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("file", *portfolioFile).Int("holdings", p.HoldingsCount()).Msg("portfolio loaded")

	f, err := os.Open(*ordersFile)
	if errors.Is(err, fs.ErrNotExist) {
		// No sidecar yet means an empty queue.
		log.Debug().Str("file", *ordersFile).Msg("no pending orders file")
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open orders file %q: %w", *ordersFile, err)
	}
	defer f.Close()

	orders, err := stockfolio.DecodeOrders(f)
	if err != nil {
		return nil, fmt.Errorf("cannot load orders from %q: %w", *ordersFile, err)
	}
	for _, o := range orders {
		if err := p.AddOrder(o); err != nil {
			return nil, err
		}
	}
	log.Debug().Str("file", *ordersFile).Int("orders", len(orders)).Msg("pending orders loaded")
	return p, nil
}

// savePortfolio writes the portfolio and its pending orders back to the app files.
func savePortfolio(p *stockfolio.Portfolio) error {
	if err := stockfolio.SaveFile(*portfolioFile, p); err != nil {
		return err
	}
	f, err := os.Create(*ordersFile)
	if err != nil {
		return fmt.Errorf("cannot open orders file %q for writing: %w", *ordersFile, err)
	}
	defer f.Close()
	if err := stockfolio.EncodeOrders(f, p.PendingOrders()); err != nil {
		return fmt.Errorf("cannot save orders to %q: %w", *ordersFile, err)
	}
	return nil
}

// printMarkdown renders markdown to the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// Fall back to the raw markdown.
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
