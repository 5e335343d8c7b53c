package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// sellCmd holds the flags for the 'sell' subcommand.
type sellCmd struct {
	symbol   string
	quantity int64
	price    float64
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell a held asset, realizing FIFO profit" }
func (*sellCmd) Usage() string {
	return `sfol sell -symbol <sym> -q <quantity> -price <sale_price>

  Sells a quantity of a held asset at the given sale price, consuming the
  oldest purchase lots first. Prints the revenue credited to cash and the
  realized profit against the FIFO cost basis.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Asset symbol.")
	f.Int64Var(&c.quantity, "q", 0, "Quantity to sell.")
	f.Float64Var(&c.price, "price", 0, "Sale price per unit.")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := loadPortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	result, err := p.SellAsset(c.symbol, c.quantity, c.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := savePortfolio(p); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Sold %d %s: revenue %s, realized profit %s, cash balance %s\n",
		c.quantity, c.symbol, result.Revenue, result.Profit.SignedString(), p.Cash())
	return subcommands.ExitSuccess
}
