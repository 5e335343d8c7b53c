package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/pkruk/stockfolio"
	"github.com/pkruk/stockfolio/date"
)

// buyCmd holds the flags for the 'buy' subcommand.
type buyCmd struct {
	assetType string
	symbol    string
	name      string
	price     float64
	spread    float64
	quantity  int64
	date      string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy an asset, recording a new purchase lot" }
func (*buyCmd) Usage() string {
	return `sfol buy -symbol <sym> -q <quantity> -price <market_price> [-type SHARE|COMMODITY|CURRENCY] [-name <name>] [-spread <spread>] [-d <date>]

  Buys a quantity of an asset at its current market price. The purchase cost
  includes the asset type's handling fee or storage cost, and is debited from
  the cash balance. The spread flag applies to CURRENCY assets only.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.assetType, "type", "SHARE", "Asset type (SHARE, COMMODITY, CURRENCY).")
	f.StringVar(&c.symbol, "symbol", "", "Asset symbol.")
	f.StringVar(&c.name, "name", "", "Asset name. Defaults to the symbol.")
	f.Float64Var(&c.price, "price", 0, "Current market price per unit.")
	f.Float64Var(&c.spread, "spread", 0, "Bid/ask spread, CURRENCY assets only.")
	f.Int64Var(&c.quantity, "q", 0, "Quantity to buy.")
	f.StringVar(&c.date, "d", date.Today().String(), "Purchase date (ISO-8601).")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	typ, err := stockfolio.ParseAssetType(c.assetType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	name := c.name
	if name == "" {
		name = c.symbol
	}

	var asset *stockfolio.Asset
	switch typ {
	case stockfolio.Share:
		asset, err = stockfolio.NewShare(c.symbol, name, c.price)
	case stockfolio.Commodity:
		asset, err = stockfolio.NewCommodity(c.symbol, name, c.price)
	case stockfolio.Currency:
		asset, err = stockfolio.NewCurrency(c.symbol, name, c.price, c.spread)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	p, err := loadPortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := p.AddAsset(asset, c.quantity, on); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := savePortfolio(p); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Bought %d %s on %s, cash balance %s\n", c.quantity, asset.Symbol(), on, p.Cash())
	return subcommands.ExitSuccess
}
