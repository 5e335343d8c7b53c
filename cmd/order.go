package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/pkruk/stockfolio"
)

// orderCmd holds the flags for the 'order' subcommand.
type orderCmd struct {
	symbol    string
	orderType string
	quantity  int64
	limit     float64
	market    float64
}

func (*orderCmd) Name() string     { return "order" }
func (*orderCmd) Synopsis() string { return "add a pending trade order to the queue" }
func (*orderCmd) Usage() string {
	return `sfol order -symbol <sym> -type BUY|SELL -q <quantity> -limit <limit_price> -market <market_price>

  Adds a pending order to the priority queue. Orders are ranked by
  attractiveness: buys with higher limit prices first, sells with lower
  limit prices first.
`
}

func (c *orderCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Asset symbol.")
	f.StringVar(&c.orderType, "type", "BUY", "Order type (BUY or SELL).")
	f.Int64Var(&c.quantity, "q", 0, "Order quantity.")
	f.Float64Var(&c.limit, "limit", 0, "Limit price.")
	f.Float64Var(&c.market, "market", 0, "Market price snapshot.")
}

func (c *orderCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	typ, err := stockfolio.ParseOrderType(c.orderType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	order, err := stockfolio.NewOrder(c.symbol, typ, c.quantity, c.limit, c.market)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	p, err := loadPortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := p.AddOrder(order); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := savePortfolio(p); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Queued %s order for %d %s at limit %s (%d pending)\n",
		order.Type(), order.Quantity(), order.Symbol(), order.LimitPrice(), p.PendingOrderCount())
	return subcommands.ExitSuccess
}

// nextCmd holds the flags for the 'next' subcommand.
type nextCmd struct {
	poll bool
}

func (*nextCmd) Name() string     { return "next" }
func (*nextCmd) Synopsis() string { return "show the most attractive pending order" }
func (*nextCmd) Usage() string {
	return `sfol next [-poll]

  Shows the most attractive pending order. With -poll the order is also
  removed from the queue.
`
}

func (c *nextCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.poll, "poll", false, "Remove the order from the queue.")
}

func (c *nextCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := loadPortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var order *stockfolio.Order
	if c.poll {
		order = p.PollNextOrder()
	} else {
		order = p.PeekNextOrder()
	}
	if order == nil {
		fmt.Println("No pending orders.")
		return subcommands.ExitSuccess
	}

	if c.poll {
		if err := savePortfolio(p); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}

	fmt.Printf("%s %d %s at limit %s (market %s)\n",
		order.Type(), order.Quantity(), order.Symbol(), order.LimitPrice(), order.MarketPrice())
	return subcommands.ExitSuccess
}
