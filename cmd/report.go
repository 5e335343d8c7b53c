package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/pkruk/stockfolio/renderer"
)

// reportCmd implements the 'report' subcommand.
type reportCmd struct{}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the portfolio report" }
func (*reportCmd) Usage() string {
	return `sfol report

  Displays the cash balance, the audited total value, and every holding with
  its mark-to-market value, sorted by asset type then value.
`
}

func (*reportCmd) SetFlags(*flag.FlagSet) {}

func (*reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := loadPortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.SummaryMarkdown(renderer.NewSummary(p)))
	return subcommands.ExitSuccess
}

// auditCmd implements the 'audit' subcommand.
type auditCmd struct{}

func (*auditCmd) Name() string     { return "audit" }
func (*auditCmd) Synopsis() string { return "print the total portfolio value" }
func (*auditCmd) Usage() string {
	return `sfol audit

  Prints the total portfolio value: cash plus the real value of every
  holding at current market prices.
`
}

func (*auditCmd) SetFlags(*flag.FlagSet) {}

func (*auditCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := loadPortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Println(p.Audit())
	return subcommands.ExitSuccess
}
