package cmd

import (
	"context"
	"flag"

	"github.com/centime-app/centime/renderer"
	"github.com/google/subcommands"
)

type flowsCmd struct {
	rng string
}

func (*flowsCmd) Name() string     { return "flows" }
func (*flowsCmd) Synopsis() string { return "display where money came from and where it went" }
func (*flowsCmd) Usage() string {
	return `flows [-r <range>]

  Aggregates the range's transactions into a cash-flow graph: income sources
  feed a central budget, which splits into expenses, investments and savings.
`
}

func (c *flowsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.rng, "r", "1m", "Range selector (1m, 3m, 6m, ytd, 1y, all, or FROM:TO).")
}

func (c *flowsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	views, err := refreshedViews(ctx, c.rng)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Flows(views.CashFlow, *currency))
	return subcommands.ExitSuccess
}
