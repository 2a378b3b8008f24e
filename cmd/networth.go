package cmd

import (
	"context"
	"flag"

	"github.com/centime-app/centime/renderer"
	"github.com/google/subcommands"
)

type networthCmd struct {
	rng string
}

func (*networthCmd) Name() string     { return "networth" }
func (*networthCmd) Synopsis() string { return "display the net worth time series" }
func (*networthCmd) Usage() string {
	return `networth [-r <range>]

  Displays the daily value of all accounts combined, reconstructed from the
  transaction log and market prices. The last point is the live total
  reported by the backend.
`
}

func (c *networthCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.rng, "r", "all", "Range selector (1m, 3m, 6m, ytd, 1y, all, or FROM:TO).")
}

func (c *networthCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	views, err := refreshedViews(ctx, c.rng)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.NetWorth(views.NetWorth, *currency))
	return subcommands.ExitSuccess
}
