package cmd

import (
	"context"
	"flag"

	"github.com/centime-app/centime/renderer"
	"github.com/google/subcommands"
)

type allocationCmd struct {
	rng string
}

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "display each account's share of net worth" }
func (*allocationCmd) Usage() string {
	return `allocation [-r <range>]

  Shows the current value of every account and its share of the total.
`
}

func (c *allocationCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.rng, "r", "all", "Range selector (1m, 3m, 6m, ytd, 1y, all, or FROM:TO).")
}

func (c *allocationCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	views, err := refreshedViews(ctx, c.rng)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Allocation(views.Allocation, *currency))
	return subcommands.ExitSuccess
}
