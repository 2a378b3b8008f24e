package cmd

import (
	"context"
	"flag"

	"github.com/centime-app/centime/renderer"
	"github.com/google/subcommands"
)

type holdingsCmd struct {
	rng string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display open positions with value and return" }
func (*holdingsCmd) Usage() string {
	return `holdings [-r <range>]

  Lists every open security position across accounts, with its market value
  and return on cost. Positions of the same ticker held in several accounts
  are merged.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.rng, "r", "all", "Range selector (1m, 3m, 6m, ytd, 1y, all, or FROM:TO).")
}

func (c *holdingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	views, err := refreshedViews(ctx, c.rng)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Holdings(views.Treemap, *currency))
	return subcommands.ExitSuccess
}
