package cmd

import (
	"context"
	"flag"

	"github.com/centime-app/centime/renderer"
	"github.com/google/subcommands"
)

type expensesCmd struct {
	rng     string
	buckets bool
}

func (*expensesCmd) Name() string     { return "expenses" }
func (*expensesCmd) Synopsis() string { return "display spending by category" }
func (*expensesCmd) Usage() string {
	return `expenses [-r <range>] [-buckets]

  Sums spending per category over the range, excluding transfers and
  investment trades. With -buckets, shows income and expenses per day or
  per month instead.
`
}

func (c *expensesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.rng, "r", "1m", "Range selector (1m, 3m, 6m, ytd, 1y, all, or FROM:TO).")
	f.BoolVar(&c.buckets, "buckets", false, "Show income/expense buckets instead of category totals.")
}

func (c *expensesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	views, err := refreshedViews(ctx, c.rng)
	if err != nil {
		return fail(err)
	}
	if c.buckets {
		printMarkdown(renderer.IncomeExpense(views.IncomeExpense, *currency))
	} else {
		printMarkdown(renderer.Expenses(views.Expenses, *currency))
	}
	return subcommands.ExitSuccess
}
