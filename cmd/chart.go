package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	chart "github.com/wcharczuk/go-chart/v2"
)

type chartCmd struct {
	rng string
	out string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "render the net worth series as a PNG chart" }
func (*chartCmd) Usage() string {
	return `chart [-r <range>] [-o <file>]

  Renders the net worth time series to a PNG image.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.rng, "r", "all", "Range selector (1m, 3m, 6m, ytd, 1y, all, or FROM:TO).")
	f.StringVar(&c.out, "o", "networth.png", "Output PNG file.")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	views, err := refreshedViews(ctx, c.rng)
	if err != nil {
		return fail(err)
	}
	if len(views.NetWorth) < 2 {
		return fail(fmt.Errorf("not enough points to chart"))
	}

	xs := make([]time.Time, len(views.NetWorth))
	ys := make([]float64, len(views.NetWorth))
	for i, p := range views.NetWorth {
		xs[i] = p.Date.Time()
		ys[i] = p.Value
	}

	graph := chart.Chart{
		Title: fmt.Sprintf("Net Worth (%s)", *currency),
		XAxis: chart.XAxis{ValueFormatter: chart.TimeDateValueFormatter},
		Series: []chart.Series{
			chart.TimeSeries{Name: "Net Worth", XValues: xs, YValues: ys},
		},
	}

	out, err := os.Create(c.out)
	if err != nil {
		return fail(err)
	}
	defer out.Close()
	if err := graph.Render(chart.PNG, out); err != nil {
		return fail(err)
	}
	fmt.Fprintf(os.Stderr, "Chart written to %s\n", c.out)
	return subcommands.ExitSuccess
}
