// Package cmd implements the CLI application to explore personal finances.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/centime-app/centime"
	"github.com/centime-app/centime/date"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Commands lists every subcommand. A main package registers them all on a
// commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&networthCmd{},
	&expensesCmd{},
	&flowsCmd{},
	&allocationCmd{},
	&holdingsCmd{},
	&chartCmd{},
}

// As a CLI application it has a very short lived lifecycle, so it is ok to
// use global variables for the shared flags.
var (
	backendURL = flag.String("backend", envOr("CENTIME_BACKEND_URL", "http://localhost:8642"), "Base URL of the data backend")
	currency   = flag.String("currency", envOr("CENTIME_CURRENCY", "USD"), "Display currency for every report")
	verbose    = flag.Bool("v", false, "Enable verbose logging")
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// refreshedViews connects to the backend, refreshes the engine over the
// selected range and returns the resulting snapshot.
func refreshedViews(ctx context.Context, selector string) (*centime.Views, error) {
	log := newLogger()
	backend := centime.NewHTTPBackend(*backendURL, nil, log)
	engine := centime.NewEngine(backend, centime.Config{DisplayCurrency: *currency}, nil, log)

	rng, err := resolveRange(selector)
	if err != nil {
		return nil, err
	}
	if err := engine.Refresh(ctx, rng); err != nil {
		return nil, err
	}
	return engine.Views(), nil
}

// resolveRange parses the -r selector. "all" and the empty selector leave the
// range to the engine, which anchors it on the first transaction.
func resolveRange(selector string) (date.Range, error) {
	if selector == "" || strings.EqualFold(selector, "all") {
		return date.Range{}, nil
	}
	today := date.Today()
	return date.ParseSelector(selector, today, today)
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when styling fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
