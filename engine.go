package centime

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/centime-app/centime/date"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Config tunes how the engine values and presents the portfolio.
type Config struct {
	// DisplayCurrency every view is expressed in. Defaults to USD.
	DisplayCurrency string
	// DateFormat for rendered output, in time layout form.
	DateFormat string
	// CustomRates pins currency-to-USD rates, overriding market data in
	// conversion pivots.
	CustomRates map[string]float64
}

func (c Config) withDefaults() Config {
	if c.DisplayCurrency == "" {
		c.DisplayCurrency = "USD"
	}
	if c.DateFormat == "" {
		c.DateFormat = date.Format
	}
	return c
}

// Views is one immutable, internally consistent snapshot of every derived
// view. The engine swaps whole snapshots; readers never see a half-updated
// mix of ranges or generations.
type Views struct {
	// Generation is the refresh that produced this snapshot.
	Generation uint64
	AsOf       date.Date
	Range      date.Range

	NetWorth      []ValuationPoint
	PerAccount    map[string][]ValuationPoint
	Allocation    []AllocationSlice
	Expenses      []CategoryTotal
	IncomeExpense []Bucket
	CashFlow      *FlowGraph
	Treemap       []TreemapRect
}

// Engine fetches raw data from a backend and derives every analytical view
// from it. It is safe for concurrent use: any number of readers may call
// Views while refreshes run.
type Engine struct {
	backend  Backend
	cfg      Config
	log      zerolog.Logger
	classify InvestmentClassifier

	gen atomic.Uint64

	mu    sync.RWMutex
	views *Views
}

// NewEngine creates an engine over the backend. The classifier may be nil,
// in which case the keyword classifier is used.
func NewEngine(backend Backend, cfg Config, classify InvestmentClassifier, log zerolog.Logger) *Engine {
	return &Engine{
		backend:  backend,
		cfg:      cfg.withDefaults(),
		log:      log,
		classify: classify,
	}
}

// Views returns the latest complete snapshot, nil before the first
// successful refresh.
func (e *Engine) Views() *Views {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.views
}

// Refresh fetches everything from the backend and recomputes every view over
// the given range. A zero range means all time.
//
// Concurrent refreshes race on a generation counter: each refresh takes the
// next generation up front and only installs its result if no newer refresh
// has started since, so a slow stale fetch can never overwrite fresher
// views. On failure the previous snapshot stays in place.
func (e *Engine) Refresh(ctx context.Context, rng date.Range) error {
	gen := e.gen.Add(1)
	log := e.log.With().
		Uint64("generation", gen).
		Str("refresh_id", uuid.NewString()).
		Logger()
	log.Info().Stringer("from", rng.From).Stringer("to", rng.To).Msg("refresh started")

	accRecs, err := e.backend.Accounts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("refresh failed")
		return fmt.Errorf("refresh: %w", err)
	}
	txRecs, err := e.backend.Transactions(ctx)
	if err != nil {
		log.Error().Err(err).Msg("refresh failed")
		return fmt.Errorf("refresh: %w", err)
	}
	currentTotal, err := e.backend.CurrentTotal(ctx)
	if err != nil {
		log.Error().Err(err).Msg("refresh failed")
		return fmt.Errorf("refresh: %w", err)
	}

	accounts := ValidateAccounts(accRecs, e.cfg.DisplayCurrency)
	txs, badRows := ValidateRecords(txRecs, accounts)
	if badRows != nil {
		log.Warn().Err(badRows).Msg("skipped invalid transaction rows")
	}

	today := date.Today()
	if rng.From.IsZero() {
		rng = date.AllTime(FirstDate(txs), today)
	}

	prices := NewPriceStore(nil)
	for _, symbol := range e.priceSymbols(accounts, txs) {
		points, err := e.backend.DailyPrices(ctx, symbol, rng)
		if err != nil {
			// Missing series degrade lookups instead of failing the
			// refresh.
			log.Warn().Err(err).Str("symbol", symbol).Msg("price fetch failed")
			continue
		}
		for _, p := range points {
			prices.Append(p)
		}
	}
	if missing := prices.Missing(Tickers(txs)); len(missing) > 0 {
		log.Warn().Strs("symbols", missing).Msg("no price data, valuing as zero")
	}

	fx := Converter{Prices: prices, Custom: e.cfg.CustomRates}
	series := BuildSeries(SeriesInput{
		Accounts:     accounts,
		Transactions: txs,
		Prices:       prices,
		FX:           fx,
		Display:      e.cfg.DisplayCurrency,
		Range:        rng,
		CurrentTotal: currentTotal,
	})

	views := &Views{
		Generation:    gen,
		AsOf:          today,
		Range:         rng,
		NetWorth:      series.NetWorth,
		PerAccount:    series.PerAccount,
		Allocation:    Allocation(series),
		Expenses:      ExpensesByCategory(txs, fx, e.cfg.DisplayCurrency, rng),
		IncomeExpense: IncomeExpenseBuckets(txs, fx, e.cfg.DisplayCurrency, rng),
		CashFlow:      BuildFlowGraph(txs, fx, e.cfg.DisplayCurrency, rng, e.classify),
		Treemap:       HoldingsTreemap(accounts, txs, prices, fx, e.cfg.DisplayCurrency, rng.To),
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gen.Load() != gen {
		log.Info().Msg("refresh superseded, result discarded")
		return nil
	}
	e.views = views
	log.Info().Int("points", len(views.NetWorth)).Msg("refresh complete")
	return nil
}

// priceSymbols lists every market series a refresh needs: traded tickers,
// each currency's USD pivot leg and the direct pair into the display
// currency.
func (e *Engine) priceSymbols(accounts map[string]Account, txs []Transaction) []string {
	seen := make(map[string]bool)
	var symbols []string
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			symbols = append(symbols, s)
		}
	}
	currency := func(c string) {
		if c == "" {
			return
		}
		if c != "USD" {
			add(FXSymbol(c, "USD"))
		}
		if c != e.cfg.DisplayCurrency {
			add(FXSymbol(c, e.cfg.DisplayCurrency))
		}
	}

	for _, tx := range txs {
		if inv, ok := tx.(InvestmentTransaction); ok {
			add(inv.Ticker())
		}
		currency(tx.Currency())
	}
	for _, acc := range accounts {
		currency(acc.Currency)
	}
	return symbols
}
