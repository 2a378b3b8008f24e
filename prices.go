package centime

import (
	"slices"

	"github.com/centime-app/centime/date"
)

// PricePoint is one observed closing price for a symbol.
type PricePoint struct {
	Symbol string    `json:"symbol"`
	Date   date.Date `json:"date"`
	Price  float64   `json:"price"`
}

// FXSymbol builds the price-store symbol of a currency pair, e.g.
// FXSymbol("EUR", "USD") == "EURUSD=X". The stored price is the value of one
// unit of base expressed in quote.
func FXSymbol(base, quote string) string { return base + quote + "=X" }

// PriceStore holds sparse daily price series for stock tickers and currency
// pairs. Lookups carry the last known value forward across days with no
// observation.
type PriceStore struct {
	series map[string]*date.History[float64]
}

// NewPriceStore builds a store from a flat batch of points. Points may arrive
// in any order; later duplicates of the same (symbol, day) win.
func NewPriceStore(points []PricePoint) *PriceStore {
	s := &PriceStore{series: make(map[string]*date.History[float64])}
	for _, p := range points {
		s.Append(p)
	}
	return s
}

// Append records one observation.
func (s *PriceStore) Append(p PricePoint) {
	if s.series == nil {
		s.series = make(map[string]*date.History[float64])
	}
	h, ok := s.series[p.Symbol]
	if !ok {
		h = &date.History[float64]{}
		s.series[p.Symbol] = h
	}
	h.Append(p.Date, p.Price)
}

// Has reports whether the store holds any observation for the symbol.
func (s *PriceStore) Has(symbol string) bool {
	if s == nil {
		return false
	}
	_, ok := s.series[symbol]
	return ok
}

// LookupOK returns the price of symbol as of the given day, carrying the last
// observation forward. It reports false when the symbol is unknown or the day
// predates its first observation.
func (s *PriceStore) LookupOK(symbol string, on date.Date) (float64, bool) {
	if s == nil {
		return 0, false
	}
	h, ok := s.series[symbol]
	if !ok {
		return 0, false
	}
	return h.ValueAsOf(on)
}

// Lookup is LookupOK degraded for valuation: an unknown price is worth zero
// so that a missing series underreports value instead of failing the whole
// series build.
func (s *PriceStore) Lookup(symbol string, on date.Date) float64 {
	v, _ := s.LookupOK(symbol, on)
	return v
}

// Missing returns, sorted, the subset of symbols with no observation at all.
// Valuations silently treat those as worthless, so callers surface them.
func (s *PriceStore) Missing(symbols []string) []string {
	var missing []string
	for _, sym := range symbols {
		if !s.Has(sym) {
			missing = append(missing, sym)
		}
	}
	slices.Sort(missing)
	return slices.Compact(missing)
}
