package centime

import "github.com/centime-app/centime/date"

// Converter resolves exchange rates as of a day. Resolution order:
//
//  1. identity, when both codes are equal or either is empty
//  2. the direct pair from the price store (carry-forward)
//  3. a USD pivot: rate(from→USD) / rate(to→USD), where each leg first
//     consults the Custom table, then the price store
//  4. 1.0, so a missing rate degrades to face value instead of erasing it
type Converter struct {
	Prices *PriceStore
	// Custom maps a currency code to its fixed rate against USD, taking
	// precedence over market pairs in the pivot legs.
	Custom map[string]float64
}

// Rate returns the multiplier turning an amount in from-currency into
// to-currency as of the given day. It never fails; unknown pairs resolve
// to 1.0.
func (c Converter) Rate(from, to string, on date.Date) float64 {
	if from == to || from == "" || to == "" {
		return 1.0
	}
	if r, ok := c.Prices.LookupOK(FXSymbol(from, to), on); ok && r > 0 {
		return r
	}
	fromUSD, okFrom := c.rateToUSD(from, on)
	toUSD, okTo := c.rateToUSD(to, on)
	if okFrom && okTo && toUSD > 0 {
		return fromUSD / toUSD
	}
	return 1.0
}

// rateToUSD resolves one pivot leg: the value of one unit of cur in USD.
func (c Converter) rateToUSD(cur string, on date.Date) (float64, bool) {
	if cur == "USD" {
		return 1.0, true
	}
	if r, ok := c.Custom[cur]; ok && r > 0 {
		return r, true
	}
	if r, ok := c.Prices.LookupOK(FXSymbol(cur, "USD"), on); ok && r > 0 {
		return r, true
	}
	return 0, false
}

// Convert converts a monetary value into the target currency as of a day.
func (c Converter) Convert(m Money, to string, on date.Date) Money {
	from := m.Currency()
	if from == to {
		return m
	}
	return M(m.Float()*c.Rate(from, to, on), to)
}
