package centime

import "github.com/centime-app/centime/date"

// holdingTolerance is the share count below which a position counts as
// closed, absorbing float dust from fractional-share arithmetic.
const holdingTolerance = 1e-4

// Position is the reconstructed state of one security holding: how many
// shares are held and what they cost under average-cost accounting.
type Position struct {
	Ticker    string
	Shares    Quantity
	CostBasis Money
	// Oversold is set when the log sold more shares than it ever bought.
	// The replay stays permissive: shares go negative, the cost basis is
	// clamped at zero, and the flag lets callers surface the anomaly.
	Oversold bool
}

// AverageCost returns the cost of one share, zero for an empty position.
func (p Position) AverageCost() Money {
	if !p.Shares.IsPositive() {
		return M(0, p.CostBasis.Currency())
	}
	return p.CostBasis.Div(p.Shares)
}

// ROI returns the percentage gain of the position given its current market
// value, zero when there is no cost to measure against.
func (p Position) ROI(marketValue float64) float64 {
	cost := p.CostBasis.Float()
	if cost <= 0 {
		return 0
	}
	return (marketValue - cost) / cost * 100
}

// IsOpen reports whether the position still holds a meaningful number of
// shares.
func (p Position) IsOpen() bool {
	return p.Shares.Float() > holdingTolerance
}

// Replay reconstructs the position of one ticker in one account by walking
// its trades chronologically up to and including the given day.
//
// A buy adds its shares and its full cash cost (price times shares plus fee)
// to the basis. A sell removes shares at the running average cost; fees on a
// sell reduce proceeds, not basis.
func Replay(txs []Transaction, account, ticker string, through date.Date) Position {
	pos := Position{Ticker: ticker}
	for _, tx := range txs {
		inv, ok := tx.(InvestmentTransaction)
		if !ok || inv.Account() != account || inv.Ticker() != ticker {
			continue
		}
		if inv.When().After(through) {
			continue
		}
		if inv.Shares().IsNegative() {
			sold := inv.Shares().Abs()
			avg := pos.AverageCost()
			pos.Shares = pos.Shares.Sub(sold)
			pos.CostBasis = pos.CostBasis.Sub(avg.Mul(sold))
			if pos.CostBasis.IsNegative() {
				pos.CostBasis = M(0, pos.CostBasis.Currency())
			}
			if pos.Shares.IsNegative() {
				pos.Oversold = true
			}
			continue
		}
		pos.Shares = pos.Shares.Add(inv.Shares())
		cost := inv.Price().Mul(inv.Shares()).Add(inv.Fee())
		pos.CostBasis = pos.CostBasis.Add(cost)
	}
	return pos
}

// Holdings reconstructs every open position of an account as of a day,
// sorted by ticker.
func Holdings(txs []Transaction, account string, through date.Date) []Position {
	var open []Position
	for _, ticker := range Tickers(txs) {
		pos := Replay(txs, account, ticker, through)
		if pos.IsOpen() {
			open = append(open, pos)
		}
	}
	return open
}
