package centime

import (
	"math"

	"github.com/centime-app/centime/date"
)

// ValuationPoint is the value of something on one day, in display currency.
type ValuationPoint struct {
	Date  date.Date `json:"date"`
	Value float64   `json:"value"`
}

// SeriesInput gathers everything the valuation walk needs. Transactions must
// be sorted chronologically.
type SeriesInput struct {
	Accounts     map[string]Account
	Transactions []Transaction
	Prices       *PriceStore
	FX           Converter
	// Display is the currency every output point is expressed in.
	Display string
	Range   date.Range
	// CurrentTotal is the authoritative live net worth. It replaces the
	// last computed point of the total series so that "today" always
	// matches what the source of record reports, even when price and FX
	// series lag behind.
	CurrentTotal float64
}

// Series is the daily valuation of a portfolio over a range.
type Series struct {
	// NetWorth sums every account, one point per day.
	NetWorth []ValuationPoint
	// PerAccount holds one series per account, keyed by account name.
	PerAccount map[string][]ValuationPoint
}

// BuildSeries computes the daily value of every account over the range.
//
// Account history is reconstructed backwards from the present: the opening
// balance is the current balance minus the sum of all transaction amounts
// (each converted to the account currency at its own date), then the walk
// replays transactions forward day by day. Brokerage-capable accounts add the
// market value of their open positions, priced with carry-forward lookups.
func BuildSeries(in SeriesInput) Series {
	byAccount := make(map[string][]Transaction)
	for _, tx := range in.Transactions {
		byAccount[tx.Account()] = append(byAccount[tx.Account()], tx)
	}

	s := Series{PerAccount: make(map[string][]ValuationPoint, len(in.Accounts))}
	total := make([]float64, in.Range.Days())
	var days []date.Date
	for _, acc := range in.Accounts {
		pts := accountSeries(acc, byAccount[acc.ID], in)
		s.PerAccount[acc.Name] = pts
		for i, p := range pts {
			total[i] += p.Value
		}
		if days == nil {
			days = make([]date.Date, len(pts))
			for i, p := range pts {
				days[i] = p.Date
			}
		}
	}
	if days == nil {
		for day := range in.Range.Each() {
			days = append(days, day)
		}
	}

	s.NetWorth = make([]ValuationPoint, len(days))
	for i, day := range days {
		s.NetWorth[i] = ValuationPoint{Date: day, Value: total[i]}
	}
	if n := len(s.NetWorth); n > 0 {
		s.NetWorth[n-1].Value = in.CurrentTotal
	}
	return s
}

func accountSeries(acc Account, txs []Transaction, in SeriesInput) []ValuationPoint {
	// Back-solve the opening balance from the authoritative current one.
	initial := acc.Balance.Float()
	for _, tx := range txs {
		initial -= tx.Amount().Float() * in.FX.Rate(tx.Currency(), acc.Currency, tx.When())
	}

	brokerage := acc.IsBrokerageCapable(txs)
	cash := initial
	shares := make(map[string]float64)
	tickerCur := make(map[string]string)
	next := 0

	pts := make([]ValuationPoint, 0, in.Range.Days())
	for day := range in.Range.Each() {
		for next < len(txs) && !txs[next].When().After(day) {
			tx := txs[next]
			cash += tx.Amount().Float() * in.FX.Rate(tx.Currency(), acc.Currency, tx.When())
			if inv, ok := tx.(InvestmentTransaction); ok {
				shares[inv.Ticker()] += inv.Shares().Float()
				tickerCur[inv.Ticker()] = inv.Currency()
			}
			next++
		}
		value := cash
		if brokerage {
			for ticker, n := range shares {
				// Oversold positions stay in the sum: negative shares
				// subtract market value.
				if math.Abs(n) <= holdingTolerance {
					continue
				}
				price := in.Prices.Lookup(ticker, day)
				value += n * price * in.FX.Rate(tickerCur[ticker], acc.Currency, day)
			}
		}
		pts = append(pts, ValuationPoint{
			Date:  day,
			Value: value * in.FX.Rate(acc.Currency, in.Display, day),
		})
	}
	return pts
}
