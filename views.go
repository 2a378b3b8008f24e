package centime

import (
	"slices"

	"github.com/centime-app/centime/date"
	"github.com/samber/lo"
)

// CategoryTotal is the total spent under one category over a range, as a
// positive number in display currency.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// ExpensesByCategory sums spending per category over the range. Only cash
// outflows count: investment trades and transfers are internal movements,
// not spending. Amounts are converted to the display currency at the
// transaction date. The result is sorted by descending total.
func ExpensesByCategory(txs []Transaction, fx Converter, display string, rng date.Range) []CategoryTotal {
	spending := lo.Filter(txs, func(tx Transaction, _ int) bool {
		if _, ok := tx.(InvestmentTransaction); ok {
			return false
		}
		return rng.Contains(tx.When()) &&
			tx.Amount().IsNegative() &&
			tx.Category() != TransferCategory
	})
	byCategory := lo.GroupBy(spending, func(tx Transaction) string {
		if tx.Category() == "" {
			return "Uncategorized"
		}
		return tx.Category()
	})
	totals := lo.MapToSlice(byCategory, func(category string, txs []Transaction) CategoryTotal {
		total := lo.SumBy(txs, func(tx Transaction) float64 {
			return -tx.Amount().Float() * fx.Rate(tx.Currency(), display, tx.When())
		})
		return CategoryTotal{Category: category, Total: total}
	})
	slices.SortFunc(totals, func(a, b CategoryTotal) int {
		switch {
		case a.Total > b.Total:
			return -1
		case a.Total < b.Total:
			return 1
		default:
			return 0
		}
	})
	return totals
}

// Bucket pairs income and expense totals under one time key.
type Bucket struct {
	Key     string  `json:"key"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// Net is income minus expenses.
func (b Bucket) Net() float64 { return b.Income - b.Expense }

// IncomeExpenseBuckets splits cash flow over the range into per-day buckets
// for ranges up to a month, per-month buckets beyond. Transfers and
// investment trades are excluded; expenses are reported positive. Buckets
// are emitted in chronological order with no gaps.
func IncomeExpenseBuckets(txs []Transaction, fx Converter, display string, rng date.Range) []Bucket {
	byDay := rng.Days() <= 31
	key := func(on date.Date) string {
		if byDay {
			return on.String()
		}
		return on.Layout("2006-01")
	}

	index := make(map[string]int)
	var buckets []Bucket
	for day := range rng.Each() {
		k := key(day)
		if _, ok := index[k]; !ok {
			index[k] = len(buckets)
			buckets = append(buckets, Bucket{Key: k})
		}
	}

	for _, tx := range txs {
		if !rng.Contains(tx.When()) || tx.Category() == TransferCategory {
			continue
		}
		if _, ok := tx.(InvestmentTransaction); ok {
			continue
		}
		b := &buckets[index[key(tx.When())]]
		amount := tx.Amount().Float() * fx.Rate(tx.Currency(), display, tx.When())
		if amount >= 0 {
			b.Income += amount
		} else {
			b.Expense -= amount
		}
	}
	return buckets
}

// AllocationSlice is one account's share of current net worth.
type AllocationSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Allocation extracts the latest value of every account from a valuation
// series, dropping non-positive slices, sorted by descending value.
func Allocation(s Series) []AllocationSlice {
	alloc := lo.FilterMap(lo.Keys(s.PerAccount), func(name string, _ int) (AllocationSlice, bool) {
		pts := s.PerAccount[name]
		if len(pts) == 0 || pts[len(pts)-1].Value <= 0 {
			return AllocationSlice{}, false
		}
		return AllocationSlice{Name: name, Value: pts[len(pts)-1].Value}, true
	})
	slices.SortFunc(alloc, func(a, b AllocationSlice) int {
		switch {
		case a.Value > b.Value:
			return -1
		case a.Value < b.Value:
			return 1
		default:
			return 0
		}
	})
	return alloc
}
