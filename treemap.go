package centime

import (
	"fmt"
	"math"
	"slices"

	"github.com/centime-app/centime/date"
)

// TreemapItem is one value to place in the treemap.
type TreemapItem struct {
	Label string
	Value float64
	// ROI in percent drives the tile color.
	ROI float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// TreemapRect is a laid-out tile.
type TreemapRect struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Rect  Rect    `json:"rect"`
	ROI   float64 `json:"roi"`
	Color string  `json:"color"`
}

// LayoutTreemap fills bounds with one tile per item, each tile's area
// proportional to its value. Items with a non-positive value are dropped.
//
// The layout recursively splits the item list in two groups of near-equal
// total value and the rectangle along its longer side, proportionally to the
// group sums. Item order is preserved, so pre-sorting by descending value
// yields the usual large-tiles-first look.
func LayoutTreemap(items []TreemapItem, bounds Rect) []TreemapRect {
	kept := make([]TreemapItem, 0, len(items))
	for _, it := range items {
		if it.Value > 0 {
			kept = append(kept, it)
		}
	}
	out := make([]TreemapRect, 0, len(kept))
	layout(kept, bounds, &out)
	return out
}

func layout(items []TreemapItem, bounds Rect, out *[]TreemapRect) {
	switch len(items) {
	case 0:
		return
	case 1:
		*out = append(*out, TreemapRect{
			Label: items[0].Label,
			Value: items[0].Value,
			Rect:  bounds,
			ROI:   items[0].ROI,
			Color: roiColor(items[0].ROI),
		})
		return
	}

	var total float64
	for _, it := range items {
		total += it.Value
	}

	// Pick the split index whose prefix sum is closest to half the total.
	split, prefix := 1, items[0].Value
	bestDiff := math.Abs(prefix - total/2)
	sum := prefix
	for k := 2; k < len(items); k++ {
		sum += items[k-1].Value
		if diff := math.Abs(sum - total/2); diff < bestDiff {
			split, prefix, bestDiff = k, sum, diff
		}
	}

	ratio := prefix / total
	var first, second Rect
	if bounds.W >= bounds.H {
		first = Rect{X: bounds.X, Y: bounds.Y, W: bounds.W * ratio, H: bounds.H}
		second = Rect{X: bounds.X + first.W, Y: bounds.Y, W: bounds.W - first.W, H: bounds.H}
	} else {
		first = Rect{X: bounds.X, Y: bounds.Y, W: bounds.W, H: bounds.H * ratio}
		second = Rect{X: bounds.X, Y: bounds.Y + first.H, W: bounds.W, H: bounds.H - first.H}
	}
	layout(items[:split], first, out)
	layout(items[split:], second, out)
}

// roiColor maps a percentage return to an HSL color: green hues for gains,
// red for losses, darker as the magnitude approaches 50%.
func roiColor(roi float64) string {
	hue := 140
	if roi < 0 {
		hue = 0
	}
	intensity := math.Min(math.Abs(roi)/50, 1)
	lightness := 62 - 24*intensity
	return fmt.Sprintf("hsl(%d, 55%%, %.0f%%)", hue, lightness)
}

// HoldingsTreemap lays out every open position across the accounts into a
// 100x100 treemap, sized by market value in display currency and colored by
// return on cost.
func HoldingsTreemap(accounts map[string]Account, txs []Transaction, prices *PriceStore, fx Converter, display string, on date.Date) []TreemapRect {
	tickerCur := make(map[string]string)
	for _, tx := range txs {
		if inv, ok := tx.(InvestmentTransaction); ok && !inv.When().After(on) {
			tickerCur[inv.Ticker()] = inv.Currency()
		}
	}

	// Positions of the same ticker held in several accounts merge into one
	// tile with a blended return.
	value := make(map[string]float64)
	cost := make(map[string]float64)
	for _, acc := range accounts {
		for _, pos := range Holdings(txs, acc.ID, on) {
			price := prices.Lookup(pos.Ticker, on)
			value[pos.Ticker] += pos.Shares.Float() * price * fx.Rate(tickerCur[pos.Ticker], display, on)
			cost[pos.Ticker] += pos.CostBasis.Float() * fx.Rate(pos.CostBasis.Currency(), display, on)
		}
	}

	items := make([]TreemapItem, 0, len(value))
	for _, ticker := range sortedKeys(value) {
		roi := 0.0
		if cost[ticker] > 0 {
			roi = (value[ticker] - cost[ticker]) / cost[ticker] * 100
		}
		items = append(items, TreemapItem{Label: ticker, Value: value[ticker], ROI: roi})
	}
	slices.SortStableFunc(items, func(a, b TreemapItem) int {
		switch {
		case a.Value > b.Value:
			return -1
		case a.Value < b.Value:
			return 1
		default:
			return 0
		}
	})
	return LayoutTreemap(items, Rect{W: 100, H: 100})
}
