package centime

import (
	"testing"

	"github.com/centime-app/centime/date"
)

func trade(id string, day string, ticker string, shares, price, fee float64) Transaction {
	return NewInvestmentTransaction(id, "broker", date.MustParse(day), "", "Investment", "", ticker,
		Q(shares), M(price, "USD"), M(fee, "USD"))
}

func TestReplayAverageCost(t *testing.T) {
	txs := []Transaction{
		trade("1", "2024-01-10", "ACME", 10, 100, 5),
		trade("2", "2024-02-10", "ACME", -4, 120, 2),
	}
	through := date.MustParse("2024-12-31")

	pos := Replay(txs, "broker", "ACME", through)
	if !pos.Shares.Equal(Q(6)) {
		t.Errorf("shares = %v, want 6", pos.Shares)
	}
	// Basis after the buy is 1005, average cost 100.5; selling 4 removes
	// 402, leaving 603. The sell fee reduces proceeds, not basis.
	if !pos.CostBasis.Equal(M(603, "USD")) {
		t.Errorf("cost basis = %v, want 603 USD", pos.CostBasis)
	}
	if pos.Oversold {
		t.Error("position should not be flagged oversold")
	}
}

func TestReplayStopsAtDate(t *testing.T) {
	txs := []Transaction{
		trade("1", "2024-01-10", "ACME", 10, 100, 5),
		trade("2", "2024-02-10", "ACME", -4, 120, 2),
	}
	pos := Replay(txs, "broker", "ACME", date.MustParse("2024-01-31"))
	if !pos.Shares.Equal(Q(10)) {
		t.Errorf("shares as of January = %v, want 10", pos.Shares)
	}
	if !pos.CostBasis.Equal(M(1005, "USD")) {
		t.Errorf("cost basis as of January = %v, want 1005 USD", pos.CostBasis)
	}
}

func TestReplayOversellStaysPermissive(t *testing.T) {
	txs := []Transaction{
		trade("1", "2024-01-10", "ACME", 3, 100, 0),
		trade("2", "2024-02-10", "ACME", -5, 100, 0),
	}
	pos := Replay(txs, "broker", "ACME", date.MustParse("2024-12-31"))
	if !pos.Oversold {
		t.Error("selling more than held must set Oversold")
	}
	if !pos.Shares.Equal(Q(-2)) {
		t.Errorf("shares = %v, want -2", pos.Shares)
	}
	if pos.CostBasis.IsNegative() {
		t.Errorf("cost basis must be clamped at zero, got %v", pos.CostBasis)
	}
	if pos.IsOpen() {
		t.Error("a negative position is not an open holding")
	}
}

func TestPositionROI(t *testing.T) {
	pos := Position{Ticker: "ACME", Shares: Q(10), CostBasis: M(1000, "USD")}
	if got := pos.ROI(1500); got != 50 {
		t.Errorf("ROI = %v, want 50", got)
	}
	if got := pos.ROI(800); got != -20 {
		t.Errorf("ROI = %v, want -20", got)
	}
	zero := Position{Ticker: "FREE", Shares: Q(10)}
	if got := zero.ROI(100); got != 0 {
		t.Errorf("ROI with no cost = %v, want 0", got)
	}
}

func TestHoldingsOnlyOpenPositions(t *testing.T) {
	txs := []Transaction{
		trade("1", "2024-01-10", "ACME", 10, 100, 0),
		trade("2", "2024-01-10", "GONE", 5, 10, 0),
		trade("3", "2024-02-10", "GONE", -5, 12, 0),
	}
	open := Holdings(txs, "broker", date.MustParse("2024-12-31"))
	if len(open) != 1 || open[0].Ticker != "ACME" {
		t.Errorf("Holdings = %+v, want the single ACME position", open)
	}
}
