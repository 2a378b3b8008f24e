package centime

import (
	"testing"

	"github.com/centime-app/centime/date"
)

func cashTx(id, day, category string, amount float64) Transaction {
	return NewCashTransaction(id, "a", date.MustParse(day), "Payee", category, "", M(amount, "USD"))
}

func TestExpensesByCategory(t *testing.T) {
	rng := date.Between(date.MustParse("2024-01-01"), date.MustParse("2024-01-31"))
	fx := Converter{Prices: NewPriceStore(nil)}
	txs := []Transaction{
		cashTx("1", "2024-01-05", "Groceries", -50),
		cashTx("2", "2024-01-10", "Groceries", -30),
		cashTx("3", "2024-01-12", "Rent", -700),
		cashTx("4", "2024-01-15", "Income", 2000),
		cashTx("5", "2024-01-16", TransferCategory, -500),
		cashTx("6", "2024-02-01", "Groceries", -10),
		cashTx("7", "2024-01-20", "", -5),
		trade("8", "2024-01-21", "ACME", 1, 100, 0),
	}

	got := ExpensesByCategory(txs, fx, "USD", rng)
	want := []CategoryTotal{
		{Category: "Rent", Total: 700},
		{Category: "Groceries", Total: 80},
		{Category: "Uncategorized", Total: 5},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("totals[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestIncomeExpenseBucketsByDay(t *testing.T) {
	rng := date.Between(date.MustParse("2024-01-01"), date.MustParse("2024-01-03"))
	fx := Converter{Prices: NewPriceStore(nil)}
	txs := []Transaction{
		cashTx("1", "2024-01-01", "Income", 100),
		cashTx("2", "2024-01-01", "Groceries", -40),
		cashTx("3", "2024-01-03", TransferCategory, -500),
		trade("4", "2024-01-02", "ACME", 1, 10, 0),
	}

	got := IncomeExpenseBuckets(txs, fx, "USD", rng)
	if len(got) != 3 {
		t.Fatalf("got %d buckets, want one per day", len(got))
	}
	if got[0].Key != "2024-01-01" || got[0].Income != 100 || got[0].Expense != 40 {
		t.Errorf("bucket[0] = %+v", got[0])
	}
	// Transfers and trades leave their buckets empty.
	if got[1].Income != 0 || got[1].Expense != 0 {
		t.Errorf("bucket[1] = %+v, want empty", got[1])
	}
	if got[2].Income != 0 || got[2].Expense != 0 {
		t.Errorf("bucket[2] = %+v, want empty", got[2])
	}
}

func TestIncomeExpenseBucketsByMonth(t *testing.T) {
	rng := date.Between(date.MustParse("2024-01-01"), date.MustParse("2024-03-31"))
	fx := Converter{Prices: NewPriceStore(nil)}
	txs := []Transaction{
		cashTx("1", "2024-01-05", "Income", 100),
		cashTx("2", "2024-01-20", "Rent", -70),
		cashTx("3", "2024-03-01", "Income", 50),
	}

	got := IncomeExpenseBuckets(txs, fx, "USD", rng)
	if len(got) != 3 {
		t.Fatalf("got %d buckets, want 3 months", len(got))
	}
	if got[0].Key != "2024-01" || got[0].Income != 100 || got[0].Expense != 70 {
		t.Errorf("bucket[0] = %+v", got[0])
	}
	if got[1].Key != "2024-02" || got[1].Income != 0 || got[1].Expense != 0 {
		t.Errorf("bucket[1] = %+v, want empty february", got[1])
	}
	if got[2].Key != "2024-03" || got[2].Income != 50 {
		t.Errorf("bucket[2] = %+v", got[2])
	}
}

func TestAllocation(t *testing.T) {
	series := Series{PerAccount: map[string][]ValuationPoint{
		"Checking": {{Value: 100}, {Value: 300}},
		"Broker":   {{Value: 900}, {Value: 700}},
		"Empty":    {},
		"Debt":     {{Value: -50}, {Value: -40}},
	}}
	got := Allocation(series)
	if len(got) != 2 {
		t.Fatalf("Allocation = %+v, want 2 slices", got)
	}
	if got[0].Name != "Broker" || got[0].Value != 700 {
		t.Errorf("slice[0] = %+v", got[0])
	}
	if got[1].Name != "Checking" || got[1].Value != 300 {
		t.Errorf("slice[1] = %+v", got[1])
	}
}
