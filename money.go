package centime

import (
	"encoding/json"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in a single currency. Arithmetic is
// exact (decimal), conversion to float happens only at the view boundary.
type Money struct {
	value decimal.Decimal // major units
	cur   string
}

// M builds a Money from any numeric value and a currency code.
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the full go-money currency, never nil.
func (m Money) currency() money.Currency {
	return *money.New(0, m.cur).Currency()
}

// Currency returns the ISO currency code, possibly "" for a weak value.
func (m Money) Currency() string { return m.cur }

// String formats the value with its currency symbol and fraction rules.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// Float returns the value as a float64 for the view layer.
func (m Money) Float() float64 { return m.value.InexactFloat64() }

func (m Money) Equal(n Money) bool   { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool         { return m.value.IsZero() }
func (m Money) IsPositive() bool     { return m.value.IsPositive() }
func (m Money) IsNegative() bool     { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool { return m.value.LessThan(n.value) }
func (m Money) Neg() Money           { return Money{value: m.value.Neg(), cur: m.cur} }

// Mul scales the value by a quantity of units.
func (m Money) Mul(q Quantity) Money { return Money{value: m.value.Mul(q.value), cur: m.cur} }

// Div divides the value by a quantity of units, e.g. cost basis per share.
func (m Money) Div(q Quantity) Money { return Money{value: m.value.Div(q.value), cur: m.cur} }

func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// cur resolves the currency of a binary operation; the "" currency is weak
// and adopts the other side. Mixing two distinct currencies is a programming
// error: amounts must be converted before being combined.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + " != " + b.cur)
	}
	return a.cur
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency,omitempty"`
	}{m.value, m.cur})
}
