package centime

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/centime-app/centime/date"
)

// TransferCategory marks internal movements between accounts. Transfers are
// excluded from income and expense analytics.
const TransferCategory = "Transfer"

// Transaction is an immutable, validated row of an account log. A transaction
// either moves cash (CashTransaction) or trades a security
// (InvestmentTransaction); both carry a signed cash amount where positive
// means money flowing into the account.
type Transaction interface {
	ID() string
	Account() string
	When() date.Date
	Payee() string
	Category() string
	Notes() string
	// Amount is the signed cash impact on the account, in Currency.
	Amount() Money
	// Currency the amount is denominated in. It may differ from the
	// account's currency; conversion happens at valuation time.
	Currency() string
}

type txBase struct {
	id       string
	account  string
	on       date.Date
	payee    string
	category string
	notes    string
	amount   Money
}

func (t txBase) ID() string       { return t.id }
func (t txBase) Account() string  { return t.account }
func (t txBase) When() date.Date  { return t.on }
func (t txBase) Payee() string    { return t.payee }
func (t txBase) Category() string { return t.category }
func (t txBase) Notes() string    { return t.notes }
func (t txBase) Amount() Money    { return t.amount }
func (t txBase) Currency() string { return t.amount.Currency() }

// CashTransaction is a plain cash movement: income, expense or transfer.
type CashTransaction struct {
	txBase
}

// NewCashTransaction creates a validated cash movement.
func NewCashTransaction(id, account string, on date.Date, payee, category, notes string, amount Money) CashTransaction {
	return CashTransaction{txBase{id: id, account: account, on: on, payee: payee, category: category, notes: notes, amount: amount}}
}

// IsTransfer reports whether the movement is internal and must be ignored by
// income and expense analytics.
func (t CashTransaction) IsTransfer() bool { return t.category == TransferCategory }

// InvestmentTransaction trades shares of a security inside an account. The
// cash amount is derived from the trade: a buy costs shares*price plus fee, a
// sell credits shares*price minus fee.
type InvestmentTransaction struct {
	txBase
	ticker string
	shares Quantity
	price  Money
	fee    Money
}

// NewInvestmentTransaction creates a validated trade. Positive shares buy,
// negative shares sell; the signed cash amount is derived accordingly. An
// empty payee defaults to a "Buy X" or "Sell X" label.
func NewInvestmentTransaction(id, account string, on date.Date, payee, category, notes, ticker string, shares Quantity, price, fee Money) InvestmentTransaction {
	gross := price.Mul(shares.Abs())
	var amount Money
	if shares.IsNegative() {
		amount = gross.Sub(fee)
		if payee == "" {
			payee = "Sell " + ticker
		}
	} else {
		amount = gross.Add(fee).Neg()
		if payee == "" {
			payee = "Buy " + ticker
		}
	}
	return InvestmentTransaction{
		txBase: txBase{id: id, account: account, on: on, payee: payee, category: category, notes: notes, amount: amount},
		ticker: ticker,
		shares: shares,
		price:  price,
		fee:    fee,
	}
}

func (t InvestmentTransaction) Ticker() string   { return t.ticker }
func (t InvestmentTransaction) Shares() Quantity { return t.shares }
func (t InvestmentTransaction) Price() Money     { return t.price }
func (t InvestmentTransaction) Fee() Money       { return t.fee }

// SortTransactions orders transactions chronologically, preserving the
// relative order of same-day rows.
func SortTransactions(txs []Transaction) {
	slices.SortStableFunc(txs, func(a, b Transaction) int {
		return a.When().Compare(b.When())
	})
}

// FirstDate returns the earliest transaction date, or the zero date when the
// log is empty.
func FirstDate(txs []Transaction) date.Date {
	var first date.Date
	for _, tx := range txs {
		if first.IsZero() || tx.When().Before(first) {
			first = tx.When()
		}
	}
	return first
}

// Categories returns the distinct categories appearing in the log, sorted.
func Categories(txs []Transaction) []string {
	seen := make(map[string]bool)
	for _, tx := range txs {
		if c := tx.Category(); c != "" {
			seen[c] = true
		}
	}
	cats := make([]string, 0, len(seen))
	for c := range seen {
		cats = append(cats, c)
	}
	slices.Sort(cats)
	return cats
}

// Payees returns the distinct payees appearing in the log, sorted.
func Payees(txs []Transaction) []string {
	seen := make(map[string]bool)
	for _, tx := range txs {
		if p := tx.Payee(); p != "" {
			seen[p] = true
		}
	}
	payees := make([]string, 0, len(seen))
	for p := range seen {
		payees = append(payees, p)
	}
	slices.Sort(payees)
	return payees
}

// Tickers returns the distinct tickers traded in the log, sorted.
func Tickers(txs []Transaction) []string {
	seen := make(map[string]bool)
	for _, tx := range txs {
		if inv, ok := tx.(InvestmentTransaction); ok {
			seen[inv.Ticker()] = true
		}
	}
	tickers := make([]string, 0, len(seen))
	for t := range seen {
		tickers = append(tickers, t)
	}
	slices.Sort(tickers)
	return tickers
}

// Numeric is a float64 that tolerates sloppy upstream encodings: JSON
// numbers, quoted numbers, empty strings and null all decode, anything
// unreadable decodes to zero rather than failing the whole payload.
type Numeric float64

func (n *Numeric) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	s := strings.TrimSpace(string(b))
	if len(s) >= 2 && s[0] == '"' {
		var err error
		if s, err = strconv.Unquote(s); err != nil {
			*n = 0
			return nil
		}
		s = strings.TrimSpace(s)
	}
	if s == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = Numeric(f)
	return nil
}

// Ident is a string identifier that also accepts a bare JSON number.
type Ident string

func (id *Ident) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*id = ""
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*id = Ident(v)
		return nil
	}
	*id = Ident(s)
	return nil
}

// Record is the raw wire form of a transaction, before validation.
type Record struct {
	ID            Ident   `json:"id"`
	AccountID     Ident   `json:"account_id"`
	Date          string  `json:"date"`
	Payee         string  `json:"payee"`
	Category      string  `json:"category,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	Amount        Numeric `json:"amount"`
	Ticker        string  `json:"ticker,omitempty"`
	Shares        Numeric `json:"shares,omitempty"`
	PricePerShare Numeric `json:"price_per_share,omitempty"`
	Fee           Numeric `json:"fee,omitempty"`
	Currency      string  `json:"currency,omitempty"`
}

// AccountRecord is the raw wire form of an account, before validation.
type AccountRecord struct {
	ID       Ident   `json:"id"`
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	Balance  Numeric `json:"balance"`
	Currency string  `json:"currency,omitempty"`
}

// ValidateAccounts turns wire accounts into validated ones, keyed by id.
// Accounts with no currency adopt the given default, unknown kinds degrade
// to Other.
func ValidateAccounts(recs []AccountRecord, defaultCurrency string) map[string]Account {
	accounts := make(map[string]Account, len(recs))
	for _, rec := range recs {
		cur := rec.Currency
		if cur == "" {
			cur = defaultCurrency
		}
		kind, err := ParseKind(rec.Kind)
		if err != nil {
			kind = Other
		}
		accounts[string(rec.ID)] = Account{
			ID:       string(rec.ID),
			Name:     rec.Name,
			Kind:     kind,
			Balance:  M(float64(rec.Balance), cur),
			Currency: cur,
		}
	}
	return accounts
}

// ValidateRecords turns wire records into validated transactions. Rows with
// an unparseable date or an unknown account are skipped; the joined error
// reports every skipped row so callers can log it while proceeding with the
// valid ones. Records carrying a ticker become investment transactions, all
// others cash transactions. Records with no currency adopt their account's.
//
// The wire amount is authoritative: the balance identity sums exactly what
// the backend recorded. Only when an investment row carries no amount is it
// derived from shares, price and fee.
func ValidateRecords(recs []Record, accounts map[string]Account) ([]Transaction, error) {
	txs := make([]Transaction, 0, len(recs))
	var errs []error
	for _, rec := range recs {
		on, err := date.Parse(rec.Date)
		if err != nil {
			errs = append(errs, fmt.Errorf("transaction %s: %w", rec.ID, err))
			continue
		}
		acc, ok := accounts[string(rec.AccountID)]
		if !ok {
			errs = append(errs, fmt.Errorf("transaction %s: unknown account %q", rec.ID, rec.AccountID))
			continue
		}
		cur := rec.Currency
		if cur == "" {
			cur = acc.Currency
		}
		if rec.Ticker != "" {
			inv := NewInvestmentTransaction(
				string(rec.ID), acc.ID, on, rec.Payee, rec.Category, rec.Notes, rec.Ticker,
				Q(float64(rec.Shares)), M(float64(rec.PricePerShare), cur), M(float64(rec.Fee), cur),
			)
			if rec.Amount != 0 {
				inv.amount = M(float64(rec.Amount), cur)
			}
			txs = append(txs, inv)
			continue
		}
		txs = append(txs, NewCashTransaction(
			string(rec.ID), acc.ID, on, rec.Payee, rec.Category, rec.Notes,
			M(float64(rec.Amount), cur),
		))
	}
	SortTransactions(txs)
	return txs, errors.Join(errs...)
}
