package centime

import "fmt"

// Kind classifies an account.
type Kind int

const (
	// Cash accounts hold only cash transactions.
	Cash Kind = iota
	// Brokerage accounts can additionally hold security positions.
	Brokerage
	// Other covers anything else (property, liabilities, ...).
	Other
)

func (k Kind) String() string {
	switch k {
	case Cash:
		return "cash"
	case Brokerage:
		return "brokerage"
	case Other:
		return "other"
	default:
		return "unknown"
	}
}

// ParseKind parses a string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "cash":
		return Cash, nil
	case "brokerage":
		return Brokerage, nil
	case "other":
		return Other, nil
	default:
		return 0, fmt.Errorf("unknown account kind: %q", s)
	}
}

// Account is a container for transactions. Balance is the authoritative
// current value in the account's currency: historical reconstruction always
// derives from it by back-solving the opening balance, never the reverse.
type Account struct {
	ID       string
	Name     string
	Kind     Kind
	Balance  Money
	Currency string
}

// IsBrokerageCapable reports whether the account can hold positions: either
// it is declared a brokerage account, or its log contains investment rows.
func (a Account) IsBrokerageCapable(txs []Transaction) bool {
	if a.Kind == Brokerage {
		return true
	}
	for _, tx := range txs {
		if inv, ok := tx.(InvestmentTransaction); ok && inv.Account() == a.ID {
			return true
		}
	}
	return false
}
