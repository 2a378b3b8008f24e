package centime

import (
	"slices"
	"strings"

	"github.com/centime-app/centime/date"
	"github.com/samber/lo"
)

// InvestmentClassifier decides whether a spending category is really money
// set aside rather than consumed.
type InvestmentClassifier func(category string) bool

// KeywordClassifier flags categories whose name contains an investment
// keyword, case-insensitive.
func KeywordClassifier(category string) bool {
	c := strings.ToLower(category)
	for _, kw := range []string{"invest", "savings", "brokerage", "deposit"} {
		if strings.Contains(c, kw) {
			return true
		}
	}
	return false
}

// Node names and layout priorities of the cash-flow graph. Lower priority
// renders further left.
const (
	flowBudget      = "Budget"
	flowDeficit     = "Deficit"
	flowInvestments = "Investments & Savings"
	flowSavings     = "Savings"
	flowExpenses    = "Expenses"
)

const (
	priorityIncome      = 0
	priorityDeficit     = 1
	priorityBudget      = 2
	priorityInvestments = 3
	prioritySavings     = 4
	priorityInvestCat   = 5
	priorityExpenses    = 6
	priorityExpenseCat  = 7
)

// FlowNode is one node of the cash-flow graph.
type FlowNode struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"`
}

// FlowEdge moves a positive amount of money between two nodes.
type FlowEdge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// FlowGraph is a Sankey-style description of where money came from and where
// it went over a range.
type FlowGraph struct {
	Nodes []FlowNode `json:"nodes"`
	Edges []FlowEdge `json:"edges"`
}

// BuildFlowGraph aggregates the range's transactions into a cash-flow graph.
//
// Income categories feed a central Budget node. The budget splits into an
// Expenses branch and an Investments & Savings branch; the classifier decides
// which outflow categories belong to the latter. Money left over flows to
// Savings; when outflows exceed income, a Deficit node covers the gap.
// Transfers are ignored throughout.
func BuildFlowGraph(txs []Transaction, fx Converter, display string, rng date.Range, classify InvestmentClassifier) *FlowGraph {
	if classify == nil {
		classify = KeywordClassifier
	}

	income := make(map[string]float64)
	outflow := make(map[string]float64)
	for _, tx := range txs {
		if !rng.Contains(tx.When()) || tx.Category() == TransferCategory {
			continue
		}
		category := tx.Category()
		if category == "" {
			category = "Uncategorized"
		}
		amount := tx.Amount().Float() * fx.Rate(tx.Currency(), display, tx.When())
		if amount >= 0 {
			income[category] += amount
		} else {
			outflow[category] -= amount
		}
	}

	invest := lo.PickBy(outflow, func(category string, _ float64) bool { return classify(category) })
	expense := lo.OmitBy(outflow, func(category string, _ float64) bool { return classify(category) })

	totalIncome := lo.Sum(lo.Values(income))
	totalInvest := lo.Sum(lo.Values(invest))
	totalExpense := lo.Sum(lo.Values(expense))
	surplus := totalIncome - totalExpense - totalInvest

	g := &FlowGraph{}
	node := func(name string, priority int) {
		for _, n := range g.Nodes {
			if n.Name == name {
				return
			}
		}
		g.Nodes = append(g.Nodes, FlowNode{Name: name, Priority: priority})
	}
	edge := func(from, to string, amount float64) {
		if amount <= 0 {
			return
		}
		g.Edges = append(g.Edges, FlowEdge{From: from, To: to, Amount: amount})
	}

	node(flowBudget, priorityBudget)
	for _, category := range sortedKeys(income) {
		node(category, priorityIncome)
		edge(category, flowBudget, income[category])
	}
	if surplus < 0 {
		node(flowDeficit, priorityDeficit)
		edge(flowDeficit, flowBudget, -surplus)
	}

	toInvestments := totalInvest
	if surplus > 0 {
		toInvestments += surplus
	}
	if toInvestments > 0 {
		node(flowInvestments, priorityInvestments)
		edge(flowBudget, flowInvestments, toInvestments)
	}
	if surplus > 0 {
		node(flowSavings, prioritySavings)
		edge(flowInvestments, flowSavings, surplus)
	}
	for _, category := range sortedKeys(invest) {
		node(category, priorityInvestCat)
		edge(flowInvestments, category, invest[category])
	}

	if totalExpense > 0 {
		node(flowExpenses, priorityExpenses)
		edge(flowBudget, flowExpenses, totalExpense)
	}
	for _, category := range sortedKeys(expense) {
		node(category, priorityExpenseCat)
		edge(flowExpenses, category, expense[category])
	}

	slices.SortStableFunc(g.Nodes, func(a, b FlowNode) int {
		if a.Priority != b.Priority {
			return a.Priority - b.Priority
		}
		return strings.Compare(a.Name, b.Name)
	})
	return g
}

func sortedKeys(m map[string]float64) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}
