// Package renderer turns derived portfolio views into markdown reports.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/centime-app/centime"
)

//go:embed templates/*.md
var templates embed.FS

var funcs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"pct":   func(v float64) string { return fmt.Sprintf("%+.1f%%", v) },
}

// NetWorth renders the total valuation series with its period change.
func NetWorth(points []centime.ValuationPoint, currency string) string {
	data := struct {
		Points   []centime.ValuationPoint
		Currency string
		First    float64
		Last     float64
		Change   float64
	}{Points: points, Currency: currency}
	if n := len(points); n > 0 {
		data.First = points[0].Value
		data.Last = points[n-1].Value
		data.Change = data.Last - data.First
	}
	return renderTemplate("networth", "templates/networth.md", data)
}

// Expenses renders per-category spending totals.
func Expenses(totals []centime.CategoryTotal, currency string) string {
	var sum float64
	for _, c := range totals {
		sum += c.Total
	}
	data := struct {
		Totals   []centime.CategoryTotal
		Currency string
		Sum      float64
	}{totals, currency, sum}
	return renderTemplate("expenses", "templates/expenses.md", data)
}

// IncomeExpense renders the per-bucket income and expense table.
func IncomeExpense(buckets []centime.Bucket, currency string) string {
	data := struct {
		Buckets  []centime.Bucket
		Currency string
	}{buckets, currency}
	return renderTemplate("income_expense", "templates/income_expense.md", data)
}

// Flows renders the cash-flow graph as a list of money movements.
func Flows(g *centime.FlowGraph, currency string) string {
	data := struct {
		Graph    *centime.FlowGraph
		Currency string
	}{g, currency}
	return renderTemplate("flows", "templates/flows.md", data)
}

// Allocation renders each account's share of the current net worth.
func Allocation(slices []centime.AllocationSlice, currency string) string {
	var total float64
	for _, s := range slices {
		total += s.Value
	}
	type row struct {
		Name  string
		Value float64
		Share float64
	}
	rows := make([]row, 0, len(slices))
	for _, s := range slices {
		share := 0.0
		if total > 0 {
			share = s.Value / total * 100
		}
		rows = append(rows, row{s.Name, s.Value, share})
	}
	data := struct {
		Rows     []row
		Currency string
		Total    float64
	}{rows, currency, total}
	return renderTemplate("allocation", "templates/allocation.md", data)
}

// Holdings renders the laid-out treemap as a table of positions.
func Holdings(tiles []centime.TreemapRect, currency string) string {
	data := struct {
		Tiles    []centime.TreemapRect
		Currency string
	}{tiles, currency}
	return renderTemplate("holdings", "templates/holdings.md", data)
}

// renderTemplate executes one embedded template over data. Rendering errors
// come back as the output text: reports are best effort, not fallible.
func renderTemplate(name, file string, data any) string {
	content, err := fs.ReadFile(templates, file)
	if err != nil {
		return fmt.Sprintf("error reading template %q: %v", file, err)
	}
	tmpl, err := template.New(name).Funcs(funcs).Parse(string(content))
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", file, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", name, err)
	}
	return b.String()
}
