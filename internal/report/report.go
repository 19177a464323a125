// Package report turns the expense table and its category totals into
// terminal tables, a pie chart and spreadsheet exports.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/shopspring/decimal"
)

const (
	ChartTitle = "Spending by Category"
	barWidth   = 40
)

var (
	ErrNothingToSummarize = internal.NewNotFoundError("No expenses to summarize.", internal.ErrCodeNoExpenses)
	ErrNothingToVisualize = internal.NewNotFoundError("No expenses to visualize.", internal.ErrCodeNoExpenses)
)

// Slice is one wedge of the spending pie.
type Slice struct {
	Category string
	Total    decimal.Decimal
	Percent  float64
}

func (s Slice) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Category string      `json:"category"`
		Total    json.Number `json:"total"`
		Percent  float64     `json:"percent"`
	}{
		Category: s.Category,
		Total:    json.Number(s.Total.String()),
		Percent:  s.Percent,
	})
}

// PieSlices converts category totals into pie proportions, keeping their order.
func PieSlices(totals []expense.CategoryTotal) []Slice {
	grand := expense.GrandTotal(totals)
	slices := make([]Slice, 0, len(totals))
	if !grand.IsPositive() {
		return slices
	}

	hundred := decimal.NewFromInt(100)
	for _, t := range totals {
		pct := t.Total.Mul(hundred).DivRound(grand, 6)
		slices = append(slices, Slice{
			Category: t.Category,
			Total:    t.Total,
			Percent:  pct.InexactFloat64(),
		})
	}
	return slices
}

func FormatMoney(d decimal.Decimal) string {
	return internal.DefaultCurrency + d.StringFixed(2)
}

func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// RenderExpenses writes the table in entry order.
func RenderExpenses(w io.Writer, table expense.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDate\tAmount\tCategory\tDescription")
	for i, rec := range table {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, rec.Date, FormatMoney(rec.Amount), rec.Category, rec.Description)
	}
	return tw.Flush()
}

// RenderSummary writes one row per category total.
func RenderSummary(w io.Writer, totals []expense.CategoryTotal) error {
	if len(totals) == 0 {
		return ErrNothingToSummarize
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Category\tTotal Amount ($)\t")
	for _, t := range totals {
		fmt.Fprintf(tw, "%s\t%s\t\n", t.Category, FormatMoney(t.Total))
	}
	return tw.Flush()
}

// RenderChart draws the pie proportions as horizontal bars.
func RenderChart(w io.Writer, slices []Slice) error {
	if len(slices) == 0 {
		return ErrNothingToVisualize
	}

	width := 0
	for _, s := range slices {
		if len(s.Category) > width {
			width = len(s.Category)
		}
	}

	if _, err := fmt.Fprintln(w, ChartTitle); err != nil {
		return err
	}
	for _, s := range slices {
		n := int(s.Percent/100*barWidth + 0.5)
		if n == 0 && s.Percent > 0 {
			n = 1
		}
		_, err := fmt.Fprintf(w, "%-*s %s %6s  %s\n",
			width, s.Category,
			strings.Repeat("#", n)+strings.Repeat(".", barWidth-n),
			FormatPercent(s.Percent),
			FormatMoney(s.Total))
		if err != nil {
			return err
		}
	}
	return nil
}
