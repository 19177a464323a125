package expense

import (
	"encoding/json"
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

func (c CategoryTotal) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Category string      `json:"category"`
		Total    json.Number `json:"total"`
	}{
		Category: c.Category,
		Total:    json.Number(c.Total.String()),
	})
}

// Summarize groups records by category and sums their amounts. The result is
// sorted by total descending; equal totals are ordered by category name.
func Summarize(table Table) []CategoryTotal {
	sums := make(map[string]decimal.Decimal)
	for _, rec := range table {
		sums[rec.Category] = sums[rec.Category].Add(rec.Amount)
	}

	totals := make([]CategoryTotal, 0, len(sums))
	for name, sum := range sums {
		totals = append(totals, CategoryTotal{Category: name, Total: CanonicalAmount(sum)})
	}

	sort.Slice(totals, func(i, j int) bool {
		if c := totals[i].Total.Cmp(totals[j].Total); c != 0 {
			return c > 0
		}
		return totals[i].Category < totals[j].Category
	})

	return totals
}

// GrandTotal sums every category total.
func GrandTotal(totals []CategoryTotal) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.Total)
	}
	return sum
}
