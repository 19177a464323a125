package expense

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/frahmantamala/expense-tracker/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

// Columns lists the persisted keys in file order.
var Columns = []string{"Date", "Amount", "Category", "Description"}

// Record is one expense entry. Records are appended and never edited.
type Record struct {
	Date        string
	Amount      decimal.Decimal
	Category    string
	Description string
}

// Table is the ordered collection of records; the unit of persistence.
type Table []Record

func NewRecord(date string, amount decimal.Decimal, category, description string) Record {
	return Record{
		Date:        date,
		Amount:      CanonicalAmount(amount),
		Category:    category,
		Description: description,
	}
}

// CanonicalAmount strips trailing zeros so "10.50" and "10.5" compare and
// serialize identically.
func CanonicalAmount(d decimal.Decimal) decimal.Decimal {
	return decimal.RequireFromString(d.String())
}

// Equal compares field by field, amounts by value.
func (r Record) Equal(other Record) bool {
	return r.Date == other.Date &&
		r.Amount.Equal(other.Amount) &&
		r.Category == other.Category &&
		r.Description == other.Description
}

type recordJSON struct {
	Date        string      `json:"Date"`
	Amount      json.Number `json:"Amount"`
	Category    string      `json:"Category"`
	Description string      `json:"Description"`
}

// MarshalJSON writes Amount as a JSON number rather than decimal's default quoted string.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		Date:        r.Date,
		Amount:      json.Number(r.Amount.String()),
		Category:    r.Category,
		Description: r.Description,
	})
}

// UnmarshalJSON accepts Amount as a number or a numeric string. A record
// without a positive amount in float64 range is rejected.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Date        string          `json:"Date"`
		Amount      json.RawMessage `json:"Amount"`
		Category    string          `json:"Category"`
		Description *string         `json:"Description"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	amount, err := decodeAmount(raw.Amount)
	if err != nil {
		return err
	}

	r.Date = raw.Date
	r.Amount = CanonicalAmount(amount)
	r.Category = raw.Category
	r.Description = ""
	if raw.Description != nil {
		r.Description = *raw.Description
	}
	return nil
}

func decodeAmount(data json.RawMessage) (decimal.Decimal, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return decimal.Zero, fmt.Errorf("record has no Amount")
	}

	text := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return decimal.Zero, fmt.Errorf("invalid Amount %s: %w", data, err)
		}
	}

	amount, err := validation.ParseAmount(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid Amount %q: %w", text, err)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("invalid Amount %q: must be positive", text)
	}
	return amount, nil
}

func (t Table) Len() int {
	return len(t)
}

func (t Table) Clone() Table {
	out := make(Table, len(t))
	copy(out, t)
	return out
}

func (t Table) Equal(other Table) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if !t[i].Equal(other[i]) {
			return false
		}
	}
	return true
}
