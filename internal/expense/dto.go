package expense

import (
	"bytes"
	"encoding/json"
	"strings"

	errors "github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/core/common/validation"
)

const MsgRequiredFields = "Please fill in all required fields (Date, Amount, Category)."

// RawAmount accepts either a JSON string or a JSON number and keeps the text as entered.
type RawAmount string

func (a *RawAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = RawAmount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = RawAmount(n.String())
	return nil
}

// CreateExpenseDTO carries the raw form values of a new expense.
type CreateExpenseDTO struct {
	Date        string    `json:"date"`
	Amount      RawAmount `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
}

func (dto CreateExpenseDTO) trimmed() CreateExpenseDTO {
	return CreateExpenseDTO{
		Date:        strings.TrimSpace(dto.Date),
		Amount:      RawAmount(strings.TrimSpace(string(dto.Amount))),
		Category:    strings.TrimSpace(dto.Category),
		Description: strings.TrimSpace(dto.Description),
	}
}

// Validate checks required fields first, then date shape, amount and category,
// stopping at the first failure.
func (dto CreateExpenseDTO) Validate() error {
	in := dto.trimmed()

	required := validation.NewValidator()
	required.Field("date", in.Date).RequiredWithMessage(MsgRequiredFields)
	required.Field("amount", string(in.Amount)).RequiredWithMessage(MsgRequiredFields)
	required.Field("category", in.Category).RequiredWithMessage(MsgRequiredFields)
	if err := required.First(); err != nil {
		return err
	}

	if !validation.ValidateDate(in.Date) {
		return errors.NewValidationFieldError("date", validation.MsgDateFormat, errors.ErrCodeInvalidDate)
	}

	if _, err := validation.ValidateAmount(string(in.Amount)); err != nil {
		return err
	}

	if err := validation.ValidateCategory(in.Category); err != nil {
		return err
	}

	return nil
}

// ToRecord validates the DTO and converts it into a Record.
func (dto CreateExpenseDTO) ToRecord() (Record, error) {
	if err := dto.Validate(); err != nil {
		return Record{}, err
	}
	in := dto.trimmed()
	amount, _ := validation.ValidateAmount(string(in.Amount))
	return NewRecord(in.Date, amount, in.Category, in.Description), nil
}
