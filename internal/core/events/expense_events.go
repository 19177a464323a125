package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventTypeExpenseAdded = "expense.added"
	EventTypeBudgetSet    = "budget.set"
)

type ExpenseAddedEvent struct {
	BaseEvent
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Persisted   bool            `json:"persisted"`
}

func NewExpenseAddedEvent(date string, amount decimal.Decimal, category, description string, persisted bool) *ExpenseAddedEvent {
	return &ExpenseAddedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeExpenseAdded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"date":        date,
				"amount":      amount.String(),
				"category":    category,
				"description": description,
				"persisted":   persisted,
			},
		},
		Date:        date,
		Amount:      amount,
		Category:    category,
		Description: description,
		Persisted:   persisted,
	}
}

type BudgetSetEvent struct {
	BaseEvent
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

func NewBudgetSetEvent(category string, amount decimal.Decimal) *BudgetSetEvent {
	return &BudgetSetEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeBudgetSet,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"category": category,
				"amount":   amount.String(),
			},
		},
		Category: category,
		Amount:   amount,
	}
}

// StatusMessage renders the one-line status shown after an action, or "" for
// events that have none.
func StatusMessage(event Event) string {
	switch e := event.(type) {
	case *ExpenseAddedEvent:
		return fmt.Sprintf("Added expense: %s - $%s on %s", e.Category, e.Amount.StringFixed(2), e.Date)
	case *BudgetSetEvent:
		return fmt.Sprintf("Budget for %s set to $%s.", e.Category, e.Amount.StringFixed(2))
	default:
		return ""
	}
}
