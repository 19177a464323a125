package budget

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/frahmantamala/expense-tracker/internal/category"
	"github.com/frahmantamala/expense-tracker/internal/core/common/validation"
	"github.com/frahmantamala/expense-tracker/internal/core/events"
	"github.com/frahmantamala/expense-tracker/pkg/logger"
	"github.com/shopspring/decimal"
)

const (
	MsgRequiredFields = "Please fill in both fields."
	MsgBudgetPositive = "Budget must be a positive number."
)

// Budget is an informational spending ceiling for one category.
type Budget struct {
	Category string
	Amount   decimal.Decimal
}

func (b Budget) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Category string      `json:"category"`
		Amount   json.Number `json:"amount"`
	}{
		Category: b.Category,
		Amount:   json.Number(b.Amount.String()),
	})
}

// Table maps category names to budgets for the lifetime of the process.
// Nothing is persisted.
type Table struct {
	mu        sync.RWMutex
	entries   map[string]decimal.Decimal
	publisher events.Publisher
	logger    *slog.Logger
}

// NewTable creates an empty budget table. publisher may be nil.
func NewTable(publisher events.Publisher, logger *slog.Logger) *Table {
	return &Table{
		entries:   make(map[string]decimal.Decimal),
		publisher: publisher,
		logger:    logger,
	}
}

// Set validates the raw form values and stores the budget, replacing any
// earlier value for the same category.
func (t *Table) Set(ctx context.Context, categoryName, amount string) (*Budget, error) {
	categoryName = strings.TrimSpace(categoryName)
	amount = strings.TrimSpace(amount)

	required := validation.NewValidator()
	required.Field("category", categoryName).RequiredWithMessage(MsgRequiredFields)
	required.Field("amount", amount).RequiredWithMessage(MsgRequiredFields)
	if err := required.First(); err != nil {
		return nil, err
	}

	if err := validation.ValidateCategory(categoryName); err != nil {
		logger.FromOr(ctx, t.logger).Warn("budget rejected: unknown category", "category", categoryName)
		return nil, err
	}

	value, err := validation.PositiveAmount("amount", amount, MsgBudgetPositive)
	if err != nil {
		logger.FromOr(ctx, t.logger).Warn("budget rejected: invalid amount", "category", categoryName, "amount", amount)
		return nil, err
	}
	value = decimal.RequireFromString(value.String())

	t.mu.Lock()
	t.entries[categoryName] = value
	t.mu.Unlock()

	logger.FromOr(ctx, t.logger).Info("budget set", "category", categoryName, "amount", value.String())

	if t.publisher != nil {
		if err := t.publisher.Publish(ctx, events.NewBudgetSetEvent(categoryName, value)); err != nil {
			logger.FromOr(ctx, t.logger).Warn("event delivery failed", "event_type", events.EventTypeBudgetSet, "error", err)
		}
	}

	return &Budget{Category: categoryName, Amount: value}, nil
}

func (t *Table) Get(categoryName string) (Budget, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	amount, ok := t.entries[categoryName]
	if !ok {
		return Budget{}, false
	}
	return Budget{Category: categoryName, Amount: amount}, true
}

// List returns the budgets in the fixed category order.
func (t *Table) List() []Budget {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Budget, 0, len(t.entries))
	for name, amount := range t.entries {
		out = append(out, Budget{Category: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		return category.Index(out[i].Category) < category.Index(out[j].Category)
	})
	return out
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

