package expense

import (
	"context"
	"log/slog"

	errors "github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/core/events"
	"github.com/frahmantamala/expense-tracker/pkg/logger"
)

// Repository is the persistence port for the record store.
type Repository interface {
	// Append adds rec at the end of the table. A storage error means the
	// record may exist only in memory.
	Append(ctx context.Context, rec Record) error
	All(ctx context.Context) (Table, error)
}

// Service handles expense business logic
type Service struct {
	repo      Repository
	publisher events.Publisher
	logger    *slog.Logger
}

// NewService creates a new expense service. publisher may be nil.
func NewService(repo Repository, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// AddExpense validates dto and appends the record. Input errors leave the
// table untouched. When only the save fails, the record is returned together
// with the storage error.
func (s *Service) AddExpense(ctx context.Context, dto CreateExpenseDTO) (*Record, error) {
	rec, err := dto.ToRecord()
	if err != nil {
		s.log(ctx).Warn("expense validation failed", "error", err)
		return nil, err
	}

	appendErr := s.repo.Append(ctx, rec)
	if appendErr != nil && !errors.IsStorageError(appendErr) {
		s.log(ctx).Error("failed to add expense", "error", appendErr)
		return nil, appendErr
	}
	if appendErr != nil {
		s.log(ctx).Error("expense kept in memory only, save failed",
			"error", appendErr,
			"date", rec.Date,
			"category", rec.Category)
	}

	s.publish(ctx, events.NewExpenseAddedEvent(rec.Date, rec.Amount, rec.Category, rec.Description, appendErr == nil))

	s.log(ctx).Info("expense added",
		"date", rec.Date,
		"amount", rec.Amount.String(),
		"category", rec.Category)

	return &rec, appendErr
}

func (s *Service) ListExpenses(ctx context.Context) (Table, error) {
	table, err := s.repo.All(ctx)
	if err != nil {
		s.log(ctx).Error("failed to list expenses", "error", err)
		return nil, err
	}
	return table, nil
}

// Summary returns per-category totals, largest first.
func (s *Service) Summary(ctx context.Context) ([]CategoryTotal, error) {
	table, err := s.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(table), nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log(ctx).Warn("event delivery failed", "event_type", event.EventType(), "error", err)
	}
}

// log prefers the request-scoped logger so entries carry its fields.
func (s *Service) log(ctx context.Context) *slog.Logger {
	return logger.FromOr(ctx, s.logger)
}
