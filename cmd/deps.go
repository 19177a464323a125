package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/budget"
	"github.com/frahmantamala/expense-tracker/internal/core/events"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/expense/jsonstore"
	"github.com/frahmantamala/expense-tracker/internal/expense/sqlstore"
	"github.com/frahmantamala/expense-tracker/pkg/logger"
)

// storage is what both expense backends provide.
type storage interface {
	expense.Repository
	Ping(ctx context.Context) error
	Clear(ctx context.Context) error
}

type Dependencies struct {
	Config   *internal.Config
	Logger   *slog.Logger
	Bus      *events.EventBus
	Storage  storage
	Expenses *expense.Service
	Budgets  *budget.Table

	// LoadErr is set when the JSON file could not be read; the store then
	// starts empty.
	LoadErr error

	closeFn func() error
}

// Close waits for in-flight event handlers, then releases the storage.
func (d *Dependencies) Close() error {
	if d.Bus != nil {
		d.Bus.Wait()
	}
	if d.closeFn == nil {
		return nil
	}
	return d.closeFn()
}

// dependencies builds the dependencies on first use and reports a load
// failure once.
func (a *application) dependencies(ctx context.Context) (*Dependencies, error) {
	if a.deps != nil {
		return a.deps, nil
	}

	deps, err := initializeDependencies(ctx, a.cfg, a.status)
	if err != nil {
		return nil, err
	}
	if deps.LoadErr != nil {
		a.reportError(deps.LoadErr)
	}

	a.deps = deps
	return deps, nil
}

func initializeDependencies(ctx context.Context, cfg *internal.Config, status io.Writer) (*Dependencies, error) {
	lg := logger.LoggerWrapper()

	bus := events.NewEventBus(lg)
	subscribeStatus(bus, status, lg)

	// a terminal needs the status line before the prompt comes back;
	// server and seed log it in the background and drain on close
	var publisher events.Publisher = bus
	if status != nil {
		publisher = events.Synchronous(bus)
	}

	opened, err := openStorage(ctx, cfg, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return &Dependencies{
		Config:   cfg,
		Logger:   lg,
		Bus:      bus,
		Storage:  opened.store,
		Expenses: expense.NewService(opened.store, publisher, lg),
		Budgets:  budget.NewTable(publisher, lg),
		LoadErr:  opened.loadErr,
		closeFn:  opened.closeFn,
	}, nil
}

type openedStorage struct {
	store   storage
	loadErr error
	closeFn func() error
}

func openStorage(ctx context.Context, cfg *internal.Config, lg *slog.Logger) (*openedStorage, error) {
	switch cfg.Storage.Driver {
	case internal.StorageDriverSQLite, internal.StorageDriverPostgres:
		db, err := sqlstore.Open(cfg.Storage.Driver, cfg.Storage.Source, strings.EqualFold(cfg.Observability.Logging.Level, "debug"))
		if err != nil {
			return nil, err
		}
		store := sqlstore.NewStore(db)
		// the local sqlite file is migrated on open; postgres goes through `migrate`
		if cfg.Storage.Driver == internal.StorageDriverSQLite {
			if err := sqlstore.Migrate(ctx, db, cfg.Storage.Driver); err != nil {
				_ = store.Close()
				return nil, err
			}
		}
		lg.Debug("sql storage ready", "driver", cfg.Storage.Driver)
		return &openedStorage{store: store, closeFn: store.Close}, nil
	default:
		store, loadErr := jsonstore.Open(cfg.Storage.DataFile, lg)
		return &openedStorage{store: store, loadErr: loadErr}, nil
	}
}

// subscribeStatus prints the status line for each event, or logs it when
// there is no terminal to print to.
func subscribeStatus(bus *events.EventBus, w io.Writer, lg *slog.Logger) {
	handler := func(ctx context.Context, event events.Event) error {
		msg := events.StatusMessage(event)
		if msg == "" {
			return nil
		}
		if w == nil {
			logger.FromOr(ctx, lg).Info("status", "message", msg, "event_id", event.EventID())
			return nil
		}
		_, err := fmt.Fprintln(w, msg)
		return err
	}

	bus.Subscribe(events.EventTypeExpenseAdded, handler)
	bus.Subscribe(events.EventTypeBudgetSet, handler)
}
