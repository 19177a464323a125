// Package sqlstore is the gorm-backed record store used when storage.driver is
// sqlite or postgres.
package sqlstore

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/frahmantamala/expense-tracker/internal"
	expenseDatamodel "github.com/frahmantamala/expense-tracker/internal/core/datamodel/expense"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//go:embed migrations
var migrations embed.FS

const migrationsTable = "schema_migrations"

// Open connects to the database for driver ("sqlite" or "postgres").
func Open(driver, source string, debug bool) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if debug {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var dialector gorm.Dialector
	switch driver {
	case internal.StorageDriverSQLite:
		if source != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(source), 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		dialector = sqlite.Open(source)
	case internal.StorageDriverPostgres:
		dialector = postgres.Open(source)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if driver == internal.StorageDriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// a single writer keeps sqlite free of "database is locked"
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func dialect(driver string) (string, error) {
	switch driver {
	case internal.StorageDriverSQLite:
		return "sqlite3", nil
	case internal.StorageDriverPostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("unsupported sql driver %q", driver)
	}
}

func prepareGoose(driver string) (string, error) {
	d, err := dialect(driver)
	if err != nil {
		return "", err
	}
	goose.SetBaseFS(migrations)
	goose.SetTableName(migrationsTable)
	if err := goose.SetDialect(d); err != nil {
		return "", fmt.Errorf("goose dialect: %w", err)
	}
	return "migrations/" + d, nil
}

// Migrate applies the embedded migrations for driver.
func Migrate(ctx context.Context, db *gorm.DB, driver string) error {
	dir, err := prepareGoose(driver)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := goose.UpContext(ctx, sqlDB, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Rollback reverts the latest applied migration.
func Rollback(ctx context.Context, db *gorm.DB, driver string) error {
	dir, err := prepareGoose(driver)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := goose.DownContext(ctx, sqlDB, dir); err != nil {
		return fmt.Errorf("goose down: %w", err)
	}
	return nil
}

// MigrationVersion reports the current schema version.
func MigrationVersion(ctx context.Context, db *gorm.DB, driver string) (int64, error) {
	if _, err := prepareGoose(driver); err != nil {
		return 0, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, sqlDB)
}

// Store implements expense.Repository on top of gorm.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Append(ctx context.Context, rec expense.Record) error {
	row := ToDataModel(rec)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return internal.ErrSaveFailed.WithCause(err)
	}
	return nil
}

func (s *Store) All(ctx context.Context) (expense.Table, error) {
	var rows []*expenseDatamodel.Expense
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, internal.ErrLoadFailed.WithCause(err)
	}

	table := make(expense.Table, 0, len(rows))
	for _, row := range rows {
		table = append(table, FromDataModel(row))
	}
	return table, nil
}

func (s *Store) Clear(ctx context.Context) error {
	err := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&expenseDatamodel.Expense{}).Error
	if err != nil {
		return internal.ErrSaveFailed.WithCause(err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ToDataModel(rec expense.Record) *expenseDatamodel.Expense {
	return &expenseDatamodel.Expense{
		Date:        rec.Date,
		Amount:      rec.Amount,
		Category:    rec.Category,
		Description: rec.Description,
	}
}

func FromDataModel(row *expenseDatamodel.Expense) expense.Record {
	return expense.NewRecord(row.Date, row.Amount, row.Category, row.Description)
}
