// Package jsonstore persists the expense table as a single JSON document.
//
// The file holds a JSON array of objects keyed "Date", "Amount", "Category"
// and "Description", indented with four spaces. Every append rewrites the
// whole file.
package jsonstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/expense"
)

const indent = "    "

// Load reads the table stored at path. A missing or blank file yields an empty
// table and no error. Any other failure yields an empty table together with a
// LOAD_FAILED storage error.
func Load(path string) (expense.Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return expense.Table{}, nil
		}
		return expense.Table{}, internal.ErrLoadFailed.WithCause(err)
	}

	if len(bytes.TrimSpace(content)) == 0 {
		return expense.Table{}, nil
	}

	var table expense.Table
	if err := json.Unmarshal(content, &table); err != nil {
		return expense.Table{}, internal.ErrLoadFailed.WithCause(err)
	}
	if table == nil {
		table = expense.Table{}
	}

	return table, nil
}

// Save overwrites path with the full table. The directory is created when
// missing and the file is replaced through a temporary sibling.
func Save(table expense.Table, path string) error {
	if table == nil {
		table = expense.Table{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(table); err != nil {
		return internal.ErrSaveFailed.WithCause(fmt.Errorf("encode data: %w", err))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return internal.ErrSaveFailed.WithCause(fmt.Errorf("create data directory: %w", err))
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o644); err != nil {
		return internal.ErrSaveFailed.WithCause(fmt.Errorf("write temp data file: %w", err))
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return internal.ErrSaveFailed.WithCause(fmt.Errorf("replace data file: %w", err))
	}

	return nil
}

// Store keeps the table in memory and flushes it to disk after each append.
type Store struct {
	mu     sync.Mutex
	path   string
	table  expense.Table
	logger *slog.Logger
}

// Open prepares the data directory and loads path. When loading fails the
// store is still returned, holding an empty table, alongside the load error.
func Open(path string, logger *slog.Logger) (*Store, error) {
	s := &Store{path: path, table: expense.Table{}, logger: logger}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Error("failed to create data directory", "path", path, "error", err)
		return s, internal.ErrLoadFailed.WithCause(fmt.Errorf("create data directory: %w", err))
	}

	table, err := Load(path)
	s.table = table
	if err != nil {
		logger.Error("failed to load expenses, starting empty", "path", path, "error", err)
		return s, err
	}

	logger.Debug("expenses loaded", "path", path, "count", len(table))
	return s, nil
}

func (s *Store) Append(_ context.Context, rec expense.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.table = append(s.table, rec)
	if err := Save(s.table, s.path); err != nil {
		s.logger.Error("failed to save expenses", "path", s.path, "error", err)
		return err
	}
	return nil
}

func (s *Store) All(_ context.Context) (expense.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Clone(), nil
}

// Clear empties the table and the file.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.table = expense.Table{}
	return Save(s.table, s.path)
}

// Ping checks that the data directory is reachable.
func (s *Store) Ping(_ context.Context) error {
	info, err := os.Stat(filepath.Dir(s.path))
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", filepath.Dir(s.path))
	}
	return nil
}
