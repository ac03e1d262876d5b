// Provides the table and row store backed by a single JSON document.

// Package storage owns the database and its persistence.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/maruel/tabdb/internal/jsonldb"
	"github.com/maruel/tabdb/internal/storage/history"
	"github.com/maruel/tabdb/internal/tabular"
)

// TableService manages tables and their rows.
//
// Every mutation holds the write lock across validate, mutate, save and the
// optional history commit. Reads return deep copies.
type TableService struct {
	mu      sync.RWMutex
	db      *tabular.Database
	doc     *jsonldb.Document[tabular.Database]
	history *history.Repo
	relPath string
}

// NewTableService loads the database at path, or starts an empty one when the
// file does not exist yet.
//
// When hist is not nil, path must be inside the repository and every
// successful mutation is committed to it.
func NewTableService(path string, hist *history.Repo) (*TableService, error) {
	doc, err := jsonldb.NewDocument[tabular.Database](path)
	if err != nil {
		return nil, err
	}
	db := &tabular.Database{}
	found, err := doc.Load(db)
	if err != nil {
		return nil, err
	}
	if !found {
		db = tabular.NewDatabase()
	} else {
		if db.Tables == nil {
			db.Tables = []*tabular.Table{}
		}
		for _, t := range db.Tables {
			if t != nil && t.Rows == nil {
				t.Rows = []tabular.Row{}
			}
		}
		if err := db.Validate(); err != nil {
			return nil, fmt.Errorf("invalid database %s: %w", path, err)
		}
	}
	s := &TableService{db: db, doc: doc, history: hist}
	if hist != nil {
		if s.relPath, err = hist.Rel(path); err != nil {
			return nil, fmt.Errorf("history: %w", err)
		}
	}
	slog.Info("Loaded database", "path", path, "tables", len(db.Tables), "existing", found)
	return s, nil
}

// Path returns the database file path.
func (s *TableService) Path() string {
	return s.doc.Path()
}

// ListTables returns every table in creation order.
func (s *TableService) ListTables() []*tabular.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*tabular.Table, len(s.db.Tables))
	for i, t := range s.db.Tables {
		out[i] = t.Clone()
	}
	return out
}

// GetTable returns the table matching name case-insensitively.
func (s *TableService) GetTable(name string) (*tabular.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, t := s.db.Find(name)
	if t == nil {
		return nil, tabular.TableNotFound(name)
	}
	return t.Clone(), nil
}

// Schema returns the JSON Schema a row of the table must satisfy.
func (s *TableService) Schema(name string) (*jsonschema.Schema, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, t := s.db.Find(name)
	if t == nil {
		return nil, tabular.TableNotFound(name)
	}
	return tabular.JSONSchema(t), nil
}

// CreateTable adds a new table with the given columns and initial rows.
func (s *TableService) CreateTable(ctx context.Context, name string, columns []tabular.Column, rows []map[string]any) (*tabular.Table, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, tabular.InvalidSchema("", "table name is required")
	}
	if err := tabular.ValidateColumns(columns); err != nil {
		return nil, withTable(err, name, -1)
	}
	t := &tabular.Table{
		Name:    name,
		Columns: append([]tabular.Column{}, columns...),
		Rows:    make([]tabular.Row, 0, len(rows)),
	}
	for i, raw := range rows {
		row, err := tabular.ValidateRow(columns, raw)
		if err != nil {
			return nil, withTable(err, name, i)
		}
		t.Rows = append(t.Rows, row)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, existing := s.db.Find(name); existing != nil {
		return nil, tabular.DuplicateName(name)
	}
	s.db.Tables = append(s.db.Tables, t)
	if err := s.persist(ctx, "create table "+name, func() { s.db.Tables = s.db.Tables[:len(s.db.Tables)-1] }); err != nil {
		return nil, err
	}
	return t.Clone(), nil
}

// DeleteTable removes the table matching name.
func (s *TableService) DeleteTable(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, t := s.db.Find(name)
	if t == nil {
		return tabular.TableNotFound(name)
	}
	prev := s.db.Tables
	s.db.Tables = append(append(make([]*tabular.Table, 0, len(prev)-1), prev[:i]...), prev[i+1:]...)
	return s.persist(ctx, "delete table "+t.Name, func() { s.db.Tables = prev })
}

// ListRows returns the rows of a table in insertion order.
func (s *TableService) ListRows(name string) ([]tabular.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, t := s.db.Find(name)
	if t == nil {
		return nil, tabular.TableNotFound(name)
	}
	out := make([]tabular.Row, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Clone()
	}
	return out, nil
}

// AddRow validates raw and appends it to the table. It returns the new row's
// index.
func (s *TableService) AddRow(ctx context.Context, name string, raw map[string]any) (int, tabular.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, t := s.db.Find(name)
	if t == nil {
		return -1, nil, tabular.TableNotFound(name)
	}
	row, err := tabular.ValidateRow(t.Columns, raw)
	if err != nil {
		return -1, nil, withTable(err, t.Name, -1)
	}
	t.Rows = append(t.Rows, row)
	index := len(t.Rows) - 1
	if err := s.persist(ctx, "add row to "+t.Name, func() { t.Rows = t.Rows[:index] }); err != nil {
		return -1, nil, err
	}
	return index, row.Clone(), nil
}

// UpdateRow validates raw and replaces the row at index.
func (s *TableService) UpdateRow(ctx context.Context, name string, index int, raw map[string]any) (tabular.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, t := s.db.Find(name)
	if t == nil {
		return nil, tabular.TableNotFound(name)
	}
	if index < 0 || index >= len(t.Rows) {
		return nil, tabular.RowNotFound(t.Name, index)
	}
	row, err := tabular.ValidateRow(t.Columns, raw)
	if err != nil {
		return nil, withTable(err, t.Name, index)
	}
	prev := t.Rows[index]
	t.Rows[index] = row
	if err := s.persist(ctx, fmt.Sprintf("update row %d of %s", index, t.Name), func() { t.Rows[index] = prev }); err != nil {
		return nil, err
	}
	return row.Clone(), nil
}

// DeleteRow removes the row at index. Later rows shift down by one.
func (s *TableService) DeleteRow(ctx context.Context, name string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, t := s.db.Find(name)
	if t == nil {
		return tabular.TableNotFound(name)
	}
	if index < 0 || index >= len(t.Rows) {
		return tabular.RowNotFound(t.Name, index)
	}
	prev := t.Rows
	t.Rows = append(append(make([]tabular.Row, 0, len(prev)-1), prev[:index]...), prev[index+1:]...)
	return s.persist(ctx, fmt.Sprintf("delete row %d of %s", index, t.Name), func() { t.Rows = prev })
}

// Difference stores and returns a new table named result holding the rows of
// left absent from right.
func (s *TableService) Difference(ctx context.Context, left, right, result string) (*tabular.Table, error) {
	result = strings.TrimSpace(result)
	if result == "" {
		return nil, tabular.InvalidSchema("", "result table name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, l := s.db.Find(left)
	if l == nil {
		return nil, tabular.TableNotFound(left)
	}
	_, r := s.db.Find(right)
	if r == nil {
		return nil, tabular.TableNotFound(right)
	}
	if _, existing := s.db.Find(result); existing != nil {
		return nil, tabular.DuplicateName(result)
	}
	t, err := tabular.Difference(l, r, result)
	if err != nil {
		return nil, err
	}
	s.db.Tables = append(s.db.Tables, t)
	msg := fmt.Sprintf("difference %s - %s into %s", l.Name, r.Name, result)
	if err := s.persist(ctx, msg, func() { s.db.Tables = s.db.Tables[:len(s.db.Tables)-1] }); err != nil {
		return nil, err
	}
	return t.Clone(), nil
}

// HistoryEnabled reports whether mutations are recorded in git.
func (s *TableService) HistoryEnabled() bool {
	return s.history != nil
}

// History returns up to n recent commits of the database file. It returns
// nil when the audit trail is disabled.
func (s *TableService) History(ctx context.Context, n int) ([]*history.Commit, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Log(ctx, s.relPath, n)
}

// persist saves the database, calling undo to revert the in-memory mutation
// when the write fails. Must be called with the write lock held.
func (s *TableService) persist(ctx context.Context, msg string, undo func()) error {
	if err := s.doc.Save(s.db); err != nil {
		undo()
		slog.ErrorContext(ctx, "Failed to save database", "op", msg, "err", err)
		return tabular.IOError(err)
	}
	slog.DebugContext(ctx, "Saved database", "op", msg)
	if s.history != nil {
		if err := s.history.Commit(ctx, msg, s.relPath); err != nil {
			slog.WarnContext(ctx, "Failed to record history", "op", msg, "err", err)
		}
	}
	return nil
}

// withTable attaches the table name and row index to a validation error.
func withTable(err error, table string, index int) error {
	var e *tabular.Error
	if errors.As(err, &e) {
		c := *e
		c.Table = table
		c.Index = index
		return &c
	}
	return err
}
