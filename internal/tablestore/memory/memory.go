package memory

import (
	"context"
	"fmt"
	"sync"

	"faral-orders/internal/tablestore"
)

type table struct {
	spec   tablestore.TableSpec
	rows   [][]string
	widths []int
}

// Store is an in-process tabular store guarded by a single RWMutex. Tests
// run against it, and a single-instance deployment can too.
type Store struct {
	mu     sync.RWMutex
	tables map[string]*table
	order  []string // creation order, for stable snapshots
}

func NewStore() *Store {
	return &Store{tables: make(map[string]*table)}
}

func (s *Store) EnsureTable(_ context.Context, spec tablestore.TableSpec) error {
	if spec.Name == "" {
		return fmt.Errorf("table name is empty")
	}
	if len(spec.Columns) == 0 {
		return fmt.Errorf("table %s: header has no columns", spec.Name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[spec.Name]; ok {
		return nil
	}
	widths := make([]int, len(spec.Columns))
	for i, c := range spec.Columns {
		widths[i] = c.Width
	}
	s.tables[spec.Name] = &table{spec: spec, widths: widths}
	s.order = append(s.order, spec.Name)
	return nil
}

func (s *Store) AppendRow(_ context.Context, name string, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[name]
	if !ok {
		return fmt.Errorf("%s: %w", name, tablestore.ErrTableNotFound)
	}
	if len(row) != len(t.spec.Columns) {
		return fmt.Errorf("%s: got %d cells for %d columns: %w",
			name, len(row), len(t.spec.Columns), tablestore.ErrColumnCount)
	}
	t.rows = append(t.rows, cloneRow(row))
	return nil
}

func (s *Store) RowCount(_ context.Context, name string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[name]
	if !ok {
		return 0, fmt.Errorf("%s: %w", name, tablestore.ErrTableNotFound)
	}
	return len(t.rows), nil
}

func (s *Store) ReadBody(_ context.Context, name string) ([][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, tablestore.ErrTableNotFound)
	}
	return cloneRows(t.rows), nil
}

func (s *Store) RewriteBody(_ context.Context, name string, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[name]
	if !ok {
		return fmt.Errorf("%s: %w", name, tablestore.ErrTableNotFound)
	}
	for _, row := range rows {
		if len(row) != len(t.spec.Columns) {
			return fmt.Errorf("%s: got %d cells for %d columns: %w",
				name, len(row), len(t.spec.Columns), tablestore.ErrColumnCount)
		}
	}
	t.rows = cloneRows(rows)
	return nil
}

func (s *Store) FitColumns(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[name]
	if !ok {
		return fmt.Errorf("%s: %w", name, tablestore.ErrTableNotFound)
	}
	for i, c := range t.spec.Columns {
		w := len(c.Title)
		for _, row := range t.rows {
			if len(row[i]) > w {
				w = len(row[i])
			}
		}
		t.widths[i] = w
	}
	return nil
}

func (s *Store) Tables(_ context.Context) ([]tablestore.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]tablestore.Table, 0, len(s.order))
	for _, name := range s.order {
		t := s.tables[name]
		out = append(out, tablestore.Table{Spec: t.spec, Rows: cloneRows(t.rows)})
	}
	return out, nil
}

// Spec returns the stored creation spec, for assertions on idempotence.
func (s *Store) Spec(name string) (tablestore.TableSpec, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[name]
	if !ok {
		return tablestore.TableSpec{}, false
	}
	return t.spec, true
}

// Widths returns the current column widths, for assertions on FitColumns.
func (s *Store) Widths(name string) ([]int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[name]
	if !ok {
		return nil, false
	}
	out := make([]int, len(t.widths))
	copy(out, t.widths)
	return out, true
}

func cloneRow(row []string) []string {
	out := make([]string, len(row))
	copy(out, row)
	return out
}

func cloneRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = cloneRow(r)
	}
	return out
}

var _ tablestore.Store = (*Store)(nil)
