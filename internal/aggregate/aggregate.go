// Package aggregate maintains the kitchen-prep worklist: one table mapping
// product name to the cumulative quantity ordered across every partition.
// The backing store has no keyed-update primitive cheaper than a full-range
// read/clear/write and the body is bounded by catalog size, so every merge
// rewrites the whole body rather than updating in place.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"faral-orders/internal/tablestore"
)

// TableName is the single cross-partition worklist table.
const TableName = "kitchen_prep"

var worklistSpec = tablestore.TableSpec{
	Name: TableName,
	Columns: []tablestore.Column{
		{Title: "Product Name", Width: 400},
		{Title: "Total Quantity", Width: 150},
	},
	Style: tablestore.HeaderStyle{
		Bold:       true,
		Background: "#d4af37",
		FontColor:  "#ffffff",
	},
	FrozenHeader: true,
}

// Strategy decides how concurrent merges are serialized. The read-merge-
// write cycle runs inside Do.
type Strategy interface {
	Do(fn func() error) error
}

// Unserialized runs the merge as-is. Two concurrent merges can both read
// the pre-update body and overwrite each other's contribution; order volume
// is low and the worklist can be recomputed from the ledgers, so undercount
// is an accepted degradation here, not a crash.
type Unserialized struct{}

func (Unserialized) Do(fn func() error) error { return fn() }

// Locked serializes merges through an in-process mutex. Only sound for a
// single service instance; stricter than the stock behavior.
type Locked struct {
	mu sync.Mutex
}

func (l *Locked) Do(fn func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn()
}

type Engine struct {
	store tablestore.Store
	strat Strategy
}

func NewEngine(store tablestore.Store, strat Strategy) *Engine {
	if strat == nil {
		strat = Unserialized{}
	}
	return &Engine{store: store, strat: strat}
}

// MergeOrder folds an accepted order's quantities into the running totals
// and rewrites the worklist body sorted by product name. Totals only ever
// grow; there is no cancellation path.
func (e *Engine) MergeOrder(ctx context.Context, products map[string]int) error {
	return e.strat.Do(func() error {
		if err := e.store.EnsureTable(ctx, worklistSpec); err != nil {
			return fmt.Errorf("ensure %s: %w", TableName, err)
		}
		body, err := e.store.ReadBody(ctx, TableName)
		if err != nil {
			return fmt.Errorf("read %s: %w", TableName, err)
		}
		totals := parseBody(body)
		for name, qty := range products {
			if qty > 0 {
				totals[name] += qty
			}
		}
		if err := e.store.RewriteBody(ctx, TableName, renderBody(totals)); err != nil {
			return fmt.Errorf("rewrite %s: %w", TableName, err)
		}
		return nil
	})
}

// Totals reads the current worklist. Missing table means nothing has been
// merged yet; that is an empty worklist, not an error.
func (e *Engine) Totals(ctx context.Context) (map[string]int, error) {
	body, err := e.store.ReadBody(ctx, TableName)
	if err != nil {
		if errors.Is(err, tablestore.ErrTableNotFound) {
			return map[string]int{}, nil
		}
		return nil, err
	}
	return parseBody(body), nil
}

func parseBody(body [][]string) map[string]int {
	totals := make(map[string]int, len(body))
	for _, row := range body {
		if len(row) < 2 || row[0] == "" {
			continue
		}
		n, err := strconv.Atoi(row[1])
		if err != nil {
			n = 0 // a hand-edited cell never poisons the merge
		}
		totals[row[0]] = n
	}
	return totals
}

func renderBody(totals map[string]int) [][]string {
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, strconv.Itoa(totals[name])})
	}
	return rows
}
