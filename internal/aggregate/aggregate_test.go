package aggregate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"faral-orders/internal/aggregate"
	"faral-orders/internal/tablestore"
	"faral-orders/internal/tablestore/memory"
)

func TestMergeOrder_SequentialSums(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	e := aggregate.NewEngine(store, nil)

	orders := []map[string]int{
		{"Chakali": 2, "Ladoo": 1},
		{"Chakali": 3},
		{"Ladoo": 4, "Chivda": 0},
	}
	for _, o := range orders {
		require.NoError(t, e.MergeOrder(ctx, o))
	}

	totals, err := e.Totals(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"Chakali": 5, "Ladoo": 5}, totals)
	require.NotContains(t, totals, "Chivda", "never-ordered products stay absent")
}

func TestMergeOrder_BodyIsSorted(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	e := aggregate.NewEngine(store, nil)

	require.NoError(t, e.MergeOrder(ctx, map[string]int{"zebra": 1, "apple": 2, "mango": 3}))
	body, err := store.ReadBody(ctx, aggregate.TableName)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"apple", "2"}, {"mango", "3"}, {"zebra", "1"}}, body)

	require.NoError(t, e.MergeOrder(ctx, map[string]int{"banana": 1}))
	body, err = store.ReadBody(ctx, aggregate.TableName)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"apple", "2"}, {"banana", "1"}, {"mango", "3"}, {"zebra", "1"}}, body)
}

func TestTotals_EmptyBeforeFirstMerge(t *testing.T) {
	e := aggregate.NewEngine(memory.NewStore(), nil)
	totals, err := e.Totals(context.Background())
	require.NoError(t, err)
	require.Empty(t, totals)
}

func TestMergeOrder_HandEditedCellParsesAsZero(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	e := aggregate.NewEngine(store, nil)

	require.NoError(t, e.MergeOrder(ctx, map[string]int{"Chakali": 2}))
	require.NoError(t, store.RewriteBody(ctx, aggregate.TableName, [][]string{{"Chakali", "lots"}}))

	require.NoError(t, e.MergeOrder(ctx, map[string]int{"Chakali": 3}))
	totals, err := e.Totals(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, totals["Chakali"])
}

// staleReadStore returns a captured pre-update body for the next N reads,
// reproducing two merges that both read before either writes.
type staleReadStore struct {
	tablestore.Store
	stale     [][]string
	staleLeft int
}

func (s *staleReadStore) ReadBody(ctx context.Context, table string) ([][]string, error) {
	if s.staleLeft > 0 {
		s.staleLeft--
		return s.stale, nil
	}
	return s.Store.ReadBody(ctx, table)
}

func TestMergeOrder_ConcurrentOverlapLastWriterWins(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewStore()

	// Both merges observe the empty pre-update worklist.
	store := &staleReadStore{Store: inner, stale: [][]string{}, staleLeft: 2}
	e := aggregate.NewEngine(store, nil)

	require.NoError(t, e.MergeOrder(ctx, map[string]int{"A": 3}))
	require.NoError(t, e.MergeOrder(ctx, map[string]int{"A": 5}))

	totals, err := e.Totals(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, totals["A"], "overlapping merges degrade to last-writer-wins, not a crash")
}

func TestMergeOrder_LockedStrategySerializes(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	e := aggregate.NewEngine(store, &aggregate.Locked{})

	done := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() { done <- e.MergeOrder(ctx, map[string]int{"A": 1}) }()
	}
	for i := 0; i < 10; i++ {
		require.NoError(t, <-done)
	}

	totals, err := e.Totals(ctx)
	require.NoError(t, err)
	require.Equal(t, 10, totals["A"])
}
