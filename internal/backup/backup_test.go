package backup

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"faral-orders/internal/tablestore"
	"faral-orders/internal/tablestore/memory"
)

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	spec := tablestore.TableSpec{
		Name:    "local_orders",
		Columns: []tablestore.Column{{Title: "Name"}, {Title: "Total"}},
	}
	require.NoError(t, s.EnsureTable(ctx, spec))
	require.NoError(t, s.AppendRow(ctx, "local_orders", []string{"Asha", "540"}))
	return s
}

func TestRunOnce_WritesDatedSnapshot(t *testing.T) {
	dir := t.TempDir()
	j := NewJob(seededStore(t), NewDirArchiver(dir))
	j.now = func() time.Time { return time.Date(2025, 10, 5, 2, 0, 0, 0, time.UTC) }

	require.NoError(t, j.RunOnce(context.Background()))

	raw, err := os.ReadFile(filepath.Join(dir, "orders-backup-20251005-020000.json"))
	require.NoError(t, err)

	var tables []tablestore.Table
	require.NoError(t, json.Unmarshal(raw, &tables))
	require.Len(t, tables, 1)
	require.Equal(t, "local_orders", tables[0].Spec.Name)
	require.Equal(t, [][]string{{"Asha", "540"}}, tables[0].Rows)
}

func TestRunOnce_EmptyStoreStillArchives(t *testing.T) {
	dir := t.TempDir()
	j := NewJob(memory.NewStore(), NewDirArchiver(dir))
	j.now = func() time.Time { return time.Date(2025, 10, 5, 2, 0, 0, 0, time.UTC) }

	require.NoError(t, j.RunOnce(context.Background()))
	_, err := os.Stat(filepath.Join(dir, "orders-backup-20251005-020000.json"))
	require.NoError(t, err)
}

func TestStart_RejectsOutOfRangeHour(t *testing.T) {
	j := NewJob(memory.NewStore(), NewDirArchiver(t.TempDir()))
	require.Error(t, j.Start(-1))
	require.Error(t, j.Start(24))
}

func TestStartStop(t *testing.T) {
	j := NewJob(seededStore(t), NewDirArchiver(t.TempDir()))
	require.NoError(t, j.Start(2))
	j.Stop()
}
