// Package ledger writes accepted orders into their partition's append-only
// table: it makes sure the destination exists with the active schema's
// header, then appends exactly one row per order. Rows are never edited or
// reordered after append.
package ledger

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"faral-orders/internal/models"
	"faral-orders/internal/partition"
	"faral-orders/internal/schema"
	"faral-orders/internal/tablestore"
)

type Writer struct {
	store tablestore.Store
	desc  *schema.Descriptor
}

func NewWriter(store tablestore.Store, desc *schema.Descriptor) *Writer {
	return &Writer{store: store, desc: desc}
}

// EnsureTable lazily creates the partition's table. Idempotent; a failure
// here is fatal to the intake, there is nowhere durable to put the order.
func (w *Writer) EnsureTable(ctx context.Context, p partition.ID) error {
	if err := w.store.EnsureTable(ctx, w.desc.TableSpec(p)); err != nil {
		return fmt.Errorf("ensure table %s: %w", p.TableName(), err)
	}
	return nil
}

// AppendOrder records the order as the new last row of its partition's
// table. The column re-fit afterwards is cosmetic: its failure is logged
// and does not affect the recorded row.
func (w *Writer) AppendOrder(ctx context.Context, p partition.ID, o models.Order) error {
	name := p.TableName()
	if err := w.store.AppendRow(ctx, name, w.desc.Row(o)); err != nil {
		return fmt.Errorf("append to %s: %w", name, err)
	}
	if err := w.store.FitColumns(ctx, name); err != nil {
		logrus.WithError(err).WithField("table", name).Warn("column re-fit failed")
	}
	return nil
}

// Rows returns the partition's recorded rows, header excluded.
func (w *Writer) Rows(ctx context.Context, p partition.ID) ([][]string, error) {
	return w.store.ReadBody(ctx, p.TableName())
}
