package tablestore

import (
	"context"
	"errors"
)

var (
	// ErrTableNotFound is returned when a row operation targets a table
	// that was never created.
	ErrTableNotFound = errors.New("table not found")
	// ErrColumnCount is returned when a row does not match the header's
	// column count. Rows and header are a hard compatibility contract.
	ErrColumnCount = errors.New("row does not match header column count")
)

// Column is one header cell. Width 0 means "fit to content".
type Column struct {
	Title string `json:"title"`
	Width int    `json:"width,omitempty"`
}

// HeaderStyle is the presentation applied to the header row on creation.
type HeaderStyle struct {
	Bold       bool   `json:"bold"`
	Background string `json:"background,omitempty"`
	FontColor  string `json:"font_color,omitempty"`
}

// Protection keeps collaborators from deleting rows, columns or the table
// itself. WarningOnly makes it a speed bump rather than a hard block, so
// legitimate corrections stay possible.
type Protection struct {
	Enabled     bool   `json:"enabled"`
	WarningOnly bool   `json:"warning_only"`
	Description string `json:"description,omitempty"`
}

// TableSpec describes a table at creation time: its header (written exactly
// once, before any data row), styling, and protection policy. FrozenHeader
// keeps the header visible above any number of data rows.
type TableSpec struct {
	Name         string      `json:"name"`
	Columns      []Column    `json:"columns"`
	Style        HeaderStyle `json:"style"`
	FrozenHeader bool        `json:"frozen_header"`
	Protection   Protection  `json:"protection"`
}

// Table is a point-in-time snapshot: the creation spec plus every data row.
type Table struct {
	Spec TableSpec  `json:"spec"`
	Rows [][]string `json:"rows"`
}

// Store is the sheet-like tabular backing store. It is externally owned and
// externally synchronized: the pipeline holds no transaction spanning more
// than one call.
type Store interface {
	// EnsureTable creates the table with its header, styling and
	// protection if it does not exist. A second call is a no-op.
	EnsureTable(ctx context.Context, spec TableSpec) error
	// AppendRow appends one row after the current last row. The row must
	// match the header column count exactly.
	AppendRow(ctx context.Context, table string, row []string) error
	RowCount(ctx context.Context, table string) (int, error)
	// ReadBody returns every data row, header excluded.
	ReadBody(ctx context.Context, table string) ([][]string, error)
	// RewriteBody replaces every data row, header untouched.
	RewriteBody(ctx context.Context, table string, rows [][]string) error
	// FitColumns re-fits column widths to content. Cosmetic only.
	FitColumns(ctx context.Context, table string) error
	// Tables returns a snapshot of every table, for backup duplication.
	Tables(ctx context.Context) ([]Table, error)
}
