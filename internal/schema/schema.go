package schema

import (
	"fmt"
	"strconv"

	"faral-orders/internal/catalog"
	"faral-orders/internal/models"
	"faral-orders/internal/partition"
	"faral-orders/internal/tablestore"
)

// Variant selects which ledger header is active. Both have shipped; the
// choice is configuration, never a code branch at call sites.
type Variant string

const (
	// VariantFreeText summarizes non-zero line items in one
	// "Products Ordered" column, "name: quantity" per line.
	VariantFreeText Variant = "freetext"
	// VariantFixed carries one column per catalog product, zero-filled,
	// so downstream reporting can sum columns directly.
	VariantFixed Variant = "fixed"
)

// TimeLayout is the table's date representation for the timestamp column.
const TimeLayout = "2006-01-02 15:04:05"

// Ledger header presentation, applied once at table creation.
var ledgerStyle = tablestore.HeaderStyle{
	Bold:       true,
	Background: "#8e24aa",
	FontColor:  "#ffffff",
}

var ledgerProtection = tablestore.Protection{
	Enabled:     true,
	WarningOnly: true,
	Description: "Order data - Protected from deletion",
}

var leadColumns = []string{
	"Timestamp",
	"Order Type",
	"Name",
	"Contact Number",
	"Shipping Address",
	"Country",
	"Dispatch Date",
}

var totalColumns = []string{
	"Total Boxes",
	"Total Weight (kg)",
	"Subtotal (₹)",
	"Delivery Fee",
	"Grand Total (₹)",
	"Payment Status",
}

// Descriptor is the authoritative schema for every ledger table: header
// text, order and count, plus the defaulting rules a row is built with.
// Whatever it emits as header, its Row output matches cell for cell.
type Descriptor struct {
	variant  Variant
	columns  []tablestore.Column
	products []string // fixed variant only
}

func ForVariant(v Variant) (*Descriptor, error) {
	switch v {
	case VariantFreeText:
		titles := append(append([]string{}, leadColumns...), "Products Ordered")
		titles = append(titles, totalColumns...)
		return &Descriptor{variant: v, columns: asColumns(titles)}, nil
	case VariantFixed:
		products := catalog.Names()
		titles := append([]string{}, leadColumns...)
		titles = append(titles, products...)
		titles = append(titles, totalColumns...)
		return &Descriptor{variant: v, columns: asColumns(titles), products: products}, nil
	}
	return nil, fmt.Errorf("unknown schema variant %q", v)
}

func (d *Descriptor) Variant() Variant { return d.variant }

// TableSpec is the creation spec for a partition's ledger table.
func (d *Descriptor) TableSpec(p partition.ID) tablestore.TableSpec {
	cols := make([]tablestore.Column, len(d.columns))
	copy(cols, d.columns)
	return tablestore.TableSpec{
		Name:         p.TableName(),
		Columns:      cols,
		Style:        ledgerStyle,
		FrozenHeader: true,
		Protection:   ledgerProtection,
	}
}

// Row builds the ledger row for a normalized order. Length always equals
// the header length; defaults are the ones the order model resolved.
func (d *Descriptor) Row(o models.Order) []string {
	row := []string{
		o.Timestamp.Format(TimeLayout),
		o.OrderType,
		o.Name,
		o.Contact,
		o.Address,
		o.Country,
		o.DispatchDate,
	}
	switch d.variant {
	case VariantFreeText:
		row = append(row, o.ProductLines())
	case VariantFixed:
		for _, name := range d.products {
			row = append(row, strconv.Itoa(o.Products[name]))
		}
	}
	return append(row,
		strconv.Itoa(o.TotalBoxes),
		formatFloat(o.TotalWeightKg),
		formatFloat(o.Subtotal),
		o.DeliveryFee.Display(),
		formatFloat(o.GrandTotal),
		o.PaymentStatus,
	)
}

func asColumns(titles []string) []tablestore.Column {
	cols := make([]tablestore.Column, len(titles))
	for i, t := range titles {
		cols[i] = tablestore.Column{Title: t}
	}
	return cols
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
