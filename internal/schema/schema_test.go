package schema_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"faral-orders/internal/catalog"
	"faral-orders/internal/models"
	"faral-orders/internal/partition"
	"faral-orders/internal/schema"
)

func sampleOrder() models.Order {
	o := models.Order{
		Timestamp:    time.Date(2025, 10, 5, 9, 30, 0, 0, time.UTC),
		OrderType:    "local",
		Name:         "Asha Kulkarni",
		Contact:      "9881000000/asha@example.com",
		Address:      "12 Tilak Road, Pune",
		Country:      "India",
		DispatchDate: "13/10/2025",
		Products: map[string]int{
			"Bhajani Chakali (200gm)": 2,
			"Besan Ladoo (200gm)":     0,
			"Chivda (500gm)":          1,
		},
		TotalBoxes:    3,
		TotalWeightKg: 0.9,
		Subtotal:      540,
		GrandTotal:    540,
	}
	o.Normalize()
	return o
}

func TestForVariant_Unknown(t *testing.T) {
	_, err := schema.ForVariant("legacy")
	require.Error(t, err)
}

func TestFreeText_RowMatchesHeader(t *testing.T) {
	d, err := schema.ForVariant(schema.VariantFreeText)
	require.NoError(t, err)

	spec := d.TableSpec(partition.Local)
	require.Equal(t, "local_orders", spec.Name)
	require.Len(t, spec.Columns, 14)
	require.Equal(t, "Products Ordered", spec.Columns[7].Title)
	require.True(t, spec.FrozenHeader)
	require.True(t, spec.Protection.Enabled)
	require.True(t, spec.Protection.WarningOnly)
	require.True(t, spec.Style.Bold)

	row := d.Row(sampleOrder())
	require.Len(t, row, len(spec.Columns))
	require.Equal(t, "Bhajani Chakali (200gm): 2\nChivda (500gm): 1", row[7])
	require.Equal(t, "2025-10-05 09:30:00", row[0])
	require.Equal(t, models.FeePending, row[11])
	require.Equal(t, models.PaymentConfirmed, row[13])
}

func TestFixed_RowMatchesHeader_ZeroFilled(t *testing.T) {
	d, err := schema.ForVariant(schema.VariantFixed)
	require.NoError(t, err)

	spec := d.TableSpec(partition.Remote)
	require.Len(t, spec.Columns, 7+catalog.Len()+6)

	row := d.Row(sampleOrder())
	require.Len(t, row, len(spec.Columns))

	// Every catalog product occupies its own column, zero-filled.
	cells := map[string]string{}
	for i, col := range spec.Columns {
		cells[col.Title] = row[i]
	}
	require.Equal(t, "2", cells["Bhajani Chakali (200gm)"])
	require.Equal(t, "1", cells["Chivda (500gm)"])
	require.Equal(t, "0", cells["Besan Ladoo (200gm)"])
	require.Equal(t, "0", cells["Karanji (6 pcs)"])
}

func TestRow_DefaultedTotals(t *testing.T) {
	d, err := schema.ForVariant(schema.VariantFreeText)
	require.NoError(t, err)

	o := models.Order{
		Timestamp: time.Date(2025, 10, 5, 9, 30, 0, 0, time.UTC),
		OrderType: "remote",
		Name:      "X",
		Contact:   "1",
		Products:  map[string]int{"Chivda (200gm)": 1},
	}
	o.Normalize()

	row := d.Row(o)
	require.Equal(t, "0", row[8])                   // boxes
	require.Equal(t, "0", row[9])                   // weight
	require.Equal(t, "0", row[10])                  // subtotal
	require.Equal(t, models.FeePending, row[11])    // fee placeholder, never 0
	require.Equal(t, "0", row[12])                  // grand total
	require.Equal(t, models.PaymentConfirmed, row[13])
}

func TestRow_ExplicitFreeDelivery(t *testing.T) {
	d, err := schema.ForVariant(schema.VariantFreeText)
	require.NoError(t, err)

	o := sampleOrder()
	o.DeliveryFee = models.FeeAmount(0)
	row := d.Row(o)
	require.Equal(t, models.FeeFree, row[11])
}
