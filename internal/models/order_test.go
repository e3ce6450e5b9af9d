package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"faral-orders/internal/models"
)

func TestFee_Unmarshal(t *testing.T) {
	var o models.Order

	require.NoError(t, json.Unmarshal([]byte(`{"deliveryFee": 80}`), &o))
	require.Equal(t, "80", o.DeliveryFee.Display())

	require.NoError(t, json.Unmarshal([]byte(`{"deliveryFee": "₹80"}`), &o))
	require.Equal(t, "₹80", o.DeliveryFee.Display())

	require.NoError(t, json.Unmarshal([]byte(`{"deliveryFee": null}`), &o))
	require.Equal(t, models.FeePending, o.DeliveryFee.Display())

	o = models.Order{}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &o))
	require.False(t, o.DeliveryFee.Set())
	require.Equal(t, models.FeePending, o.DeliveryFee.Display())

	require.Error(t, json.Unmarshal([]byte(`{"deliveryFee": [1]}`), &o))
}

func TestFee_ExplicitZeroIsFreeDelivery(t *testing.T) {
	var o models.Order
	require.NoError(t, json.Unmarshal([]byte(`{"deliveryFee": 0}`), &o))
	require.True(t, o.DeliveryFee.Set())
	require.Equal(t, models.FeeFree, o.DeliveryFee.Display())
}

func TestProductLines_SkipsZeroAndSorts(t *testing.T) {
	o := models.Order{Products: map[string]int{"A": 2, "B": 0, "C": 1}}
	require.Equal(t, "A: 2\nC: 1", o.ProductLines())
}

func TestProductLines_Empty(t *testing.T) {
	o := models.Order{Products: map[string]int{"A": 0}}
	require.Equal(t, "", o.ProductLines())
}

func TestCustomerEmail(t *testing.T) {
	o := models.Order{Contact: "9990001111/user@example.com"}
	addr, ok := o.CustomerEmail()
	require.True(t, ok)
	require.Equal(t, "user@example.com", addr)

	o = models.Order{Contact: "9990001111"}
	_, ok = o.CustomerEmail()
	require.False(t, ok)

	o = models.Order{Contact: "9990001111/not-an-email"}
	_, ok = o.CustomerEmail()
	require.False(t, ok)

	o = models.Order{Contact: " user@example.com /9990001111"}
	addr, ok = o.CustomerEmail()
	require.True(t, ok)
	require.Equal(t, "user@example.com", addr)
}

func TestNormalize_Defaults(t *testing.T) {
	o := models.Order{}
	o.Normalize()
	require.False(t, o.Timestamp.IsZero())
	require.Equal(t, models.PaymentConfirmed, o.PaymentStatus)
	require.Equal(t, 0, o.TotalBoxes)
	require.Equal(t, float64(0), o.GrandTotal)

	ts := time.Date(2025, 10, 5, 9, 30, 0, 0, time.UTC)
	o = models.Order{Timestamp: ts, PaymentStatus: "Refunded"}
	o.Normalize()
	require.Equal(t, ts, o.Timestamp)
	require.Equal(t, "Refunded", o.PaymentStatus)
}
