package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"

	"faral-orders/internal/catalog"
	"faral-orders/internal/models"
)

func fakeOrder(f *gofakeit.Faker) models.Order {
	products := map[string]int{}
	names := catalog.Names()
	for i := 0; i < f.Number(1, 4); i++ {
		products[names[f.Number(0, len(names)-1)]] = f.Number(1, 6)
	}
	classes := []string{"local", "remote", "international"}
	return models.Order{
		OrderType:     classes[f.Number(0, 2)],
		Name:          f.Name(),
		Contact:       fmt.Sprintf("%s/%s", f.Phone(), f.Email()),
		Address:       f.Address().Address,
		Country:       f.Country(),
		DispatchDate:  "13/10/2025",
		Products:      products,
		TotalBoxes:    f.Number(1, 10),
		TotalWeightKg: f.Float64Range(0.2, 12),
		Subtotal:      f.Float64Range(100, 5000),
		DeliveryFee:   models.FeeAmount(float64(f.Number(0, 300))),
		GrandTotal:    f.Float64Range(100, 5300),
	}
}

func TestSubmitOrder_GeneratedPayloads(t *testing.T) {
	f := gofakeit.New(0)

	for i := 0; i < 25; i++ {
		stub := &svcStub{}
		router := setupRouter(stub)

		o := fakeOrder(f)
		payload, err := json.Marshal(o)
		require.NoError(t, err)

		w := doRequest(router, http.MethodPost, "/api/orders", string(payload))
		require.Equal(t, http.StatusOK, w.Code)

		var resp statusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, "success", resp.Status)

		require.Len(t, stub.submitted, 1)
		got := stub.submitted[0]
		require.Equal(t, o.Name, got.Name)
		require.Equal(t, o.Contact, got.Contact)
		require.Equal(t, o.Products, got.Products)
		require.Equal(t, o.DeliveryFee.Display(), got.DeliveryFee.Display())
	}
}
