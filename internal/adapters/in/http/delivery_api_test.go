package http_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	httpin "pizzeria/internal/adapters/in/http"
	"pizzeria/internal/adapters/out/memory/deliveryrepo"
	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/model/delivery"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeliveryAPI(t *testing.T, orderIDs ...string) *echo.Echo {
	t.Helper()
	repo := deliveryrepo.NewMemoryDeliveryRepository()
	for _, id := range orderIDs {
		d, err := delivery.NewDelivery(id, "Anna Schmidt", "Main Street 10", now, now.Add(30*time.Minute), now.Add(12*time.Second))
		require.NoError(t, err)
		require.NoError(t, repo.Add(t.Context(), d))
	}

	server := httpin.NewDeliveryServer(
		queries.NewGetDeliveryQueryHandler(repo),
		queries.NewGetAllDeliveriesQueryHandler(repo),
	)
	return httpin.NewDeliveryAPI(server, discardLogger, nil)
}

func TestDeliveryAPI_GetDelivery(t *testing.T) {
	t.Run("known order", func(t *testing.T) {
		api := newDeliveryAPI(t, "order-1")

		rec := serve(api, http.MethodGet, "/api/v1/deliveries/order-1", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "order-1", body["orderId"])
		assert.Equal(t, "ASSIGNED", body["status"])
		assert.Equal(t, "Anna Schmidt", body["driverName"])
		assert.Nil(t, body["inTransitAt"])
		assert.Nil(t, body["deliveredAt"])
	})

	t.Run("unknown order is 404", func(t *testing.T) {
		api := newDeliveryAPI(t, "order-1")

		rec := serve(api, http.MethodGet, "/api/v1/deliveries/nope", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeliveryAPI_GetDeliveries(t *testing.T) {
	t.Run("keyed by order id", func(t *testing.T) {
		api := newDeliveryAPI(t, "a", "b")

		rec := serve(api, http.MethodGet, "/api/v1/deliveries", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body, 2)
		assert.Equal(t, "b", body["b"]["orderId"])
	})

	t.Run("empty store is an empty object", func(t *testing.T) {
		rec := serve(newDeliveryAPI(t), http.MethodGet, "/api/v1/deliveries", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{}`, rec.Body.String())
	})
}

func TestDeliveryAPI_Health(t *testing.T) {
	api := newDeliveryAPI(t)

	for _, path := range []string{"/health", "/api/v1/deliveries/health"} {
		rec := serve(api, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Delivery Service is running", rec.Body.String())
	}
}

func TestDeliveryAPI_LegacyRedirects(t *testing.T) {
	api := newDeliveryAPI(t)

	tests := map[string]string{
		"/deliveries":         "/api/v1/deliveries",
		"/deliveries/health":  "/api/v1/deliveries/health",
		"/deliveries/order-7": "/api/v1/deliveries/order-7",
	}
	for from, to := range tests {
		t.Run(from, func(t *testing.T) {
			rec := serve(api, http.MethodGet, from, "")

			assert.Equal(t, http.StatusMovedPermanently, rec.Code)
			assert.Equal(t, to, rec.Header().Get(echo.HeaderLocation))
		})
	}
}
