package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"pizzeria/internal/core/domain/model/events"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderPlaced(t *testing.T) {
	createdAt := time.Date(2026, 1, 16, 10, 0, 0, 0, time.UTC)
	o, err := order.NewOrder(kernel.NewUUID(), "Margherita", 2, "A", "C", createdAt)
	require.NoError(t, err)

	t.Run("copies the order", func(t *testing.T) {
		evt, err := events.NewOrderPlaced(o)

		require.NoError(t, err)
		assert.Equal(t, events.OrderPlaced{
			OrderID:      o.ID().String(),
			Pizza:        "Margherita",
			Quantity:     2,
			Address:      "A",
			CustomerName: "C",
			Timestamp:    createdAt,
		}, evt)
	})

	t.Run("rejects unconstructed order", func(t *testing.T) {
		_, err := events.NewOrderPlaced(&order.Order{})

		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}

func TestOrderPlaced_Ready(t *testing.T) {
	placed := events.OrderPlaced{
		OrderID: "X", Pizza: "Hawaiian", Quantity: 3, Address: "Pine Street 15", CustomerName: "Bob",
		Timestamp: time.Now(),
	}
	preparedAt := time.Date(2026, 1, 16, 10, 7, 0, 0, time.UTC)

	ready := placed.Ready(preparedAt)

	assert.Equal(t, events.OrderReady{
		OrderID: "X", Pizza: "Hawaiian", Quantity: 3, Address: "Pine Street 15", CustomerName: "Bob",
		PreparedAt: preparedAt,
	}, ready)
}

func TestEvents_WireShape(t *testing.T) {
	ready := events.OrderReady{
		OrderID: "X", Pizza: "Margherita", Quantity: 2, Address: "A", CustomerName: "C",
		PreparedAt: time.Date(2026, 1, 16, 10, 0, 0, 0, time.UTC),
	}

	body, err := json.Marshal(ready)

	require.NoError(t, err)
	assert.JSONEq(t, `{
		"orderId": "X",
		"pizza": "Margherita",
		"quantity": 2,
		"address": "A",
		"customerName": "C",
		"preparedAt": "2026-01-16T10:00:00Z"
	}`, string(body))
}

func TestEvents_Validate(t *testing.T) {
	require.NoError(t, events.OrderPlaced{OrderID: "X"}.Validate())
	require.ErrorIs(t, events.OrderPlaced{}.Validate(), errs.ErrValueIsRequired)
	require.ErrorIs(t, events.OrderReady{OrderID: "  "}.Validate(), errs.ErrValueIsRequired)
}
