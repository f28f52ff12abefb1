package delivery_test

import (
	"encoding/json"
	"testing"

	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "ASSIGNED", delivery.Assigned.String())
	assert.Equal(t, "IN_TRANSIT", delivery.InTransit.String())
	assert.Equal(t, "DELIVERED", delivery.Delivered.String())
	assert.Equal(t, "UNKNOWN", delivery.Unknown.String())
	assert.Equal(t, "UNKNOWN", delivery.Status(42).String())
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, delivery.Assigned.Validate())
	require.NoError(t, delivery.Delivered.Validate())
	require.ErrorIs(t, delivery.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, delivery.Status(9).Validate(), errs.ErrValueIsInvalid)
}

func TestParseStatus(t *testing.T) {
	s, err := delivery.ParseStatus("IN_TRANSIT")
	require.NoError(t, err)
	assert.Equal(t, delivery.InTransit, s)

	_, err = delivery.ParseStatus("UNKNOWN")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = delivery.ParseStatus("in_transit")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Transitions(t *testing.T) {
	t.Run("depart only from assigned", func(t *testing.T) {
		next, err := delivery.Assigned.Depart()
		require.NoError(t, err)
		assert.Equal(t, delivery.InTransit, next)

		for _, from := range []delivery.Status{delivery.Unknown, delivery.InTransit, delivery.Delivered} {
			_, err := from.Depart()
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, from.String())
		}
	})

	t.Run("complete only from in transit", func(t *testing.T) {
		next, err := delivery.InTransit.Complete()
		require.NoError(t, err)
		assert.Equal(t, delivery.Delivered, next)

		for _, from := range []delivery.Status{delivery.Unknown, delivery.Assigned, delivery.Delivered} {
			_, err := from.Complete()
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, from.String())
		}
	})

	t.Run("only delivered is terminal", func(t *testing.T) {
		assert.False(t, delivery.Assigned.IsTerminal())
		assert.False(t, delivery.InTransit.IsTerminal())
		assert.True(t, delivery.Delivered.IsTerminal())
	})
}

func TestStatus_JSON(t *testing.T) {
	body, err := json.Marshal(struct {
		Status delivery.Status `json:"status"`
	}{delivery.InTransit})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"IN_TRANSIT"}`, string(body))

	var decoded struct {
		Status delivery.Status `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"status":"DELIVERED"}`), &decoded))
	assert.Equal(t, delivery.Delivered, decoded.Status)

	require.Error(t, json.Unmarshal([]byte(`{"status":"LOST"}`), &decoded))
}
