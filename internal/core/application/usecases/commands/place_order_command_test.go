package commands_test

import (
	"testing"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNewPlaceOrderCommand(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		cmd, err := commands.NewPlaceOrderCommand("Margherita", intPtr(2), "A", "C")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, "Margherita", cmd.Pizza())
		assert.Equal(t, 2, cmd.Quantity())
		assert.Equal(t, "A", cmd.Address())
		assert.Equal(t, "C", cmd.CustomerName())
	})

	t.Run("collects every field error", func(t *testing.T) {
		_, err := commands.NewPlaceOrderCommand("", nil, " ", "")

		var fields errs.FieldErrors
		require.ErrorAs(t, err, &fields)
		assert.Equal(t, errs.FieldErrors{
			"pizza":        order.MsgPizzaRequired,
			"quantity":     order.MsgQuantityRequired,
			"address":      order.MsgAddressRequired,
			"customerName": order.MsgCustomerNameRequired,
		}, fields)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		require.ErrorIs(t, commands.PlaceOrderCommand{}.Validate(), commands.ErrPlaceOrderCommandIsNotConstructed)
	})
}
