package commands

import (
	"errors"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
)

// PlaceOrderCommand is a customer's order request after field validation.
//
// Example:
//
//	quantity := 2
//	cmd, err := NewPlaceOrderCommand("Margherita", &quantity, "Main Street 10", "John Doe")
//	var fields errs.FieldErrors
//	if errors.As(err, &fields) {
//	    // render 400 with fields
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	pizza        string
	quantity     int
	address      string
	customerName string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates the raw request. A nil quantity means the field was
// absent. Failures are errs.FieldErrors and nothing else happens.
func NewPlaceOrderCommand(pizza string, quantity *int, address, customerName string) (PlaceOrderCommand, error) {
	if err := order.ValidateRequest(pizza, quantity, address, customerName); err != nil {
		return PlaceOrderCommand{}, err
	}

	return PlaceOrderCommand{
		pizza:        pizza,
		quantity:     *quantity,
		address:      address,
		customerName: customerName,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) Pizza() string        { return c.pizza }
func (c PlaceOrderCommand) Quantity() int        { return c.quantity }
func (c PlaceOrderCommand) Address() string      { return c.address }
func (c PlaceOrderCommand) CustomerName() string { return c.customerName }
