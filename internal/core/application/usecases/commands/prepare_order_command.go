package commands

import (
	"errors"

	"pizzeria/internal/core/domain/model/events"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrPrepareOrderCommandIsNotConstructed = errors.New(
		"PrepareOrderCommand must be created via NewPrepareOrderCommand constructor",
	)
)

// PrepareOrderCommand asks a kitchen instance to prepare one placed order.
type PrepareOrderCommand struct {
	placed events.OrderPlaced

	guard guard.ConstructorGuard
}

func NewPrepareOrderCommand(placed events.OrderPlaced) (PrepareOrderCommand, error) {
	if err := placed.Validate(); err != nil {
		return PrepareOrderCommand{}, err
	}
	return PrepareOrderCommand{placed: placed, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c PrepareOrderCommand) Validate() error {
	return c.guard.Validate(ErrPrepareOrderCommandIsNotConstructed)
}

func (c PrepareOrderCommand) Placed() events.OrderPlaced {
	return c.placed
}
