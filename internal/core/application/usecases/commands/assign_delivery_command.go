package commands

import (
	"errors"

	"pizzeria/internal/core/domain/model/events"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrAssignDeliveryCommandIsNotConstructed = errors.New(
		"AssignDeliveryCommand must be created via NewAssignDeliveryCommand constructor",
	)
)

// AssignDeliveryCommand asks the delivery tracker to assign a driver to a ready order.
type AssignDeliveryCommand struct {
	ready events.OrderReady

	guard guard.ConstructorGuard
}

func NewAssignDeliveryCommand(ready events.OrderReady) (AssignDeliveryCommand, error) {
	if err := ready.Validate(); err != nil {
		return AssignDeliveryCommand{}, err
	}
	return AssignDeliveryCommand{ready: ready, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAssignDeliveryCommandIsNotConstructed)
}

func (c AssignDeliveryCommand) Ready() events.OrderReady {
	return c.ready
}
