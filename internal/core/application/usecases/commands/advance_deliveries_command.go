package commands

import (
	"errors"

	"pizzeria/internal/pkg/guard"
)

// AdvanceDeliveriesCommand triggers one sweep over every delivery record.
//
// Example:
//
//	cmd := NewAdvanceDeliveriesCommand()
//	handler := NewAdvanceDeliveriesCommandHandler(repo, dispatcher, kernel.SystemClock, logger, m)
//
//	// Run periodically to move deliveries along
//	moved, err := handler.Handle(ctx, cmd)
type AdvanceDeliveriesCommand struct {
	guard guard.ConstructorGuard
}

var (
	ErrAdvanceDeliveriesCommandIsNotConstructed = errors.New(
		"AdvanceDeliveriesCommand must be created via NewAdvanceDeliveriesCommand constructor",
	)
)

// NewAdvanceDeliveriesCommand creates a parameterless sweep command.
func NewAdvanceDeliveriesCommand() AdvanceDeliveriesCommand {
	return AdvanceDeliveriesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *AdvanceDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceDeliveriesCommandIsNotConstructed)
}
