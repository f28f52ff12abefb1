package queries

import (
	"errors"

	"pizzeria/internal/pkg/guard"
)

var (
	ErrGetAllDeliveriesQueryIsNotConstructed = errors.New(
		"GetAllDeliveriesQuery must be created via NewGetAllDeliveriesQuery constructor",
	)
)

// GetAllDeliveriesQuery lists every delivery the tracker knows about.
type GetAllDeliveriesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllDeliveriesQuery creates a parameterless listing query.
func NewGetAllDeliveriesQuery() GetAllDeliveriesQuery {
	return GetAllDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetAllDeliveriesQueryIsNotConstructed)
}
