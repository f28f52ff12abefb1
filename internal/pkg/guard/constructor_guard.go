// Package guard provides ConstructorGuard, a marker embedded in commands, queries and
// entities so a zero value can be told apart from one built by its constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing value was created by its constructor.
//
// Example:
//
//	var ErrTicketIsNotConstructed = errors.New("Ticket must be created via NewTicket")
//
//	type Ticket struct {
//	    orderID string
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewTicket(orderID string) Ticket {
//	    return Ticket{orderID: orderID, guard: guard.NewConstructorGuard()}
//	}
//
//	func (t Ticket) Validate() error {
//	    return t.guard.Validate(ErrTicketIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// for a zero-value guard and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
