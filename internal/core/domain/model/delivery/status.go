package delivery

import (
	"fmt"

	"pizzeria/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
// Transitions only move forward:
//
//	Assigned ──> InTransit ──> Delivered
//
// Delivered is terminal. Status is a value object; the Delivery record owns the
// instants at which transitions happen.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Assigned is the initial status: a driver is allocated and the order waits at the
	// kitchen for pickup.
	Assigned

	// InTransit indicates the driver has left with the order.
	InTransit

	// Delivered indicates the order reached the customer. No further transitions.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Assigned:  "ASSIGNED",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Assigned:  "ASSIGNED",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
	}
}

// ParseStatus converts the wire representation back to a Status.
//
// Example:
//
//	s, err := delivery.ParseStatus("IN_TRANSIT") // InTransit, nil
func ParseStatus(value string) (Status, error) {
	for s, str := range getValidStatusStrings() {
		if str == value {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", value))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any value outside the enum are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, "UNKNOWN" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// MarshalText renders the status by name so JSON bodies carry "IN_TRANSIT" rather than 2.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// Depart transitions the status to InTransit.
//
// Valid transitions:
//   - Assigned -> InTransit
//
// Returns:
//   - (InTransit, nil) on valid transition
//   - (Unknown, error) from any other status
func (s Status) Depart() (Status, error) {
	if s != Assigned {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to depart", s.String()),
		)
	}
	return InTransit, nil
}

// Complete transitions the status to Delivered.
//
// Valid transitions:
//   - InTransit -> Delivered
//
// Invalid transitions:
//   - Assigned -> Delivered (the driver must depart first)
//   - Delivered -> Delivered (already delivered)
//
// Returns:
//   - (Delivered, nil) on valid transition
//   - (Unknown, error) if transition is not allowed from current status
func (s Status) Complete() (Status, error) {
	if s != InTransit {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}
	return Delivered, nil
}
