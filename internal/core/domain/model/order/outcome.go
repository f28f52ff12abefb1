package order

import (
	"fmt"

	"pizzeria/internal/pkg/errs"
)

// Outcome is the caller-visible result of submitting an order to the gate.
//
//	SUCCESS         payment approved, order accepted (the kitchen hand-off is best effort)
//	PAYMENT_FAILED  the gateway declined the charge
//	ERROR           the gateway could not be reached
//	VALIDATION_ERROR the request was malformed and nothing was attempted
type Outcome int

const (
	// OutcomeUnknown is the invalid zero value.
	OutcomeUnknown Outcome = iota
	OutcomeSuccess
	OutcomePaymentFailed
	OutcomeError
	OutcomeValidationError
)

func getOutcomeStrings() map[Outcome]string {
	return map[Outcome]string{
		OutcomeUnknown:         "UNKNOWN",
		OutcomeSuccess:         "SUCCESS",
		OutcomePaymentFailed:   "PAYMENT_FAILED",
		OutcomeError:           "ERROR",
		OutcomeValidationError: "VALIDATION_ERROR",
	}
}

// String returns the wire name of the outcome.
func (o Outcome) String() string {
	if s, ok := getOutcomeStrings()[o]; ok {
		return s
	}
	return "UNKNOWN"
}

// MarshalText renders the outcome as its wire name in JSON bodies.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText parses a wire name back into an Outcome.
func (o *Outcome) UnmarshalText(text []byte) error {
	for outcome, name := range getOutcomeStrings() {
		if outcome != OutcomeUnknown && name == string(text) {
			*o = outcome
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("outcome", fmt.Errorf("%q is not a known outcome", text))
}
