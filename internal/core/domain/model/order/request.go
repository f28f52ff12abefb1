package order

import (
	"strings"

	"pizzeria/internal/pkg/errs"
)

// Caller-facing validation messages for an order request.
const (
	MsgPizzaRequired        = "Pizza type is required"
	MsgQuantityRequired     = "Quantity is required"
	MsgQuantityNotPositive  = "Quantity must be positive"
	MsgAddressRequired      = "Delivery address is required"
	MsgCustomerNameRequired = "Customer name is required"
)

// ValidateRequest checks raw order input before any side effect happens. A nil quantity
// means the field was absent from the request. Failures come back as errs.FieldErrors
// keyed by the wire field names.
func ValidateRequest(pizza string, quantity *int, address, customerName string) error {
	var pizzaErr, quantityErr, addressErr, customerErr *errs.FieldError

	if isBlank(pizza) {
		pizzaErr = errs.NewFieldError("pizza", MsgPizzaRequired)
	}
	switch {
	case quantity == nil:
		quantityErr = errs.NewFieldError("quantity", MsgQuantityRequired)
	case *quantity <= 0:
		quantityErr = errs.NewFieldError("quantity", MsgQuantityNotPositive)
	}
	if isBlank(address) {
		addressErr = errs.NewFieldError("address", MsgAddressRequired)
	}
	if isBlank(customerName) {
		customerErr = errs.NewFieldError("customerName", MsgCustomerNameRequired)
	}

	return errs.JoinFieldErrors(pizzaErr, quantityErr, addressErr, customerErr)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
