package order

import (
	"errors"
	"fmt"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

// UnitPrice is the fixed price of one pizza in currency units.
const UnitPrice = 15.99

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is an accepted customer order as the order gate sees it: the validated request
// plus the identifier generated for it. It is immutable once constructed.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - Pizza, address and customer name are non-blank
//   - Quantity is positive
//   - Can only be created through NewOrder
type Order struct {
	// id is generated once per submitted order and travels with every event
	id kernel.UUID

	// pizza is the pizza type, e.g. "Margherita"
	pizza string

	// quantity is the number of pizzas (must be positive)
	quantity int

	// address is the delivery destination
	address string

	// customerName identifies the payer and recipient
	customerName string

	// createdAt is the instant the order gate accepted the request
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an Order after validating every field.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "Margherita", 2, "Main Street 10", "John Doe", now)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(o.Amount()) // 31.98
func NewOrder(
	id kernel.UUID,
	pizza string,
	quantity int,
	address string,
	customerName string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setPizza(pizza),
		o.setQuantity(quantity),
		o.setAddress(address),
		o.setCustomerName(customerName),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was built by NewOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Pizza returns the ordered pizza type.
func (o *Order) Pizza() string {
	return o.pizza
}

// Quantity returns the number of pizzas.
func (o *Order) Quantity() int {
	return o.quantity
}

// Address returns the delivery address.
func (o *Order) Address() string {
	return o.address
}

// CustomerName returns the customer's name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// CreatedAt returns the acceptance timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Amount returns the charge for the order: quantity × UnitPrice.
func (o *Order) Amount() float64 {
	return Amount(o.quantity)
}

// Amount returns quantity × UnitPrice.
func Amount(quantity int) float64 {
	return float64(quantity) * UnitPrice
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setPizza(pizza string) error {
	if isBlank(pizza) {
		return errs.NewValueIsRequiredError("pizza")
	}
	o.pizza = pizza
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setAddress(address string) error {
	if isBlank(address) {
		return errs.NewValueIsRequiredError("address")
	}
	o.address = address
	return nil
}

func (o *Order) setCustomerName(customerName string) error {
	if isBlank(customerName) {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customerName = customerName
	return nil
}
