// Package payment holds the request/response contract between the order gate and the
// payment gateway simulator.
package payment

import (
	"errors"
	"strings"

	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

const (
	// ApprovedMessage accompanies every approved charge.
	ApprovedMessage = "Payment processed successfully"
	// DeclinedMessage accompanies every declined charge.
	DeclinedMessage = "Payment declined by bank. Please try a different payment method."
)

var ErrChargeRequestIsNotConstructed = errors.New("ChargeRequest must be created via NewChargeRequest constructor")

// ChargeRequest asks the gateway to charge a customer for one order.
type ChargeRequest struct {
	orderID      string
	customerName string
	amount       float64

	guard guard.ConstructorGuard
}

// NewChargeRequest validates the charge fields. Failures come back as errs.FieldErrors
// keyed by the wire field names (orderId, customerName, amount).
func NewChargeRequest(orderID, customerName string, amount float64) (ChargeRequest, error) {
	req := ChargeRequest{
		orderID:      orderID,
		customerName: customerName,
		amount:       amount,
		guard:        guard.NewConstructorGuard(),
	}

	var orderErr, customerErr, amountErr *errs.FieldError
	if strings.TrimSpace(orderID) == "" {
		orderErr = errs.NewFieldError("orderId", "Order ID is required")
	}
	if strings.TrimSpace(customerName) == "" {
		customerErr = errs.NewFieldError("customerName", "Customer name is required")
	}
	if !(amount > 0) {
		amountErr = errs.NewFieldError("amount", "Amount must be positive")
	}

	if err := errs.JoinFieldErrors(orderErr, customerErr, amountErr); err != nil {
		return ChargeRequest{}, err
	}
	return req, nil
}

// Validate ensures the request was built by NewChargeRequest.
func (r ChargeRequest) Validate() error {
	return r.guard.Validate(ErrChargeRequestIsNotConstructed)
}

func (r ChargeRequest) OrderID() string      { return r.orderID }
func (r ChargeRequest) CustomerName() string { return r.customerName }
func (r ChargeRequest) Amount() float64      { return r.amount }

// ChargeResult is the gateway's answer. TransactionID is empty unless Success.
type ChargeResult struct {
	TransactionID string `json:"transactionId,omitempty"`
	Success       bool   `json:"success"`
	Message       string `json:"message"`
}

// Approved builds a successful result for the given transaction.
func Approved(transactionID string) ChargeResult {
	return ChargeResult{TransactionID: transactionID, Success: true, Message: ApprovedMessage}
}

// Declined builds a declined result.
func Declined() ChargeResult {
	return ChargeResult{Success: false, Message: DeclinedMessage}
}
