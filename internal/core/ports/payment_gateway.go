package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/payment"
)

// PaymentGateway charges customers. A decline is a ChargeResult with Success false;
// an error means the gateway could not be reached or answered with something that is
// not a charge result.
type PaymentGateway interface {
	Charge(ctx context.Context, req payment.ChargeRequest) (payment.ChargeResult, error)
}
