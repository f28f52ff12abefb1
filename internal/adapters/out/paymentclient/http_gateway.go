// Package paymentclient calls the payment gateway from the order gate, over HTTP or
// gRPC. Both clients implement ports.PaymentGateway.
package paymentclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pizzeria/internal/core/domain/model/payment"
	"pizzeria/internal/core/ports"
)

// DefaultTimeout bounds a single charge call.
const DefaultTimeout = 5 * time.Second

// ErrUnexpectedResponse is returned when the gateway answers with something other than
// a charge result.
var ErrUnexpectedResponse = errors.New("unexpected payment gateway response")

type chargeRequestBody struct {
	OrderID      string  `json:"orderId"`
	CustomerName string  `json:"customerName"`
	Amount       float64 `json:"amount"`
}

// HTTPGateway posts charges to {baseURL}/pay. 200 and 402 both carry a charge result;
// any other status, a transport error or a timeout means the gateway is unavailable.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

var _ ports.PaymentGateway = (*HTTPGateway)(nil)

func NewHTTPGateway(baseURL string, timeout time.Duration) *HTTPGateway {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (g *HTTPGateway) Charge(ctx context.Context, req payment.ChargeRequest) (payment.ChargeResult, error) {
	body, err := json.Marshal(chargeRequestBody{
		OrderID:      req.OrderID(),
		CustomerName: req.CustomerName(),
		Amount:       req.Amount(),
	})
	if err != nil {
		return payment.ChargeResult{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/pay", bytes.NewReader(body))
	if err != nil {
		return payment.ChargeResult{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return payment.ChargeResult{}, fmt.Errorf("call payment gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPaymentRequired {
		_, _ = io.Copy(io.Discard, resp.Body)
		return payment.ChargeResult{}, fmt.Errorf("%w: status %d", ErrUnexpectedResponse, resp.StatusCode)
	}

	var result payment.ChargeResult
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return payment.ChargeResult{}, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}
	return result, nil
}
