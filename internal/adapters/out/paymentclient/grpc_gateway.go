package paymentclient

import (
	"context"
	"fmt"
	"time"

	"pizzeria/internal/core/domain/model/payment"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/paymentpb"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// GRPCGateway charges through the gateway's gRPC service. Any RPC error means the
// gateway is unavailable.
type GRPCGateway struct {
	conn    *grpc.ClientConn
	client  paymentpb.PaymentGatewayClient
	timeout time.Duration
}

var _ ports.PaymentGateway = (*GRPCGateway)(nil)

// NewGRPCGateway prepares a client for target. The connection is established lazily on
// the first call.
func NewGRPCGateway(target string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCGateway, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("create payment grpc client: %w", err)
	}
	return &GRPCGateway{
		conn:    conn,
		client:  paymentpb.NewPaymentGatewayClient(conn),
		timeout: timeout,
	}, nil
}

func (g *GRPCGateway) Charge(ctx context.Context, req payment.ChargeRequest) (payment.ChargeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Charge(ctx, &paymentpb.ChargeRequest{
		OrderId:      req.OrderID(),
		CustomerName: req.CustomerName(),
		Amount:       req.Amount(),
	})
	if err != nil {
		return payment.ChargeResult{}, fmt.Errorf("call payment gateway: %w", err)
	}

	return payment.ChargeResult{
		TransactionID: resp.GetTransactionId(),
		Success:       resp.GetSuccess(),
		Message:       resp.GetMessage(),
	}, nil
}

// Close releases the connection.
func (g *GRPCGateway) Close() error {
	return g.conn.Close()
}
