// Package grpc exposes the payment gateway over gRPC.
package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/paymentpb"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// PaymentServer implements paymentpb.PaymentGatewayServer on top of the charge command.
// Declines are ordinary responses with Success false.
type PaymentServer struct {
	paymentpb.UnimplementedPaymentGatewayServer

	chargeHandler commands.ChargePaymentCommandHandler
}

func NewPaymentServer(chargeHandler commands.ChargePaymentCommandHandler) *PaymentServer {
	return &PaymentServer{chargeHandler: chargeHandler}
}

// Charge handles /pizzeria.payment.PaymentGateway/Charge.
func (s *PaymentServer) Charge(ctx context.Context, req *paymentpb.ChargeRequest) (*paymentpb.ChargeResponse, error) {
	cmd, err := commands.NewChargePaymentCommand(req.GetOrderId(), req.GetCustomerName(), req.GetAmount())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	result, err := s.chargeHandler.Handle(ctx, cmd)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, status.FromContextError(err).Err()
		}
		if errors.Is(err, errs.ErrValueIsInvalid) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Error(codes.Internal, "payment processing failed")
	}

	return &paymentpb.ChargeResponse{
		TransactionId: result.TransactionID,
		Success:       result.Success,
		Message:       result.Message,
	}, nil
}

// NewServer builds a gRPC server with the payment service registered and every call
// logged.
func NewServer(paymentServer *PaymentServer, logger *slog.Logger) *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(loggingInterceptor(logger.With("component", "grpc"))))
	paymentpb.RegisterPaymentGatewayServer(srv, paymentServer)
	return srv
}

func loggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.InfoContext(ctx, "grpc call",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"duration", time.Since(start),
		)
		return resp, err
	}
}
