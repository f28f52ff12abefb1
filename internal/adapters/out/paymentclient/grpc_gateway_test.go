package paymentclient_test

import (
	"context"
	"log/slog"
	"net"
	"testing"
	"time"

	grpcin "pizzeria/internal/adapters/in/grpc"
	"pizzeria/internal/adapters/out/paymentclient"
	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func startGateway(t *testing.T, failureRate float64) *paymentclient.GRPCGateway {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)

	sim, err := services.NewPaymentSimulator(services.PaymentConfig{FailureRate: failureRate}, kernel.NewRandom(1))
	require.NoError(t, err)
	handler := commands.NewChargePaymentCommandHandler(sim, logger, nil)
	srv := grpcin.NewServer(grpcin.NewPaymentServer(handler), logger)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	gateway, err := paymentclient.NewGRPCGateway("passthrough:///bufnet", time.Second,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = gateway.Close() })
	return gateway
}

func TestGRPCGateway_Charge(t *testing.T) {
	t.Run("approved", func(t *testing.T) {
		gateway := startGateway(t, 0)

		result, err := gateway.Charge(t.Context(), chargeRequest(t))

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.NotEmpty(t, result.TransactionID)
	})

	t.Run("declined", func(t *testing.T) {
		gateway := startGateway(t, 1)

		result, err := gateway.Charge(t.Context(), chargeRequest(t))

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Empty(t, result.TransactionID)
	})

	t.Run("server gone is unavailability", func(t *testing.T) {
		// Given a client whose dialer always fails
		gateway, err := paymentclient.NewGRPCGateway("passthrough:///bufnet", 100*time.Millisecond,
			grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
				return nil, net.ErrClosed
			}),
		)
		require.NoError(t, err)
		t.Cleanup(func() { _ = gateway.Close() })

		// When
		_, err = gateway.Charge(t.Context(), chargeRequest(t))

		// Then
		require.Error(t, err)
		code := status.Code(err)
		assert.Contains(t, []codes.Code{codes.Unavailable, codes.DeadlineExceeded}, code)
	})
}
