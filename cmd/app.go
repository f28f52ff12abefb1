package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	grpcin "pizzeria/internal/adapters/in/grpc"
	httpin "pizzeria/internal/adapters/in/http"
	"pizzeria/internal/adapters/in/messaging"
	"pizzeria/internal/jobs"

	"github.com/labstack/echo/v4"
	"google.golang.org/grpc"
)

const shutdownTimeout = 10 * time.Second

// App runs the services selected in Config.Services until its context is cancelled
// or one of them fails.
type App struct {
	cfg    Config
	root   *CompositionRoot
	logger *slog.Logger

	webServers map[string]*echo.Echo
	grpcServer *grpc.Server
	grpcLis    net.Listener
	runners    []func(ctx context.Context) error
	jobManager *jobs.JobManager
}

// NewApp builds every selected service. Nothing listens until Run.
func NewApp(ctx context.Context, cfg Config, root *CompositionRoot, logger *slog.Logger) (*App, error) {
	a := &App{
		cfg:        cfg,
		root:       root,
		logger:     logger.With("component", "app"),
		webServers: map[string]*echo.Echo{},
		jobManager: jobs.NewJobManager(),
	}

	builders := map[string]func(context.Context) error{
		ServicePayment:  a.buildPayment,
		ServiceOrder:    a.buildOrder,
		ServiceKitchen:  a.buildKitchen,
		ServiceDelivery: a.buildDelivery,
	}
	for _, service := range cfg.Services {
		if err := builders[service](ctx); err != nil {
			return nil, fmt.Errorf("build %s service: %w", service, err)
		}
	}
	return a, nil
}

func (a *App) buildPayment(context.Context) error {
	charge, err := a.root.CreateChargePaymentCommandHandler()
	if err != nil {
		return err
	}

	api, err := httpin.NewPaymentAPI(httpin.NewPaymentServer(charge), a.logger, a.root.Registry())
	if err != nil {
		return err
	}
	a.webServers[listenAddr(a.cfg.PaymentHTTPPort)] = api

	lis, err := net.Listen("tcp", listenAddr(a.cfg.PaymentGRPCPort))
	if err != nil {
		return fmt.Errorf("listen grpc: %w", err)
	}
	a.grpcLis = lis
	a.grpcServer = grpcin.NewServer(grpcin.NewPaymentServer(charge), a.logger)
	return nil
}

func (a *App) buildOrder(ctx context.Context) error {
	place, err := a.root.CreatePlaceOrderCommandHandler(ctx)
	if err != nil {
		return err
	}

	api, err := httpin.NewOrderAPI(httpin.NewOrderServer(place, a.root.clock), a.logger, a.root.Registry())
	if err != nil {
		return err
	}
	a.webServers[listenAddr(a.cfg.OrderHTTPPort)] = api
	return nil
}

func (a *App) buildKitchen(ctx context.Context) error {
	prepare, err := a.root.CreatePrepareOrderCommandHandler(ctx)
	if err != nil {
		return err
	}
	broker, err := a.root.Broker(ctx)
	if err != nil {
		return err
	}

	consumer := messaging.NewKitchenConsumer(
		broker, &prepare, a.cfg.KitchenInstanceID, a.cfg.KitchenWorkers, a.logger, a.root.Metrics(),
	)
	a.runners = append(a.runners, consumer.Run)
	a.webServers[listenAddr(a.cfg.KitchenHTTPPort)] = httpin.NewKitchenAPI(a.logger, a.root.Registry())
	return nil
}

func (a *App) buildDelivery(ctx context.Context) error {
	assign, err := a.root.CreateAssignDeliveryCommandHandler()
	if err != nil {
		return err
	}
	advance, err := a.root.CreateAdvanceDeliveriesCommandHandler()
	if err != nil {
		return err
	}
	broker, err := a.root.Broker(ctx)
	if err != nil {
		return err
	}

	consumer := messaging.NewDeliveryConsumer(broker, &assign, a.cfg.DeliveryConsumerID, a.logger, a.root.Metrics())
	a.runners = append(a.runners, consumer.Run)
	a.jobManager = jobs.NewJobManager(jobs.NewDeliverySweepJob(&advance, a.cfg.DeliverySweepSchedule, a.logger))

	server := httpin.NewDeliveryServer(a.root.CreateGetDeliveryQueryHandler(), a.root.CreateGetAllDeliveriesQueryHandler())
	a.webServers[listenAddr(a.cfg.DeliveryHTTPPort)] = httpin.NewDeliveryAPI(server, a.logger, a.root.Registry())
	return nil
}

// Run starts everything and blocks until ctx is done or a component fails, then shuts
// all components down.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, len(a.webServers)+len(a.runners)+2)
	var wg sync.WaitGroup
	spawn := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				errCh <- fmt.Errorf("%s: %w", name, err)
			}
		}()
	}

	for addr, e := range a.webServers {
		a.logger.InfoContext(ctx, "http server listening", "addr", addr)
		spawn("http "+addr, func() error {
			if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	if a.grpcServer != nil {
		a.logger.InfoContext(ctx, "grpc server listening", "addr", a.grpcLis.Addr().String())
		spawn("grpc", func() error {
			return a.grpcServer.Serve(a.grpcLis)
		})
	}
	for _, run := range a.runners {
		spawn("consumer", func() error {
			return run(ctx)
		})
	}
	if err := a.jobManager.StartAll(); err != nil {
		cancel()
		errCh <- fmt.Errorf("start jobs: %w", err)
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		a.logger.ErrorContext(ctx, "component failed, shutting down", "error", runErr)
	}
	cancel()

	a.shutdown()
	wg.Wait()
	return errors.Join(runErr, a.root.Close())
}

func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.jobManager.StopAll()
	for addr, e := range a.webServers {
		if err := e.Shutdown(ctx); err != nil {
			a.logger.ErrorContext(ctx, "http server shutdown failed", "addr", addr, "error", err)
		}
	}
	if a.grpcServer != nil {
		a.grpcServer.GracefulStop()
	}
}

func listenAddr(port string) string {
	return net.JoinHostPort("0.0.0.0", port)
}
