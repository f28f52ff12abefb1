package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"pizzeria/internal/adapters/out/broker/memory"
	"pizzeria/internal/adapters/out/broker/redisstream"
	"pizzeria/internal/adapters/out/memory/deliveryrepo"
	"pizzeria/internal/adapters/out/messaging"
	"pizzeria/internal/adapters/out/paymentclient"
	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 5 * time.Second

// CompositionRoot owns the shared infrastructure of one process and builds the
// handlers of every service on top of it. Shared pieces are created on first use, so a
// process that runs only the payment service never touches the broker.
type CompositionRoot struct {
	cfg      Config
	logger   *slog.Logger
	clock    kernel.Clock
	random   *kernel.Random
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	deliveries *deliveryrepo.MemoryDeliveryRepository

	mu      sync.Mutex
	broker  ports.MessageBroker
	gateway ports.PaymentGateway
	closers []func() error
}

func NewCompositionRoot(cfg Config, logger *slog.Logger) *CompositionRoot {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &CompositionRoot{
		cfg:        cfg,
		logger:     logger,
		clock:      kernel.SystemClock,
		random:     kernel.NewRandom(cfg.RandomSeed),
		registry:   registry,
		metrics:    metrics.New(registry),
		deliveries: deliveryrepo.NewMemoryDeliveryRepository(),
	}
}

func (c *CompositionRoot) Registry() *prometheus.Registry {
	return c.registry
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

// Broker returns the process-wide message broker, connecting on first use.
func (c *CompositionRoot) Broker(ctx context.Context) (ports.MessageBroker, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.broker != nil {
		return c.broker, nil
	}

	switch c.cfg.Broker {
	case BrokerRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     c.cfg.RedisAddr,
			Password: c.cfg.RedisPassword,
		})
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("connect to redis at %s: %w", c.cfg.RedisAddr, err)
		}
		b := redisstream.NewBroker(client, redisstream.DefaultOptions(), c.logger)
		c.broker = b
		c.closers = append(c.closers, b.Close)
	default:
		b := memory.NewBroker(memory.DefaultQueueCapacity, c.logger)
		c.broker = b
		c.closers = append(c.closers, b.Close)
	}
	c.logger.InfoContext(ctx, "message broker ready", "broker", c.cfg.Broker)
	return c.broker, nil
}

// PaymentGateway returns the client the order gate charges through.
func (c *CompositionRoot) PaymentGateway() (ports.PaymentGateway, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gateway != nil {
		return c.gateway, nil
	}

	switch c.cfg.PaymentTransport {
	case TransportGRPC:
		g, err := paymentclient.NewGRPCGateway(c.cfg.PaymentGRPCHost, c.cfg.PaymentTimeout)
		if err != nil {
			return nil, err
		}
		c.gateway = g
		c.closers = append(c.closers, g.Close)
	default:
		c.gateway = paymentclient.NewHTTPGateway(c.cfg.PaymentServiceURL, c.cfg.PaymentTimeout)
	}
	return c.gateway, nil
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler(ctx context.Context) (commands.PlaceOrderCommandHandler, error) {
	gateway, err := c.PaymentGateway()
	if err != nil {
		return commands.PlaceOrderCommandHandler{}, err
	}
	broker, err := c.Broker(ctx)
	if err != nil {
		return commands.PlaceOrderCommandHandler{}, err
	}
	return commands.NewPlaceOrderCommandHandler(
		gateway, messaging.NewEventPublisher(broker), c.clock, c.logger, c.metrics,
	), nil
}

func (c *CompositionRoot) CreateChargePaymentCommandHandler() (commands.ChargePaymentCommandHandler, error) {
	sim, err := services.NewPaymentSimulator(services.PaymentConfig{
		FailureRate: c.cfg.PaymentFailureRate,
		MinDelay:    c.cfg.PaymentDelayMin,
		MaxDelay:    c.cfg.PaymentDelayMax,
	}, c.random)
	if err != nil {
		return commands.ChargePaymentCommandHandler{}, err
	}
	return commands.NewChargePaymentCommandHandler(sim, c.logger, c.metrics), nil
}

func (c *CompositionRoot) CreatePrepareOrderCommandHandler(ctx context.Context) (commands.PrepareOrderCommandHandler, error) {
	timer, err := services.NewKitchenTimer(services.Window{
		Min: c.cfg.KitchenPrepMin,
		Max: c.cfg.KitchenPrepMax,
	}, c.random)
	if err != nil {
		return commands.PrepareOrderCommandHandler{}, err
	}
	broker, err := c.Broker(ctx)
	if err != nil {
		return commands.PrepareOrderCommandHandler{}, err
	}
	return commands.NewPrepareOrderCommandHandler(
		c.cfg.KitchenInstanceID, timer, messaging.NewEventPublisher(broker), c.clock, c.logger, c.metrics,
	), nil
}

func (c *CompositionRoot) driverDispatcher() (*services.DriverDispatcher, error) {
	return services.NewDriverDispatcher(services.DefaultDispatchConfig(), delivery.Drivers, c.random)
}

func (c *CompositionRoot) CreateAssignDeliveryCommandHandler() (commands.AssignDeliveryCommandHandler, error) {
	dispatcher, err := c.driverDispatcher()
	if err != nil {
		return commands.AssignDeliveryCommandHandler{}, err
	}
	return commands.NewAssignDeliveryCommandHandler(dispatcher, c.deliveries, c.clock, c.logger, c.metrics), nil
}

func (c *CompositionRoot) CreateAdvanceDeliveriesCommandHandler() (commands.AdvanceDeliveriesCommandHandler, error) {
	dispatcher, err := c.driverDispatcher()
	if err != nil {
		return commands.AdvanceDeliveriesCommandHandler{}, err
	}
	return commands.NewAdvanceDeliveriesCommandHandler(c.deliveries, dispatcher, c.clock, c.logger, c.metrics), nil
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(c.deliveries)
}

func (c *CompositionRoot) CreateGetAllDeliveriesQueryHandler() queries.GetAllDeliveriesQueryHandler {
	return queries.NewGetAllDeliveriesQueryHandler(c.deliveries)
}

// Close releases the broker and client connections in reverse order of creation.
func (c *CompositionRoot) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errList = append(errList, err)
		}
	}
	c.closers = nil
	return errors.Join(errList...)
}
