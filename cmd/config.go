package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"pizzeria/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Service names accepted in APP_SERVICES.
const (
	ServicePayment  = "payment"
	ServiceOrder    = "order"
	ServiceKitchen  = "kitchen"
	ServiceDelivery = "delivery"
)

const (
	TransportHTTP = "http"
	TransportGRPC = "grpc"

	BrokerMemory = "memory"
	BrokerRedis  = "redis"
)

var allServices = []string{ServicePayment, ServiceOrder, ServiceKitchen, ServiceDelivery}

type Config struct {
	Services []string

	OrderHTTPPort    string
	PaymentHTTPPort  string
	PaymentGRPCPort  string
	KitchenHTTPPort  string
	DeliveryHTTPPort string

	PaymentServiceURL  string
	PaymentTransport   string
	PaymentGRPCHost    string
	PaymentTimeout     time.Duration
	PaymentFailureRate float64
	PaymentDelayMin    time.Duration
	PaymentDelayMax    time.Duration

	KitchenPrepMin    time.Duration
	KitchenPrepMax    time.Duration
	KitchenInstanceID string
	KitchenWorkers    int

	DeliveryConsumerID    string
	DeliverySweepSchedule string

	Broker        string
	RedisAddr     string
	RedisPassword string

	LogLevel   slog.Level
	RandomSeed uint64
}

// Runs reports whether the process hosts the named service.
func (c Config) Runs(service string) bool {
	return slices.Contains(c.Services, service)
}

// LookupFunc resolves one configuration key, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// EnvLookup resolves keys from the process environment first and then from the
// dotenv file at path. A missing file is not an error.
func EnvLookup(path string) (LookupFunc, error) {
	fileValues, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		fileValues = map[string]string{}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileValues[key]
		return v, ok
	}, nil
}

// LoadConfig reads every setting through lookup, applying defaults for unset or empty
// keys. All invalid values are reported together.
func LoadConfig(lookup LookupFunc) (Config, error) {
	r := configReader{lookup: lookup}
	hostname := defaultHostname()

	cfg := Config{
		Services: r.list("APP_SERVICES", allServices),

		OrderHTTPPort:    r.str("ORDER_HTTP_PORT", "8080"),
		PaymentHTTPPort:  r.str("PAYMENT_HTTP_PORT", "8081"),
		KitchenHTTPPort:  r.str("KITCHEN_HTTP_PORT", "8082"),
		DeliveryHTTPPort: r.str("DELIVERY_HTTP_PORT", "8083"),
		PaymentGRPCPort:  r.str("PAYMENT_GRPC_PORT", "9091"),

		PaymentServiceURL:  r.str("PAYMENT_SERVICE_URL", "http://localhost:8081"),
		PaymentTransport:   strings.ToLower(r.str("PAYMENT_TRANSPORT", TransportHTTP)),
		PaymentGRPCHost:    r.str("PAYMENT_GRPC_HOST", "localhost:9091"),
		PaymentTimeout:     r.duration("PAYMENT_TIMEOUT", 5*time.Second),
		PaymentFailureRate: r.float("PAYMENT_FAILURE_RATE", 0.2),
		PaymentDelayMin:    r.duration("PAYMENT_DELAY_MIN", 100*time.Millisecond),
		PaymentDelayMax:    r.duration("PAYMENT_DELAY_MAX", 500*time.Millisecond),

		KitchenPrepMin:    r.duration("KITCHEN_PREP_MIN", 5*time.Second),
		KitchenPrepMax:    r.duration("KITCHEN_PREP_MAX", 10*time.Second),
		KitchenInstanceID: r.str("KITCHEN_INSTANCE_ID", hostname),
		KitchenWorkers:    r.integer("KITCHEN_WORKERS", 1),

		DeliveryConsumerID:    r.str("DELIVERY_CONSUMER_ID", "delivery-"+hostname),
		DeliverySweepSchedule: r.str("DELIVERY_SWEEP_SCHEDULE", "@every 5s"),

		Broker:        strings.ToLower(r.str("BROKER", BrokerMemory)),
		RedisAddr:     r.str("REDIS_ADDR", "localhost:6379"),
		RedisPassword: r.str("REDIS_PASSWORD", ""),

		LogLevel:   r.level("LOG_LEVEL", slog.LevelInfo),
		RandomSeed: r.unsigned("RANDOM_SEED", 0),
	}

	if err := errors.Join(append(r.errs, cfg.Validate())...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the cross-field rules that parsing alone cannot.
func (c Config) Validate() error {
	var errList []error

	if len(c.Services) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("APP_SERVICES"))
	}
	for _, s := range c.Services {
		if !slices.Contains(allServices, s) {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("APP_SERVICES",
				fmt.Errorf("unknown service %q", s)))
		}
	}
	if c.PaymentTransport != TransportHTTP && c.PaymentTransport != TransportGRPC {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("PAYMENT_TRANSPORT",
			fmt.Errorf("want %s or %s, got %q", TransportHTTP, TransportGRPC, c.PaymentTransport)))
	}
	if c.Broker != BrokerMemory && c.Broker != BrokerRedis {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("BROKER",
			fmt.Errorf("want %s or %s, got %q", BrokerMemory, BrokerRedis, c.Broker)))
	}
	if c.PaymentTimeout <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("PAYMENT_TIMEOUT", c.PaymentTimeout, "1ns", "∞"))
	}
	if !(c.PaymentFailureRate >= 0 && c.PaymentFailureRate <= 1) {
		errList = append(errList, errs.NewValueIsOutOfRangeError("PAYMENT_FAILURE_RATE", c.PaymentFailureRate, 0, 1))
	}
	if c.PaymentDelayMin < 0 || c.PaymentDelayMax < c.PaymentDelayMin {
		errList = append(errList, errs.NewValueIsOutOfRangeError("PAYMENT_DELAY_MAX", c.PaymentDelayMax, c.PaymentDelayMin, "∞"))
	}
	if c.KitchenPrepMin < 0 || c.KitchenPrepMax < c.KitchenPrepMin {
		errList = append(errList, errs.NewValueIsOutOfRangeError("KITCHEN_PREP_MAX", c.KitchenPrepMax, c.KitchenPrepMin, "∞"))
	}
	if c.KitchenWorkers < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("KITCHEN_WORKERS", c.KitchenWorkers, 1, "∞"))
	}
	if _, err := cronParser.Parse(c.DeliverySweepSchedule); err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("DELIVERY_SWEEP_SCHEDULE", err))
	}

	return errors.Join(errList...)
}

// cronParser accepts what cron.WithSeconds accepts.
var cronParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func defaultHostname() string {
	if h, err := os.Hostname(); err == nil && h != "" {
		return h
	}
	return "localhost"
}

type configReader struct {
	lookup LookupFunc
	errs   []error
}

func (r *configReader) str(key, def string) string {
	if v, ok := r.lookup(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (r *configReader) list(key string, def []string) []string {
	raw := r.str(key, "")
	if raw == "" {
		return slices.Clone(def)
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" && !slices.Contains(out, part) {
			out = append(out, part)
		}
	}
	return out
}

func (r *configReader) duration(key string, def time.Duration) time.Duration {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return d
}

func (r *configReader) float(key string, def float64) float64 {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return f
}

func (r *configReader) integer(key string, def int) int {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return n
}

func (r *configReader) unsigned(key string, def uint64) uint64 {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return n
}

func (r *configReader) level(key string, def slog.Level) slog.Level {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(raw)); err != nil {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return lvl
}
