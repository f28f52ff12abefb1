package cmd_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pizzeria/cmd"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(values map[string]string) cmd.LookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := cmd.LoadConfig(lookupFrom(nil))

	require.NoError(t, err)
	assert.Equal(t, []string{"payment", "order", "kitchen", "delivery"}, cfg.Services)
	assert.Equal(t, "8080", cfg.OrderHTTPPort)
	assert.Equal(t, "8081", cfg.PaymentHTTPPort)
	assert.Equal(t, "8082", cfg.KitchenHTTPPort)
	assert.Equal(t, "8083", cfg.DeliveryHTTPPort)
	assert.Equal(t, "9091", cfg.PaymentGRPCPort)
	assert.Equal(t, "http://localhost:8081", cfg.PaymentServiceURL)
	assert.Equal(t, cmd.TransportHTTP, cfg.PaymentTransport)
	assert.Equal(t, "localhost:9091", cfg.PaymentGRPCHost)
	assert.Equal(t, 5*time.Second, cfg.PaymentTimeout)
	assert.InDelta(t, 0.2, cfg.PaymentFailureRate, 1e-9)
	assert.Equal(t, 100*time.Millisecond, cfg.PaymentDelayMin)
	assert.Equal(t, 500*time.Millisecond, cfg.PaymentDelayMax)
	assert.Equal(t, 5*time.Second, cfg.KitchenPrepMin)
	assert.Equal(t, 10*time.Second, cfg.KitchenPrepMax)
	assert.NotEmpty(t, cfg.KitchenInstanceID)
	assert.Equal(t, 1, cfg.KitchenWorkers)
	assert.Equal(t, "@every 5s", cfg.DeliverySweepSchedule)
	assert.Equal(t, cmd.BrokerMemory, cfg.Broker)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Zero(t, cfg.RandomSeed)
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg, err := cmd.LoadConfig(lookupFrom(map[string]string{
		"APP_SERVICES":            " Kitchen , kitchen,delivery ",
		"PAYMENT_TRANSPORT":       "GRPC",
		"PAYMENT_FAILURE_RATE":    "1",
		"KITCHEN_PREP_MIN":        "1s",
		"KITCHEN_PREP_MAX":        "2s",
		"KITCHEN_INSTANCE_ID":     "kitchen-2",
		"KITCHEN_WORKERS":         "4",
		"DELIVERY_SWEEP_SCHEDULE": "*/2 * * * * *",
		"BROKER":                  "redis",
		"LOG_LEVEL":               "debug",
		"RANDOM_SEED":             "42",
		"ORDER_HTTP_PORT":         "  ",
	}))

	require.NoError(t, err)
	assert.Equal(t, []string{"kitchen", "delivery"}, cfg.Services)
	assert.True(t, cfg.Runs(cmd.ServiceKitchen))
	assert.False(t, cfg.Runs(cmd.ServiceOrder))
	assert.Equal(t, cmd.TransportGRPC, cfg.PaymentTransport)
	assert.InDelta(t, 1.0, cfg.PaymentFailureRate, 1e-9)
	assert.Equal(t, time.Second, cfg.KitchenPrepMin)
	assert.Equal(t, 2*time.Second, cfg.KitchenPrepMax)
	assert.Equal(t, "kitchen-2", cfg.KitchenInstanceID)
	assert.Equal(t, 4, cfg.KitchenWorkers)
	assert.Equal(t, cmd.BrokerRedis, cfg.Broker)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, uint64(42), cfg.RandomSeed)
	assert.Equal(t, "8080", cfg.OrderHTTPPort, "blank values fall back to the default")
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown service":        {"APP_SERVICES": "order,billing"},
		"unknown transport":      {"PAYMENT_TRANSPORT": "carrier-pigeon"},
		"unknown broker":         {"BROKER": "kafka"},
		"bad duration":           {"PAYMENT_TIMEOUT": "soon"},
		"zero timeout":           {"PAYMENT_TIMEOUT": "0s"},
		"failure rate too high":  {"PAYMENT_FAILURE_RATE": "1.5"},
		"failure rate not float": {"PAYMENT_FAILURE_RATE": "often"},
		"inverted delays":        {"PAYMENT_DELAY_MIN": "1s", "PAYMENT_DELAY_MAX": "10ms"},
		"inverted prep window":   {"KITCHEN_PREP_MIN": "10s", "KITCHEN_PREP_MAX": "1s"},
		"no workers":             {"KITCHEN_WORKERS": "0"},
		"workers not int":        {"KITCHEN_WORKERS": "many"},
		"bad schedule":           {"DELIVERY_SWEEP_SCHEDULE": "whenever"},
		"bad log level":          {"LOG_LEVEL": "loud"},
		"negative seed":          {"RANDOM_SEED": "-1"},
	}

	for name, values := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := cmd.LoadConfig(lookupFrom(values))

			require.Error(t, err)
		})
	}

	t.Run("reports every problem at once", func(t *testing.T) {
		_, err := cmd.LoadConfig(lookupFrom(map[string]string{
			"BROKER":          "kafka",
			"KITCHEN_WORKERS": "0",
		}))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "BROKER")
		assert.Contains(t, err.Error(), "KITCHEN_WORKERS")
	})
}

func TestEnvLookup(t *testing.T) {
	t.Run("reads the dotenv file", func(t *testing.T) {
		// Given
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("PIZZERIA_TEST_FROM_FILE=file\nPIZZERIA_TEST_BOTH=file\n"), 0o600))
		t.Setenv("PIZZERIA_TEST_BOTH", "env")

		// When
		lookup, err := cmd.EnvLookup(path)
		require.NoError(t, err)

		// Then
		v, ok := lookup("PIZZERIA_TEST_FROM_FILE")
		assert.True(t, ok)
		assert.Equal(t, "file", v)

		v, _ = lookup("PIZZERIA_TEST_BOTH")
		assert.Equal(t, "env", v, "the process environment wins")

		_, ok = lookup("PIZZERIA_TEST_MISSING")
		assert.False(t, ok)
	})

	t.Run("missing file is fine", func(t *testing.T) {
		lookup, err := cmd.EnvLookup(filepath.Join(t.TempDir(), "nope.env"))

		require.NoError(t, err)
		require.NotNil(t, lookup)
	})
}
