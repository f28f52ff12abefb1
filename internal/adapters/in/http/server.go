// Package http exposes the order gate, the payment gateway and the delivery tracker
// over echo. Each service gets its own *echo.Echo so the services can listen on
// separate ports, in one process or in several.
package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Error is the body of transport-level failures.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Service display names used by the health endpoints.
const (
	OrderServiceName    = "Order Service"
	PaymentServiceName  = "Payment Service"
	KitchenServiceName  = "Kitchen Service"
	DeliveryServiceName = "Delivery Service"
)

// newEcho builds the common part of every service: panic recovery, request logging,
// /health, /metrics and, when docName is set, the swagger UI under /swagger/.
func newEcho(serviceName, docName string, logger *slog.Logger, gatherer prometheus.Gatherer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger.With("component", "http", "service", serviceName)))

	e.GET("/health", healthHandler(serviceName))
	if gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
	if docName != "" {
		e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(docName)))
	}
	return e
}

func healthHandler(serviceName string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, serviceName+" is running")
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}

// NewKitchenAPI serves only health and metrics; the kitchen has no business endpoints.
func NewKitchenAPI(logger *slog.Logger, gatherer prometheus.Gatherer) *echo.Echo {
	return newEcho(KitchenServiceName, "", logger, gatherer)
}
