package http

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	deliveriesV1Path    = "/api/v1/deliveries"
	msgDeliveryInternal = "An unexpected error occurred."
)

// DeliveryServer serves the delivery tracker's read side.
type DeliveryServer struct {
	getDeliveryHandler      queries.GetDeliveryQueryHandler
	getAllDeliveriesHandler queries.GetAllDeliveriesQueryHandler
}

func NewDeliveryServer(
	getDeliveryHandler queries.GetDeliveryQueryHandler,
	getAllDeliveriesHandler queries.GetAllDeliveriesQueryHandler,
) *DeliveryServer {
	return &DeliveryServer{
		getDeliveryHandler:      getDeliveryHandler,
		getAllDeliveriesHandler: getAllDeliveriesHandler,
	}
}

// NewDeliveryAPI wires the v1 routes and the permanent redirects from the old
// unversioned /deliveries paths.
func NewDeliveryAPI(s *DeliveryServer, logger *slog.Logger, gatherer prometheus.Gatherer) *echo.Echo {
	e := newEcho(DeliveryServiceName, DeliveryDocName, logger, gatherer)

	e.GET(deliveriesV1Path, s.GetDeliveries)
	e.GET(deliveriesV1Path+"/health", healthHandler(DeliveryServiceName))
	e.GET(deliveriesV1Path+"/:orderId", s.GetDelivery)

	e.GET("/deliveries", redirectTo(func(echo.Context) string { return deliveriesV1Path }))
	e.GET("/deliveries/health", redirectTo(func(echo.Context) string { return deliveriesV1Path + "/health" }))
	e.GET("/deliveries/:orderId", redirectTo(func(c echo.Context) string {
		return deliveriesV1Path + "/" + url.PathEscape(c.Param("orderId"))
	}))
	return e
}

// GetDelivery handles GET /api/v1/deliveries/{orderId}.
func (s *DeliveryServer) GetDelivery(c echo.Context) error {
	var orderID string
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", c.Param("orderId"), &orderID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return c.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid format for parameter orderId: " + err.Error(),
		})
	}

	query, err := queries.NewGetDeliveryQuery(orderID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	snapshot, err := s.getDeliveryHandler.Handle(c.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		c.Logger().Error(err)
		return c.String(http.StatusInternalServerError, msgDeliveryInternal)
	}
	return c.JSON(http.StatusOK, snapshot)
}

// GetDeliveries handles GET /api/v1/deliveries.
func (s *DeliveryServer) GetDeliveries(c echo.Context) error {
	all, err := s.getAllDeliveriesHandler.Handle(c.Request().Context(), queries.NewGetAllDeliveriesQuery())
	if err != nil {
		c.Logger().Error(err)
		return c.String(http.StatusInternalServerError, msgDeliveryInternal)
	}
	return c.JSON(http.StatusOK, all)
}

func redirectTo(location func(echo.Context) string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, location(c))
	}
}
