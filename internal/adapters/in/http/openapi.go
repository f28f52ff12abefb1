package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

// Swagger instance names, one per service API.
const (
	OrderDocName    = "order"
	PaymentDocName  = "payment"
	DeliveryDocName = "delivery"
)

type apiDoc string

func (d apiDoc) ReadDoc() string {
	return string(d)
}

func init() {
	swag.Register(OrderDocName, apiDoc(orderDoc))
	swag.Register(PaymentDocName, apiDoc(paymentDoc))
	swag.Register(DeliveryDocName, apiDoc(deliveryDoc))
}

// NewRequestValidator checks requests against the operations of a Swagger 2.0
// document. Requests that match no operation pass through untouched; a request whose
// body or parameters break the schema gets 400 with an Error body.
func NewRequestValidator(doc string) (echo.MiddlewareFunc, error) {
	var doc2 openapi2.T
	if err := json.Unmarshal([]byte(doc), &doc2); err != nil {
		return nil, fmt.Errorf("parse api document: %w", err)
	}
	doc3, err := openapi2conv.ToV3(&doc2)
	if err != nil {
		return nil, fmt.Errorf("convert api document: %w", err)
	}
	router, err := legacy.NewRouter(doc3)
	if err != nil {
		return nil, fmt.Errorf("build api router: %w", err)
	}
	return validateRequests(router), nil
}

func validateRequests(router routers.Router) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			err = openapi3filter.ValidateRequest(req.Context(), &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
			})
			if err != nil {
				return c.JSON(http.StatusBadRequest, Error{
					Code:    http.StatusBadRequest,
					Message: err.Error(),
				})
			}
			return next(c)
		}
	}
}

const orderDoc = `{
  "swagger": "2.0",
  "info": {
    "title": "Order Service API",
    "description": "Accepts pizza orders, charges the customer and hands paid orders to the kitchen.",
    "version": "2.0.0"
  },
  "consumes": ["application/json"],
  "produces": ["application/json"],
  "paths": {
    "/orders": {
      "post": {
        "operationId": "placeOrder",
        "summary": "Place an order (unversioned alias of v1)",
        "parameters": [{"in": "body", "name": "order", "required": false, "schema": {"$ref": "#/definitions/OrderRequest"}}],
        "responses": {
          "201": {"description": "Order accepted", "schema": {"$ref": "#/definitions/OrderResponse"}},
          "400": {"description": "Invalid request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
          "402": {"description": "Payment declined", "schema": {"$ref": "#/definitions/OrderResponse"}},
          "503": {"description": "Payment system unavailable", "schema": {"$ref": "#/definitions/OrderResponse"}}
        }
      }
    },
    "/api/v1/orders": {
      "post": {
        "operationId": "placeOrderV1",
        "summary": "Place an order",
        "parameters": [{"in": "body", "name": "order", "required": false, "schema": {"$ref": "#/definitions/OrderRequest"}}],
        "responses": {
          "201": {"description": "Order accepted", "schema": {"$ref": "#/definitions/OrderResponse"}},
          "400": {"description": "Invalid request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
          "402": {"description": "Payment declined", "schema": {"$ref": "#/definitions/OrderResponse"}},
          "503": {"description": "Payment system unavailable", "schema": {"$ref": "#/definitions/OrderResponse"}}
        }
      }
    },
    "/api/v2/orders": {
      "post": {
        "operationId": "placeOrderV2",
        "summary": "Place an order, answering with api version and timestamp",
        "parameters": [{"in": "body", "name": "order", "required": false, "schema": {"$ref": "#/definitions/OrderRequest"}}],
        "responses": {
          "201": {"description": "Order accepted", "schema": {"$ref": "#/definitions/OrderResponseV2"}},
          "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/ValidationErrorV2"}},
          "402": {"description": "Payment declined", "schema": {"$ref": "#/definitions/OrderResponseV2"}},
          "503": {"description": "Payment system unavailable", "schema": {"$ref": "#/definitions/OrderResponseV2"}}
        }
      }
    },
    "/orders/health": {
      "get": {
        "operationId": "orderHealth",
        "produces": ["text/plain"],
        "responses": {"200": {"description": "Service is running", "schema": {"type": "string"}}}
      }
    },
    "/api/v2/orders/health": {
      "get": {
        "operationId": "orderHealthV2",
        "responses": {"200": {"description": "Service is running", "schema": {"$ref": "#/definitions/HealthV2"}}}
      }
    }
  },
  "definitions": {
    "OrderRequest": {
      "type": "object",
      "properties": {
        "pizza": {"type": "string", "example": "Margherita"},
        "quantity": {"type": "integer", "example": 2},
        "address": {"type": "string", "example": "Main Street 10"},
        "customerName": {"type": "string", "example": "John Doe"}
      }
    },
    "OrderResponse": {
      "type": "object",
      "properties": {
        "orderId": {"type": "string"},
        "status": {"type": "string", "enum": ["SUCCESS", "PAYMENT_FAILED", "ERROR"]},
        "message": {"type": "string"}
      }
    },
    "OrderResponseV2": {
      "type": "object",
      "properties": {
        "orderId": {"type": "string"},
        "status": {"type": "string", "enum": ["SUCCESS", "PAYMENT_FAILED", "ERROR"]},
        "message": {"type": "string"},
        "apiVersion": {"type": "string"},
        "timestamp": {"type": "string"}
      }
    },
    "ValidationErrorV2": {
      "type": "object",
      "properties": {
        "status": {"type": "string"},
        "errors": {"type": "object", "additionalProperties": {"type": "string"}},
        "apiVersion": {"type": "string"},
        "timestamp": {"type": "string"}
      }
    },
    "HealthV2": {
      "type": "object",
      "properties": {
        "status": {"type": "string"},
        "service": {"type": "string"},
        "version": {"type": "string"},
        "timestamp": {"type": "string"}
      }
    }
  }
}`

const paymentDoc = `{
  "swagger": "2.0",
  "info": {
    "title": "Payment Gateway API",
    "description": "Simulated payment provider. Charges are approved or declined after a short delay.",
    "version": "1.0.0"
  },
  "consumes": ["application/json"],
  "produces": ["application/json"],
  "paths": {
    "/pay": {
      "post": {
        "operationId": "charge",
        "summary": "Charge a customer for an order",
        "parameters": [{"in": "body", "name": "charge", "required": false, "schema": {"$ref": "#/definitions/ChargeRequest"}}],
        "responses": {
          "200": {"description": "Charge approved", "schema": {"$ref": "#/definitions/ChargeResult"}},
          "400": {"description": "Invalid request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
          "402": {"description": "Charge declined", "schema": {"$ref": "#/definitions/ChargeResult"}}
        }
      }
    },
    "/health": {
      "get": {
        "operationId": "paymentHealth",
        "produces": ["text/plain"],
        "responses": {"200": {"description": "Service is running", "schema": {"type": "string"}}}
      }
    }
  },
  "definitions": {
    "ChargeRequest": {
      "type": "object",
      "properties": {
        "orderId": {"type": "string"},
        "customerName": {"type": "string"},
        "amount": {"type": "number", "example": 31.98}
      }
    },
    "ChargeResult": {
      "type": "object",
      "properties": {
        "transactionId": {"type": "string"},
        "success": {"type": "boolean"},
        "message": {"type": "string"}
      }
    }
  }
}`

const deliveryDoc = `{
  "swagger": "2.0",
  "info": {
    "title": "Delivery Service API",
    "description": "Tracks deliveries from driver assignment to hand-over.",
    "version": "1.0.0"
  },
  "produces": ["application/json"],
  "paths": {
    "/api/v1/deliveries": {
      "get": {
        "operationId": "getAllDeliveries",
        "summary": "All deliveries keyed by order id",
        "responses": {
          "200": {"description": "Deliveries", "schema": {"type": "object", "additionalProperties": {"$ref": "#/definitions/Delivery"}}}
        }
      }
    },
    "/api/v1/deliveries/{orderId}": {
      "get": {
        "operationId": "getDelivery",
        "summary": "Delivery status of one order",
        "parameters": [{"in": "path", "name": "orderId", "required": true, "type": "string"}],
        "responses": {
          "200": {"description": "Delivery found", "schema": {"$ref": "#/definitions/Delivery"}},
          "404": {"description": "No delivery for this order"}
        }
      }
    },
    "/api/v1/deliveries/health": {
      "get": {
        "operationId": "deliveryHealth",
        "produces": ["text/plain"],
        "responses": {"200": {"description": "Service is running", "schema": {"type": "string"}}}
      }
    }
  },
  "definitions": {
    "Delivery": {
      "type": "object",
      "properties": {
        "orderId": {"type": "string"},
        "status": {"type": "string", "enum": ["ASSIGNED", "IN_TRANSIT", "DELIVERED"]},
        "driverName": {"type": "string"},
        "address": {"type": "string"},
        "assignedAt": {"type": "string", "format": "date-time"},
        "estimatedDeliveryTime": {"type": "string", "format": "date-time"},
        "inTransitAt": {"type": "string", "format": "date-time", "x-nullable": true},
        "deliveredAt": {"type": "string", "format": "date-time", "x-nullable": true},
        "targetInTransitTime": {"type": "string", "format": "date-time", "x-nullable": true},
        "targetDeliveredTime": {"type": "string", "format": "date-time", "x-nullable": true}
      }
    }
  }
}`
