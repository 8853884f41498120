// Package docs registers the swagger document served under /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/orders": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Place a new order",
                "operationId": "CreateOrder",
                "parameters": [
                    {
                        "name": "order",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreateOrderRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/CreateOrderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/v1/orders/{trackingId}": {
            "get": {
                "produces": ["application/json"],
                "summary": "Report the status of an order",
                "operationId": "TrackOrder",
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "trackingId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TrackOrderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        }
    },
    "definitions": {
        "Address": {
            "type": "object",
            "required": ["city", "postalCode", "street"],
            "properties": {
                "city": {"type": "string"},
                "postalCode": {"type": "string"},
                "street": {"type": "string"}
            }
        },
        "CreateOrderRequest": {
            "type": "object",
            "required": ["address", "customerId", "items", "price", "restaurantId"],
            "properties": {
                "address": {"$ref": "#/definitions/Address"},
                "customerId": {"type": "string", "format": "uuid"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/OrderItem"}},
                "price": {"type": "number"},
                "restaurantId": {"type": "string", "format": "uuid"}
            }
        },
        "CreateOrderResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "orderStatus": {"type": "string"},
                "orderTrackingId": {"type": "string", "format": "uuid"}
            }
        },
        "Error": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"}
            }
        },
        "OrderItem": {
            "type": "object",
            "required": ["price", "productId", "quantity", "subTotal"],
            "properties": {
                "price": {"type": "number"},
                "productId": {"type": "string", "format": "uuid"},
                "quantity": {"type": "integer"},
                "subTotal": {"type": "number"}
            }
        },
        "TrackOrderResponse": {
            "type": "object",
            "properties": {
                "failureMessages": {"type": "array", "items": {"type": "string"}},
                "orderStatus": {"type": "string"},
                "orderTrackingId": {"type": "string", "format": "uuid"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Ordering",
	Description:      "Places food orders and reports their progress through the payment and restaurant approval saga.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
