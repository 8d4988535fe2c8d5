// Package docs holds the OpenAPI description served under /swagger.
// Regenerate with `swag init -g cmd/api/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "HandyHands",
            "email": "info@handyhands.cz"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/forms": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Forms"],
                "summary": "List services",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.ServiceSummaryDTO"}}
                    }
                }
            }
        },
        "/forms/{serviceType}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Forms"],
                "summary": "Get service form configuration",
                "parameters": [
                    {"type": "string", "description": "Service type", "name": "serviceType", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            }
        },
        "/regions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Forms"],
                "summary": "List regions",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/region.Option"}}
                    }
                }
            }
        },
        "/start-date/{serviceType}": {
            "get": {
                "description": "Earliest day the service can start. Hourly services need one day of notice, recurring ones ten.",
                "produces": ["application/json"],
                "tags": ["Forms"],
                "summary": "Get minimum start date",
                "parameters": [
                    {"type": "string", "description": "Service type", "name": "serviceType", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.StartDateDTO"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            }
        },
        "/quotes": {
            "get": {
                "description": "Decodes the hash. A start date that is no longer allowed is moved to the earliest allowed day and the returned hash carries the correction.",
                "produces": ["application/json"],
                "tags": ["Quotes"],
                "summary": "Load a quote from its hash",
                "parameters": [
                    {"type": "string", "description": "Quote hash", "name": "hash", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.QuoteDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            },
            "put": {
                "description": "Merges contact details, start date and the order note into the quote and returns a new hash.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Quotes"],
                "summary": "Update a quote",
                "parameters": [
                    {"description": "Details to merge", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.UpdateQuoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.QuoteDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            }
        },
        "/quotes/{serviceType}": {
            "post": {
                "description": "Prices the form answers and returns the quote with its shareable hash.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Quotes"],
                "summary": "Calculate a quote",
                "parameters": [
                    {"type": "string", "description": "Service type", "name": "serviceType", "in": "path", "required": true},
                    {"description": "Form answers", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.CalculateQuoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.QuoteDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.APIError"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            }
        },
        "/offers": {
            "post": {
                "description": "Confirms the quote, archives the offer document and notifies the office. The customer gets a copy on request.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Offers"],
                "summary": "Submit an offer",
                "parameters": [
                    {"description": "Final quote details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.SubmitOfferRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.SubmissionDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.APIError"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/domain.APIError"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            }
        },
        "/offers/preview": {
            "get": {
                "produces": ["text/html"],
                "tags": ["Offers"],
                "summary": "Preview the offer document",
                "parameters": [
                    {"type": "string", "description": "Quote hash", "name": "hash", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "Offer document", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            }
        }
    },
    "definitions": {
        "domain.APIError": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "detail": {"type": "string"},
                "errors": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "domain.ServiceSummaryDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "billing": {"type": "string", "enum": ["monthly", "hourly"]},
                "basePrice": {"type": "number"}
            }
        },
        "domain.StartDateDTO": {
            "type": "object",
            "properties": {
                "serviceType": {"type": "string"},
                "category": {"type": "string"},
                "leadDays": {"type": "integer"},
                "minimumStartDate": {"type": "string", "example": "2025-05-22"}
            }
        },
        "region.Option": {
            "type": "object",
            "properties": {
                "value": {"type": "string"},
                "label": {"type": "string"},
                "coefficient": {"type": "number"}
            }
        },
        "domain.CalculateQuoteRequest": {
            "type": "object",
            "required": ["formData"],
            "properties": {
                "formData": {"type": "object"}
            }
        },
        "domain.ContactInput": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "companyName": {"type": "string"},
                "companyId": {"type": "string"},
                "vatId": {"type": "string"},
                "street": {"type": "string"},
                "city": {"type": "string"},
                "postalCode": {"type": "string"},
                "propertyStreet": {"type": "string"},
                "propertyCity": {"type": "string"}
            }
        },
        "domain.UpdateQuoteRequest": {
            "type": "object",
            "required": ["hash"],
            "properties": {
                "hash": {"type": "string"},
                "contact": {"$ref": "#/definitions/domain.ContactInput"},
                "startDate": {"type": "string", "example": "2025-06-02"},
                "confirmationStepNote": {"type": "string"}
            }
        },
        "domain.SubmitOfferRequest": {
            "type": "object",
            "required": ["hash"],
            "properties": {
                "hash": {"type": "string"},
                "contact": {"$ref": "#/definitions/domain.ContactInput"},
                "startDate": {"type": "string", "example": "2025-06-02"},
                "confirmationStepNote": {"type": "string"},
                "sendCopy": {"type": "boolean"}
            }
        },
        "domain.QuoteDTO": {
            "type": "object",
            "properties": {
                "hash": {"type": "string"},
                "serviceType": {"type": "string"},
                "serviceTitle": {"type": "string"},
                "currency": {"type": "string"},
                "result": {"type": "object"},
                "displayPrice": {"type": "number"},
                "formData": {"type": "object"},
                "startDate": {"type": "string"},
                "originFormNote": {"type": "string"},
                "confirmationStepNote": {"type": "string"},
                "contact": {"$ref": "#/definitions/domain.ContactInput"}
            }
        },
        "domain.SubmissionDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "orderId": {"type": "string"},
                "serviceType": {"type": "string"},
                "serviceTitle": {"type": "string"},
                "customerName": {"type": "string"},
                "customerEmail": {"type": "string"},
                "totalPrice": {"type": "number"},
                "currency": {"type": "string"},
                "startDate": {"type": "string"},
                "documentPath": {"type": "string"},
                "emailSent": {"type": "boolean"},
                "createdAt": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "HandyHands Calculator API",
	Description:      "Cleaning service quotes: form configurations, price calculation, shareable quote hashes and offer submission.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
