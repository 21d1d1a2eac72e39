// Package swagger registers the OpenAPI document served at /swagger/*. The
// document is maintained by hand; keep it in step with the @Router annotations
// on the HTTP handlers.
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/accounts": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Register account",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterAccountRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/AccountResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/sessions": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Sign in",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SignInRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AccountResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/contracts": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["contracts"],
                "summary": "Create contract",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateContractRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ContractResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/contracts/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["contracts"],
                "summary": "Get contract",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ContractResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["contracts"],
                "summary": "Update contract",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateContractRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ContractResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/contracts/{id}/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["contracts"],
                "summary": "Get contract history",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/HistoryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/orders": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Place order",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateOrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/OrderResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/invoices": {
            "get": {
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "List invoices",
                "parameters": [
                    {"type": "string", "name": "contract_number", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ListInvoicesResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/invoices/{original_order_id}/status": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Change invoice status",
                "parameters": [
                    {"type": "integer", "name": "original_order_id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangeStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/InvoiceOrderResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string", "example": "contract not found"}}
        },
        "RegisterAccountRequest": {
            "type": "object",
            "required": ["email", "full_name", "password"],
            "properties": {
                "email": {"type": "string"},
                "full_name": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "SignInRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "AccountResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "full_name": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "CreateContractRequest": {
            "type": "object",
            "required": ["contract_number", "email", "full_name", "finished_at"],
            "properties": {
                "contract_number": {"type": "string", "example": "HD-NEW"},
                "email": {"type": "string"},
                "full_name": {"type": "string"},
                "finished_at": {"type": "string"}
            }
        },
        "UpdateContractRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "full_name": {"type": "string"},
                "finished_at": {"type": "string"},
                "status": {"type": "string", "enum": ["Active", "Terminated"]}
            }
        },
        "ContractResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "contract_number": {"type": "string"},
                "email": {"type": "string"},
                "full_name": {"type": "string"},
                "status": {"type": "string"},
                "created_at": {"type": "string"},
                "finished_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "HistoryResponse": {
            "type": "object",
            "properties": {
                "contract_id": {"type": "integer"},
                "entries": {"type": "array", "items": {"$ref": "#/definitions/HistoryEntryResponse"}}
            }
        },
        "HistoryEntryResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "contract_id": {"type": "integer"},
                "action": {"type": "string"},
                "old_value": {"type": "object"},
                "new_value": {"type": "object"},
                "timestamp": {"type": "string"},
                "changed_by": {"type": "string"},
                "correlation_id": {"type": "string"}
            }
        },
        "CreateOrderRequest": {
            "type": "object",
            "required": ["contract_id", "email", "full_name", "start_date", "end_date", "topup_fee"],
            "properties": {
                "contract_id": {"type": "integer"},
                "email": {"type": "string"},
                "full_name": {"type": "string"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "topup_fee": {"type": "integer", "example": 500000}
            }
        },
        "OrderResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "contract_id": {"type": "integer"},
                "contract_number": {"type": "string"},
                "topup_fee": {"type": "integer"}
            }
        },
        "ChangeStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {"status": {"type": "string", "enum": ["Paid", "Cancelled"]}}
        },
        "InvoiceOrderResponse": {
            "type": "object",
            "properties": {
                "original_order_id": {"type": "integer"},
                "contract_number": {"type": "string"},
                "email": {"type": "string"},
                "full_name": {"type": "string"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "amount": {"type": "integer"},
                "status": {"type": "string"},
                "is_reminder_sent": {"type": "boolean"},
                "created_at": {"type": "string"}
            }
        },
        "ListInvoicesResponse": {
            "type": "object",
            "properties": {
                "contract_number": {"type": "string"},
                "invoices": {"type": "array", "items": {"$ref": "#/definitions/InvoiceOrderResponse"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "ContractHub API",
	Description:      "Accounts, contracts, orders, invoices and contract history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
