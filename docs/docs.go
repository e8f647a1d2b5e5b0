// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.HealthResponse"}}
                }
            }
        },
        "/summarize": {
            "post": {
                "description": "Sends the text and optional instructions to the completion API and returns the summary",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Summary"],
                "summary": "Summarize text",
                "parameters": [
                    {"description": "Text to summarize", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/summary.SummarizeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/summary.SummarizeResponse"}},
                    "400": {"description": "Text content is required", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "500": {"description": "Missing API key or upstream failure", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/share": {
            "post": {
                "description": "Sends one email per recipient concurrently; any failed delivery fails the request",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Summary"],
                "summary": "Share summary via email",
                "parameters": [
                    {"description": "Summary and recipients", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/summary.ShareRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/summary.ShareResponse"}},
                    "400": {"description": "Summary and recipients are required", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "500": {"description": "Missing mail credentials or delivery failure", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "common.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "common.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"},
                "timestamp": {"type": "string"},
                "environment": {"type": "string"}
            }
        },
        "summary.SummarizeRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"},
                "customPrompt": {"type": "string"}
            }
        },
        "summary.SummarizeResponse": {
            "type": "object",
            "properties": {
                "summary": {"type": "string"},
                "originalText": {"type": "string"},
                "customPrompt": {"type": "string"}
            }
        },
        "summary.ShareRequest": {
            "type": "object",
            "properties": {
                "summary": {"type": "string"},
                "recipients": {"type": "array", "items": {"type": "string"}},
                "subject": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "summary.ShareResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "recipients": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Notes Summarizer API",
	Description:      "Summarizes free-form notes with an LLM and shares the summary by email.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
