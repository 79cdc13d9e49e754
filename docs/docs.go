// Package docs holds the swagger document served under /swagger. It follows
// the layout of `swag init -g cmd/faqbot/serve.go` output and must match the
// handler annotations; router tests check that every route is listed.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        },
        "/api/v1/ask": {
            "post": {
                "description": "Stateless question answering, no session involved",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Ask a single question",
                "parameters": [
                    {"type": "string", "description": "markdown or html", "name": "format", "in": "query"},
                    {"description": "Question", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AskRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AskResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/faqs": {
            "get": {
                "description": "Questions for the widget's quick-action buttons",
                "produces": ["application/json"],
                "tags": ["knowledge"],
                "summary": "List FAQ questions",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.FaqResponse"}}}
                }
            }
        },
        "/api/v1/sessions": {
            "post": {
                "description": "Opens an in-memory chat session that starts with the welcome message",
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Start a chat session",
                "parameters": [
                    {"type": "string", "description": "markdown or html", "name": "format", "in": "query"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.SessionResponse"}}
                }
            }
        },
        "/api/v1/sessions/{id}": {
            "delete": {
                "tags": ["chat"],
                "summary": "End a chat session",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/sessions/{id}/export": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["chat"],
                "summary": "Download the transcript",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/sessions/{id}/messages": {
            "get": {
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Get the transcript",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "markdown or html", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Appends the user message and the bot reply to the session",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Send a message",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "markdown or html", "name": "format", "in": "query"},
                    {"description": "Message", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SendMessageRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ReplyResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Clear the transcript",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.AskRequest": {
            "type": "object",
            "required": ["text"],
            "properties": {"text": {"type": "string"}}
        },
        "dto.AskResponse": {
            "type": "object",
            "properties": {
                "answer": {"type": "string"},
                "category": {"type": "string"},
                "format": {"type": "string"},
                "question": {"type": "string"},
                "source": {"type": "string"},
                "suggestions": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "dto.FaqResponse": {
            "type": "object",
            "properties": {"question": {"type": "string"}}
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "faqs": {"type": "integer"},
                "sessions": {"type": "integer"},
                "status": {"type": "string"}
            }
        },
        "dto.MessageResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "sender": {"type": "string"},
                "text": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "dto.ReplyResponse": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "message": {"$ref": "#/definitions/dto.MessageResponse"},
                "source": {"type": "string"},
                "suggestions": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dto.SendMessageRequest": {
            "type": "object",
            "required": ["text"],
            "properties": {"text": {"type": "string"}}
        },
        "dto.SessionResponse": {
            "type": "object",
            "properties": {
                "format": {"type": "string"},
                "id": {"type": "string"},
                "messages": {"type": "array", "items": {"$ref": "#/definitions/dto.MessageResponse"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Iron Lady FAQ Bot API",
	Description:      "FAQ chatbot for Iron Lady leadership programs",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
