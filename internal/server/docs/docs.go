// Package docs holds the swagger document served under /swagger/.
// Regenerate with `go generate ./internal/server`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "drAIML Maintainers",
            "url": "https://github.com/draiml/draiml"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/server.HealthResponse"}}}
            }
        },
        "/v1/responses/validate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ethics"],
                "summary": "Validate a generated medical response",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/server.ValidateResponseRequest"}}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/v1/evaluations": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ethics"],
                "summary": "Evaluate a proposed action against the principles",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/server.EvaluateRequest"}}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/v1/conclusions/validate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["logic"],
                "summary": "Validate a conclusion against premises",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/server.ConclusionRequest"}}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/v1/statements/analyze": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["logic"],
                "summary": "Break a statement down into patterns, context and confidence",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/server.AnalyzeRequest"}}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/statements/equivalence": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["logic"],
                "summary": "Compare two statements",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/server.EquivalenceResponse"}}}
            }
        },
        "/v1/confidence": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["confidence"],
                "summary": "Score explicit validation data",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/principles": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ethics"],
                "summary": "List the ethical principles",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/decisions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "List recorded decisions, oldest first",
                "parameters": [{"type": "integer", "description": "most recent N entries", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/sessions": {
            "post": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Start a socratic session",
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/server.SessionResponse"}}}
            }
        },
        "/v1/sessions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Get a socratic session",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.SessionResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["sessions"],
                "summary": "End a socratic session",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/v1/sessions/{id}/premises": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Add a premise to a session",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/server.PremiseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/v1/sessions/{id}/conclusion": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Draw a conclusion in a session",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "server.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string", "example": "session not found"}}
        },
        "server.HealthResponse": {
            "type": "object",
            "properties": {"status": {"type": "string", "example": "ok"}, "decisions": {"type": "integer", "example": 12}}
        },
        "server.ValidateResponseRequest": {
            "type": "object",
            "properties": {
                "response": {"type": "string", "example": "Rest and drink plenty of fluids."},
                "context": {"type": "object"},
                "severity": {"type": "string", "enum": ["mild", "moderate", "severe", "critical"]}
            }
        },
        "server.EvaluateRequest": {
            "type": "object",
            "properties": {
                "action": {"type": "string", "example": "Prescribe ibuprofen for mild back pain."},
                "context": {"type": "object"},
                "severity": {"type": "string", "enum": ["mild", "moderate", "severe", "critical"]}
            }
        },
        "server.ConclusionRequest": {
            "type": "object",
            "properties": {
                "conclusion": {"type": "string"},
                "premises": {"type": "array", "items": {"type": "string"}}
            }
        },
        "server.AnalyzeRequest": {
            "type": "object",
            "properties": {"statement": {"type": "string"}}
        },
        "server.EquivalenceResponse": {
            "type": "object",
            "properties": {"equivalent": {"type": "boolean"}, "overlap": {"type": "number"}}
        },
        "server.PremiseRequest": {
            "type": "object",
            "properties": {"premise": {"type": "string"}}
        },
        "server.SessionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "created_at": {"type": "string"},
                "premises": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "drAIML API",
	Description:      "Medical statement validation: logic soundness, confidence scoring, ethics evaluation and the decision ledger.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
