// Package docs registers the OpenAPI document served at /v1/swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
                "tags": ["health"],
                "summary": "Store and cache status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/jobs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Filter and paginate the caller's job applications",
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "List jobs",
                "parameters": [
                    {"type": "string", "description": "Exact position", "name": "search", "in": "query"},
                    {"type": "string", "description": "pending, interview, declined or all", "name": "status", "in": "query"},
                    {"type": "string", "description": "full-time, part-time, remote, internship or all", "name": "jobType", "in": "query"},
                    {"type": "string", "description": "latest, oldest, a-z or z-a", "name": "sort", "in": "query"},
                    {"type": "integer", "description": "Page number (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (default 4)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Record a new application. Missing status, jobType, jobLocation and meetingType take their defaults.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Create a job",
                "parameters": [
                    {"description": "Job JSON", "name": "job", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.JobInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/jobs/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Status histogram plus applications per month for the latest six months with data",
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Application statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/jobs/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Get a job",
                "parameters": [
                    {"type": "string", "description": "Job ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "description": "Partial update; fields left out of the body are unchanged",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Update a job",
                "parameters": [
                    {"type": "string", "description": "Job ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "job", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.JobPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Delete a job",
                "parameters": [
                    {"type": "string", "description": "Job ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "domain.JobInput": {
            "type": "object",
            "required": ["company", "position"],
            "properties": {
                "company": {"type": "string", "maxLength": 50},
                "position": {"type": "string", "maxLength": 100},
                "status": {"type": "string", "enum": ["pending", "interview", "declined"]},
                "jobType": {"type": "string", "enum": ["full-time", "part-time", "remote", "internship"]},
                "jobLocation": {"type": "string"},
                "meetingType": {"type": "string", "enum": ["Zoom", "Skype", "Office", "Meet"]}
            }
        },
        "domain.JobPatch": {
            "type": "object",
            "properties": {
                "company": {"type": "string", "maxLength": 50},
                "position": {"type": "string", "maxLength": 100},
                "status": {"type": "string", "enum": ["pending", "interview", "declined"]},
                "jobType": {"type": "string", "enum": ["full-time", "part-time", "remote", "internship"]},
                "jobLocation": {"type": "string"},
                "meetingType": {"type": "string", "enum": ["Zoom", "Skype", "Office", "Meet"]}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {},
                "error": {},
                "request_id": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Job Tracker API",
	Description:      "Per-user job application tracker: filtered listing, pagination and statistics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
