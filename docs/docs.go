// Package docs registers the OpenAPI document served under /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/u/{identifier}": {
            "get": {
                "tags": ["users"],
                "summary": "User profile page",
                "parameters": [{"name": "identifier", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/tournaments/{tournamentID}": {
            "get": {
                "tags": ["tournaments"],
                "summary": "Tournament by id",
                "parameters": [{"name": "tournamentID", "in": "path", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/to/{nameForUrl}": {
            "get": {
                "tags": ["tournaments"],
                "summary": "Tournaments sharing a URL name",
                "parameters": [
                    {"name": "nameForUrl", "in": "path", "required": true, "type": "string"},
                    {"name": "tab", "in": "query", "type": "string", "enum": ["overview", "teams", "map-pool", "seeds"]}
                ],
                "responses": {"200": {"description": "OK"}, "308": {"description": "Unknown tab removed"}}
            }
        },
        "/to/{nameForUrl}/invite-codes": {
            "get": {
                "tags": ["tournaments"],
                "summary": "Tournaments with team invite codes, organizer only",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "nameForUrl", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}
            }
        },
        "/tournaments/{tournamentID}/seeds": {
            "put": {
                "tags": ["tournaments"],
                "summary": "Replace the seed order",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "tournamentID", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object", "properties": {"seeds": {"type": "array", "items": {"type": "string", "format": "uuid"}}}}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}
            }
        },
        "/tournaments/{tournamentID}/banner": {
            "put": {
                "tags": ["tournaments"],
                "summary": "Upload the tournament banner",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "tournamentID", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "banner", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "503": {"description": "Uploads disabled"}}
            }
        },
        "/tournaments/{tournamentID}/bracket-preview": {
            "get": {
                "tags": ["tournaments"],
                "summary": "Seeded bracket preview",
                "parameters": [{"name": "tournamentID", "in": "path", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Tournament Portal API",
	Description:      "Tournament pages, seeding and user profiles.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
