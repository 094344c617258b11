package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Monitoring Admin Console API",
        "description": "User administration list pages backed by the monitoring API",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Authentication", "description": "Console tokens"},
        {"name": "Users", "description": "User list page"},
        {"name": "User groups", "description": "User group list page"},
        {"name": "Settings", "description": "Global settings used by the list pages"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Incorrect user name or password", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "User list",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "sort", "in": "query", "type": "string", "enum": ["username", "name", "surname", "role_name"]},
                    {"name": "sortorder", "in": "query", "type": "string", "enum": ["ASC", "DESC"]},
                    {"name": "filter_set", "in": "query", "type": "string", "enum": ["1"]},
                    {"name": "filter_rst", "in": "query", "type": "string", "enum": ["1"]},
                    {"name": "filter_username", "in": "query", "type": "string"},
                    {"name": "filter_name", "in": "query", "type": "string"},
                    {"name": "filter_surname", "in": "query", "type": "string"},
                    {"name": "filter_roles", "in": "query", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi"},
                    {"name": "filter_usrgrpids", "in": "query", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi"},
                    {"name": "filter_source", "in": "query", "type": "string", "enum": ["0", "1", "2", "3"]},
                    {"name": "page", "in": "query", "type": "integer", "minimum": 1}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid parameter", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "No permissions", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Monitoring API failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/export": {
            "get": {
                "tags": ["Users"],
                "summary": "Export the current user list page",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "required": true, "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "400": {"description": "Invalid format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/usergroups": {
            "get": {
                "tags": ["User groups"],
                "summary": "User group list",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "sort", "in": "query", "type": "string", "enum": ["name", "user_cnt"]},
                    {"name": "sortorder", "in": "query", "type": "string", "enum": ["ASC", "DESC"]},
                    {"name": "filter_set", "in": "query", "type": "string", "enum": ["1"]},
                    {"name": "filter_rst", "in": "query", "type": "string", "enum": ["1"]},
                    {"name": "filter_name", "in": "query", "type": "string"},
                    {"name": "filter_user_status", "in": "query", "type": "integer", "enum": [-1, 0, 1]},
                    {"name": "page", "in": "query", "type": "integer", "minimum": 1}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "No permissions", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/settings/refresh": {
            "post": {
                "tags": ["Settings"],
                "summary": "Reload global settings",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "No permissions", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "field": {"type": "string"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
