// Package docs registers the OpenAPI description served at /swagger/.
// Regenerate with: swag init -g cmd/evently/main.go -o docs
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
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/helpers.MessageResponse"}},
                    "400": {"description": "code: bad_request or conflict", "schema": {"$ref": "#/definitions/helpers.APIError"}},
                    "429": {"description": "code: too_many_requests", "schema": {"$ref": "#/definitions/helpers.APIError"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.LoginResult"}},
                    "400": {"description": "code: bad_request or invalid_credentials", "schema": {"$ref": "#/definitions/helpers.APIError"}},
                    "429": {"description": "code: too_many_requests", "schema": {"$ref": "#/definitions/helpers.APIError"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.PublicUser"}},
                    "401": {"description": "code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIError"}}
                }
            }
        },
        "/auth/change-role/{userId}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Promote a user to organizer",
                "parameters": [{"type": "string", "description": "User ID (UUID)", "name": "userId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ChangeRoleResponse"}},
                    "400": {"description": "code: invalid_state", "schema": {"$ref": "#/definitions/helpers.APIError"}},
                    "401": {"description": "code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIError"}},
                    "403": {"description": "code: forbidden", "schema": {"$ref": "#/definitions/helpers.APIError"}},
                    "404": {"description": "code: not_found", "schema": {"$ref": "#/definitions/helpers.APIError"}}
                }
            }
        },
        "/auth/forgot-password": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Request a password reset code",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.ForgotPasswordRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.MessageResponse"}},
                    "404": {"description": "code: not_found", "schema": {"$ref": "#/definitions/helpers.APIError"}}
                }
            }
        },
        "/auth/reset-password": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Reset a password",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.ResetPasswordRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.MessageResponse"}},
                    "400": {"description": "code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIError"}}
                }
            }
        },
        "/events": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List events",
                "parameters": [
                    {"type": "string", "description": "Title substring", "name": "title", "in": "query"},
                    {"type": "string", "description": "Day, e.g. 2025-05-10", "name": "date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Event"}}},
                    "400": {"description": "code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIError"}}
                }
            }
        },
        "/events/create": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Create an event",
                "parameters": [
                    {"type": "string", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "name": "description", "in": "formData", "required": true},
                    {"type": "string", "name": "date", "in": "formData", "required": true},
                    {"type": "string", "name": "location", "in": "formData", "required": true},
                    {"enum": ["Academic", "Tech and Innovation", "Cultural & Entertainment", "Festival", "Sports"], "type": "string", "name": "category", "in": "formData", "required": true},
                    {"type": "string", "name": "registrationLink", "in": "formData"},
                    {"type": "file", "name": "eventImage", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.CreateEventResponse"}},
                    "400": {"description": "code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIError"}},
                    "401": {"description": "code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIError"}},
                    "403": {"description": "code: forbidden", "schema": {"$ref": "#/definitions/helpers.APIError"}}
                }
            }
        },
        "/events/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Get an event",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Event"}},
                    "404": {"description": "code: not_found", "schema": {"$ref": "#/definitions/helpers.APIError"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Update an event",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "title", "in": "formData"},
                    {"type": "string", "name": "description", "in": "formData"},
                    {"type": "string", "name": "date", "in": "formData"},
                    {"type": "string", "name": "location", "in": "formData"},
                    {"type": "string", "name": "category", "in": "formData"},
                    {"type": "string", "name": "registrationLink", "in": "formData"},
                    {"type": "file", "name": "eventImage", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Event"}},
                    "400": {"description": "code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIError"}},
                    "401": {"description": "code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIError"}},
                    "403": {"description": "code: forbidden", "schema": {"$ref": "#/definitions/helpers.APIError"}},
                    "404": {"description": "code: not_found", "schema": {"$ref": "#/definitions/helpers.APIError"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Delete an event",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.MessageResponse"}},
                    "401": {"description": "code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIError"}},
                    "403": {"description": "code: forbidden", "schema": {"$ref": "#/definitions/helpers.APIError"}},
                    "404": {"description": "code: not_found", "schema": {"$ref": "#/definitions/helpers.APIError"}}
                }
            }
        },
        "/events/{id}/register": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["attendance"],
                "summary": "Attend an event",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.EventRegistration"}},
                    "400": {"description": "code: invalid_state", "schema": {"$ref": "#/definitions/helpers.APIError"}},
                    "404": {"description": "code: not_found", "schema": {"$ref": "#/definitions/helpers.APIError"}}
                }
            }
        },
        "/events/{id}/unregister": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["attendance"],
                "summary": "Stop attending an event",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.MessageResponse"}},
                    "400": {"description": "code: invalid_state", "schema": {"$ref": "#/definitions/helpers.APIError"}}
                }
            }
        },
        "/users/me/registrations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["attendance"],
                "summary": "Events the current user attends",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.EventRegistrationWithEvent"}}},
                    "401": {"description": "code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIError"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.RegisterRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}
        },
        "controllers.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "controllers.ForgotPasswordRequest": {
            "type": "object",
            "required": ["email"],
            "properties": {"email": {"type": "string"}}
        },
        "controllers.ResetPasswordRequest": {
            "type": "object",
            "required": ["email", "code", "password"],
            "properties": {"email": {"type": "string"}, "code": {"type": "string"}, "password": {"type": "string"}}
        },
        "controllers.ChangeRoleResponse": {
            "type": "object",
            "properties": {"msg": {"type": "string"}, "user": {"$ref": "#/definitions/domain.PublicUser"}}
        },
        "controllers.CreateEventResponse": {
            "type": "object",
            "properties": {"msg": {"type": "string"}, "event": {"$ref": "#/definitions/domain.Event"}}
        },
        "helpers.APIError": {
            "type": "object",
            "properties": {"msg": {"type": "string"}, "code": {"type": "string"}}
        },
        "helpers.MessageResponse": {
            "type": "object",
            "properties": {"msg": {"type": "string"}}
        },
        "domain.PublicUser": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["attendee", "organizer"]}
            }
        },
        "domain.LoginResult": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "user": {"$ref": "#/definitions/domain.PublicUser"}}
        },
        "domain.Organizer": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}}
        },
        "domain.Attendee": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "name": {"type": "string"}}
        },
        "domain.Event": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "date": {"type": "string"},
                "location": {"type": "string"},
                "category": {"type": "string"},
                "registrationLink": {"type": "string"},
                "organizer": {"$ref": "#/definitions/domain.Organizer"},
                "image": {"type": "string"},
                "attendees": {"type": "array", "items": {"$ref": "#/definitions/domain.Attendee"}},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "domain.EventRegistration": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "eventId": {"type": "string"},
                "userId": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "domain.EventRegistrationWithEvent": {
            "type": "object",
            "properties": {
                "registration": {"$ref": "#/definitions/domain.EventRegistration"},
                "event": {"$ref": "#/definitions/domain.Event"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Evently API",
	Description:      "University event management: accounts, event publishing and attendance.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
