// Package docs holds the OpenAPI description served at /swagger.
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
        "/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.User"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Username and email must both be unique.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Create user",
                "parameters": [
                    {"description": "New user", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.CreateUserInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/users/{userId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get user",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "userId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "put": {
                "description": "Omitted fields are left unchanged. A new username is copied onto the user's thoughts and reactions.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Update user",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "userId", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.UpdateUserInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Deletes the user, the thoughts it authored and its entry in other users' friend lists.",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Delete user",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "userId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.DeleteUserResult"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/users/{userId}/friends/{friendId}": {
            "post": {
                "produces": ["application/json"],
                "tags": ["friends"],
                "summary": "Add friend",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "description": "Friend user ID", "name": "friendId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["friends"],
                "summary": "Remove friend",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "description": "Friend user ID", "name": "friendId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/thoughts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["thoughts"],
                "summary": "List thoughts",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Thought"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "post": {
                "description": "The thought is linked to the user matching both userId and username. If that fails the thought is still created and the response carries a warning.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["thoughts"],
                "summary": "Create thought",
                "parameters": [
                    {"description": "New thought", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.CreateThoughtInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Thought"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/thoughts/{thoughtId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["thoughts"],
                "summary": "Get thought",
                "parameters": [
                    {"type": "string", "description": "Thought ID", "name": "thoughtId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Thought"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["thoughts"],
                "summary": "Update thought text",
                "parameters": [
                    {"type": "string", "description": "Thought ID", "name": "thoughtId", "in": "path", "required": true},
                    {"description": "New text", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.UpdateThoughtInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Thought"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Also removes the thought id from every user's thoughts list.",
                "produces": ["application/json"],
                "tags": ["thoughts"],
                "summary": "Delete thought",
                "parameters": [
                    {"type": "string", "description": "Thought ID", "name": "thoughtId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.DeleteThoughtResult"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/thoughts/{thoughtId}/reactions": {
            "post": {
                "description": "The reaction id is generated by the server.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reactions"],
                "summary": "Add reaction",
                "parameters": [
                    {"type": "string", "description": "Thought ID", "name": "thoughtId", "in": "path", "required": true},
                    {"description": "Reaction", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.AddReactionInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Thought"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/thoughts/{thoughtId}/reactions/{reactionId}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["reactions"],
                "summary": "Remove reaction",
                "parameters": [
                    {"type": "string", "description": "Thought ID", "name": "thoughtId", "in": "path", "required": true},
                    {"type": "string", "description": "Reaction ID", "name": "reactionId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Thought"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/ws/events": {
            "get": {
                "tags": ["events"],
                "summary": "Domain event stream",
                "parameters": [
                    {"type": "string", "description": "User ID to follow", "name": "follow", "in": "query"}
                ],
                "responses": {
                    "101": {"description": "Switching Protocols", "schema": {"type": "string"}},
                    "426": {"description": "Upgrade Required", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "string"},
                "error": {"type": "string"},
                "field": {"type": "string"}
            }
        },
        "models.Reaction": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "reactionBody": {"type": "string"},
                "reactionId": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "models.Thought": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "id": {"type": "string"},
                "reactionCount": {"type": "integer"},
                "reactions": {"type": "array", "items": {"$ref": "#/definitions/models.Reaction"}},
                "thoughtText": {"type": "string"},
                "username": {"type": "string"},
                "warning": {"type": "string"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "friendCount": {"type": "integer"},
                "friends": {"type": "array", "items": {"type": "string"}},
                "id": {"type": "string"},
                "thoughts": {"type": "array", "items": {"type": "string"}},
                "username": {"type": "string"},
                "warning": {"type": "string"}
            }
        },
        "service.AddReactionInput": {
            "type": "object",
            "required": ["reactionBody", "username"],
            "properties": {
                "reactionBody": {"type": "string", "maxLength": 280},
                "username": {"type": "string"}
            }
        },
        "service.CreateThoughtInput": {
            "type": "object",
            "required": ["thoughtText", "userId", "username"],
            "properties": {
                "thoughtText": {"type": "string", "maxLength": 280},
                "userId": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "service.CreateUserInput": {
            "type": "object",
            "required": ["email", "username"],
            "properties": {
                "email": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "service.DeleteThoughtResult": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "warning": {"type": "string"}
            }
        },
        "service.DeleteUserResult": {
            "type": "object",
            "properties": {
                "deletedThoughts": {"type": "integer"},
                "message": {"type": "string"},
                "warning": {"type": "string"}
            }
        },
        "service.UpdateThoughtInput": {
            "type": "object",
            "required": ["thoughtText"],
            "properties": {
                "thoughtText": {"type": "string", "maxLength": 280}
            }
        },
        "service.UpdateUserInput": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "username": {"type": "string"}
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
	Title:            "Socialnet API",
	Description:      "Users, thoughts, reactions and friend lists.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
