// Package docs holds the OpenAPI document served under /swagger.
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
    "parameters": {
        "sessionId": {
            "name": "id",
            "in": "path",
            "required": true,
            "type": "string",
            "description": "Session ID"
        }
    },
    "paths": {
        "/api/points": {
            "get": {
                "tags": [
                    "points"
                ],
                "summary": "List metric points",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "default": 1,
                        "description": "Page, 1-based",
                        "name": "page",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "default": 100,
                        "description": "Page size",
                        "name": "size",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/pagination.OffsetResult-domain_MetricPoint"
                        }
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                }
            }
        },
        "/api/sessions": {
            "post": {
                "tags": [
                    "sessions"
                ],
                "summary": "Open a dashboard session",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "settings",
                        "in": "body",
                        "required": false,
                        "schema": {
                            "$ref": "#/definitions/dashboard.SettingsRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dashboard.Snapshot"
                        }
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                }
            }
        },
        "/api/sessions/{id}": {
            "get": {
                "tags": [
                    "sessions"
                ],
                "summary": "Get session state",
                "parameters": [
                    {
                        "$ref": "#/parameters/sessionId"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dashboard.Snapshot"
                        }
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            },
            "delete": {
                "tags": [
                    "sessions"
                ],
                "summary": "Close a session",
                "parameters": [
                    {
                        "$ref": "#/parameters/sessionId"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            }
        },
        "/api/sessions/{id}/scene": {
            "get": {
                "tags": [
                    "sessions"
                ],
                "summary": "Render the dashboard",
                "parameters": [
                    {
                        "$ref": "#/parameters/sessionId"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            }
        },
        "/api/sessions/{id}/fingerprints": {
            "get": {
                "tags": [
                    "sessions"
                ],
                "summary": "Document fingerprints",
                "parameters": [
                    {
                        "$ref": "#/parameters/sessionId"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            }
        },
        "/api/sessions/{id}/events": {
            "post": {
                "tags": [
                    "sessions"
                ],
                "summary": "Dispatch a user event",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "$ref": "#/parameters/sessionId"
                    },
                    {
                        "name": "event",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dashboard.EventRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/router.EventResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            }
        },
        "/api/sessions/{id}/clear": {
            "post": {
                "tags": [
                    "sessions"
                ],
                "summary": "Clear every selection",
                "parameters": [
                    {
                        "$ref": "#/parameters/sessionId"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            }
        },
        "/api/sessions/{id}/settings": {
            "put": {
                "tags": [
                    "sessions"
                ],
                "summary": "Change weight, sort or mode",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "$ref": "#/parameters/sessionId"
                    },
                    {
                        "name": "settings",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dashboard.SettingsRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dashboard.Snapshot"
                        }
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            }
        },
        "/api/sessions/{id}/hover": {
            "put": {
                "tags": [
                    "sessions"
                ],
                "summary": "Hover a fingerprint segment",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "$ref": "#/parameters/sessionId"
                    },
                    {
                        "name": "hover",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/fpview.HoverState"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            },
            "delete": {
                "tags": [
                    "sessions"
                ],
                "summary": "Mouse leave",
                "parameters": [
                    {
                        "$ref": "#/parameters/sessionId"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            }
        },
        "/api/sessions/{id}/charts/correlation.svg": {
            "get": {
                "tags": [
                    "charts"
                ],
                "summary": "Correlation scatter as SVG",
                "produces": [
                    "image/svg+xml"
                ],
                "parameters": [
                    {
                        "$ref": "#/parameters/sessionId"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            }
        },
        "/api/sessions/{id}/charts/distribution/{metric}": {
            "get": {
                "tags": [
                    "charts"
                ],
                "summary": "Metric histogram as SVG",
                "produces": [
                    "image/svg+xml"
                ],
                "parameters": [
                    {
                        "$ref": "#/parameters/sessionId"
                    },
                    {
                        "name": "metric",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "llm.svg or similarity.svg"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            }
        },
        "/api/generate": {
            "post": {
                "tags": [
                    "generation"
                ],
                "summary": "Run one live generation",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/generation.Request"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "409": {
                        "description": "Conflict"
                    },
                    "501": {
                        "description": "Not Implemented"
                    }
                }
            }
        }
    },
    "definitions": {
        "domain.RetrievedDoc": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "score": {
                    "type": "number"
                },
                "index": {
                    "type": "integer"
                },
                "text": {
                    "type": "string"
                },
                "chunkId": {
                    "type": "string"
                }
            }
        },
        "domain.MetricPoint": {
            "type": "object",
            "properties": {
                "runId": {
                    "type": "string"
                },
                "questionId": {
                    "type": "string"
                },
                "questionText": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                },
                "llmScore": {
                    "type": "number"
                },
                "avgSimilarity": {
                    "type": "number"
                },
                "humanFlags": {
                    "type": "integer"
                },
                "configModel": {
                    "type": "string"
                },
                "configTopK": {
                    "type": "integer"
                },
                "retrievedDocs": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.RetrievedDoc"
                    }
                }
            }
        },
        "dashboard.SettingsRequest": {
            "type": "object",
            "properties": {
                "severityWeight": {
                    "type": "number"
                },
                "sortBy": {
                    "type": "string",
                    "enum": [
                        "severity",
                        "flags",
                        "poor",
                        "retrieved"
                    ]
                },
                "mode": {
                    "type": "string",
                    "enum": [
                        "highlight",
                        "filter"
                    ]
                }
            }
        },
        "dashboard.Snapshot": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "state": {
                    "type": "object"
                },
                "severityWeight": {
                    "type": "number"
                },
                "sortBy": {
                    "type": "string"
                },
                "pointCount": {
                    "type": "integer"
                },
                "detailRunId": {
                    "type": "string"
                }
            }
        },
        "dashboard.EventRequest": {
            "type": "object",
            "properties": {
                "type": {
                    "type": "string",
                    "enum": [
                        "region",
                        "point",
                        "bin",
                        "chunk",
                        "document",
                        "close",
                        "mode",
                        "clear"
                    ]
                },
                "region": {
                    "type": "object"
                },
                "runIds": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "runId": {
                    "type": "string"
                },
                "metric": {
                    "type": "string"
                },
                "bin": {
                    "type": "integer"
                },
                "chunkKey": {
                    "type": "string"
                },
                "docTitle": {
                    "type": "string"
                },
                "mode": {
                    "type": "string"
                }
            }
        },
        "fpview.HoverState": {
            "type": "object",
            "properties": {
                "docTitle": {
                    "type": "string"
                },
                "chunkKey": {
                    "type": "string"
                },
                "x": {
                    "type": "number"
                },
                "y": {
                    "type": "number"
                }
            }
        },
        "generation.Request": {
            "type": "object",
            "properties": {
                "question": {
                    "type": "string"
                },
                "systemPrompt": {
                    "type": "string"
                },
                "topK": {
                    "type": "integer"
                },
                "model": {
                    "type": "string"
                }
            }
        },
        "pagination.OffsetResult-domain_MetricPoint": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.MetricPoint"
                    }
                },
                "total": {
                    "type": "integer"
                },
                "page": {
                    "type": "integer"
                },
                "size": {
                    "type": "integer"
                },
                "hasMore": {
                    "type": "boolean"
                }
            }
        },
        "router.EventResponse": {
            "type": "object",
            "properties": {
                "state": {
                    "type": "object"
                },
                "navigateTo": {
                    "type": "string"
                },
                "detailRunId": {
                    "type": "string"
                }
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
	Title:            "RAG Lens API",
	Description:      "Diagnostics dashboard for retrieval-augmented generation runs",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
