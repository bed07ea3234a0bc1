package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Remedial Timetable API",
        "description": "Remedial class timetable: roster import, master timetable editing and per-student schedules",
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
        {"name": "Roster", "description": "Remedial roster upload and lookups"},
        {"name": "Assignments", "description": "Teacher to subject/class assignments"},
        {"name": "Timetable", "description": "Master timetable editing and conflict checks"},
        {"name": "Schedules", "description": "Per-student and per-teacher schedules"}
    ],
    "paths": {
        "/roster/import": {
            "post": {
                "tags": ["Roster"],
                "summary": "Replace the roster from an xlsx upload",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid workbook", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/roster/subjects": {
            "get": {
                "tags": ["Roster"],
                "summary": "Distinct remedial subjects",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/roster/classes": {
            "get": {
                "tags": ["Roster"],
                "summary": "Distinct class keys",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/assignments": {
            "get": {
                "tags": ["Assignments"],
                "summary": "List teacher assignments",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Assignments"],
                "summary": "Create teacher assignment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAssignmentRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/assignments/{id}": {
            "delete": {
                "tags": ["Assignments"],
                "summary": "Delete teacher assignment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetable": {
            "get": {
                "tags": ["Timetable"],
                "summary": "List master timetable slots",
                "parameters": [
                    {"name": "week", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Timetable"],
                "summary": "Place a subject on the master timetable",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CommitSlotRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict or duplicate slot", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Timetable"],
                "summary": "Remove a placement",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SlotKeyRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/timetable/check": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Report conflicts a placement would cause",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SlotRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/period-times": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Period time labels",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Timetable"],
                "summary": "Replace period time labels",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReplacePeriodTimesRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/students/{id}/schedule": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Resolve a student's personal schedule",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "week", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Student exempt or without subjects", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/schedule/grid": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Student schedule as a period by weekday grid",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "week", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/students/{id}/schedule/export": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Download a student schedule",
                "produces": ["text/csv", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "week", "in": "query", "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "xlsx", "pdf"]}
                ],
                "responses": {"200": {"description": "File"}}
            }
        },
        "/teachers/{name}/schedule": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Teacher's remedial teaching schedule",
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"},
                    {"name": "week", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/teachers/{name}/schedule/grid": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Teacher schedule as a grid",
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"},
                    {"name": "week", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/teachers/{name}/subjects/{subject}/students": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Students a teacher's subject is for",
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"},
                    {"name": "subject", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        }
    },
    "definitions": {
        "CreateAssignmentRequest": {
            "type": "object",
            "required": ["subject", "teacher"],
            "properties": {
                "subject": {"type": "string"},
                "teacher": {"type": "string"},
                "classes": {"type": "array", "items": {"type": "string"}},
                "class_list": {"type": "string"},
                "room": {"type": "string"}
            }
        },
        "SlotKeyRequest": {
            "type": "object",
            "required": ["week", "day", "period", "subject"],
            "properties": {
                "week": {"type": "integer"},
                "day": {"type": "string"},
                "period": {"type": "integer"},
                "subject": {"type": "string"}
            }
        },
        "SlotRequest": {
            "type": "object",
            "required": ["week", "day", "period", "subject"],
            "properties": {
                "week": {"type": "integer"},
                "day": {"type": "string"},
                "period": {"type": "integer"},
                "subject": {"type": "string"},
                "date_label": {"type": "string"}
            }
        },
        "CommitSlotRequest": {
            "type": "object",
            "required": ["week", "day", "period", "subject"],
            "properties": {
                "week": {"type": "integer"},
                "day": {"type": "string"},
                "period": {"type": "integer"},
                "subject": {"type": "string"},
                "date_label": {"type": "string"},
                "force": {"type": "boolean"}
            }
        },
        "ReplacePeriodTimesRequest": {
            "type": "object",
            "required": ["periods"],
            "properties": {
                "periods": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "period": {"type": "integer"},
                            "label": {"type": "string"}
                        }
                    }
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "object"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
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
