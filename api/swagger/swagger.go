package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "ClassSync API",
        "description": "Timetable generation, teacher-absence remediation and exam seating",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Timetables", "description": "Timetable generation and persistence"},
        {"name": "Adjustments", "description": "Teacher absence remediation"},
        {"name": "Seating", "description": "Exam seating arrangement"},
        {"name": "Exports", "description": "CSV and PDF downloads"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/generate": {
            "post": {
                "tags": ["Timetables"],
                "summary": "Generate a draft timetable",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/save_schedule": {
            "post": {
                "tags": ["Timetables"],
                "summary": "Commit a section's timetable",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveScheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/saved_schedules": {
            "get": {
                "tags": ["Timetables"],
                "summary": "List committed timetables grouped by section",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/delete_schedule": {
            "post": {
                "tags": ["Timetables"],
                "summary": "Delete one section's committed timetable",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DeleteScheduleRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/clear_all_schedules": {
            "post": {
                "tags": ["Timetables"],
                "summary": "Delete every committed timetable",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/schedule/view/{sectionName}": {
            "get": {
                "tags": ["Timetables"],
                "summary": "List a section's overrides for one date",
                "parameters": [
                    {"name": "sectionName", "in": "path", "required": true, "type": "string"},
                    {"name": "viewDate", "in": "query", "type": "string", "description": "YYYY-MM-DD, defaults to today"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/adjustments/find-solutions": {
            "post": {
                "tags": ["Adjustments"],
                "summary": "Find repairs for a teacher's leave window",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TeacherLeaveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/adjustments/apply-solution": {
            "post": {
                "tags": ["Adjustments"],
                "summary": "Record a chosen repair as a dated override",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ApplySolutionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/generate_exam_seating": {
            "post": {
                "tags": ["Seating"],
                "summary": "Compute an exam seating arrangement",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExamSeatingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Capacity or balance constraints unsatisfiable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/export/timetable/{sectionName}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a section's committed timetable",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "sectionName", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "description": "csv or pdf", "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/export/seating": {
            "post": {
                "tags": ["Exports"],
                "summary": "Download a computed seating arrangement",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SeatingExportRequest"}},
                    {"name": "format", "in": "query", "type": "string", "description": "csv or pdf", "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        }
    },
    "definitions": {
        "CourseInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "hours": {"type": "integer"},
                "faculty": {"type": "string"}
            },
            "required": ["name", "hours", "faculty"]
        },
        "GenerateTimetableRequest": {
            "type": "object",
            "properties": {
                "courses": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/CourseInput"}
                },
                "rooms": {
                    "type": "array",
                    "items": {"type": "string"}
                },
                "sectionName": {"type": "string"},
                "includeLunchBreak": {"type": "boolean"}
            },
            "required": ["courses", "rooms"]
        },
        "PlacementDetail": {
            "type": "object",
            "properties": {
                "courseName": {"type": "string"},
                "facultyName": {"type": "string"},
                "roomName": {"type": "string"}
            }
        },
        "SaveScheduleRequest": {
            "type": "object",
            "properties": {
                "sectionName": {"type": "string"},
                "schedule": {"type": "object"}
            },
            "required": ["sectionName", "schedule"]
        },
        "DeleteScheduleRequest": {
            "type": "object",
            "properties": {
                "sectionName": {"type": "string"}
            },
            "required": ["sectionName"]
        },
        "TeacherLeaveRequest": {
            "type": "object",
            "properties": {
                "teacherName": {"type": "string"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"}
            },
            "required": ["teacherName", "startDate", "endDate"]
        },
        "SolutionOption": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["SUBSTITUTE", "RESCHEDULE"]},
                "details": {"type": "string"},
                "newTeacher": {"type": "string"},
                "newDay": {"type": "string"},
                "newTimeSlot": {"type": "string"},
                "newRoom": {"type": "string"}
            }
        },
        "ApplySolutionRequest": {
            "type": "object",
            "properties": {
                "entryId": {"type": "string"},
                "solution": {"$ref": "#/definitions/SolutionOption"},
                "date": {"type": "string"}
            },
            "required": ["entryId", "solution"]
        },
        "StudentInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "rollNo": {"type": "string"},
                "branch": {"type": "string"}
            },
            "required": ["name", "branch"]
        },
        "RoomDimensionInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "rows": {"type": "integer"},
                "cols": {"type": "integer"}
            },
            "required": ["name", "rows", "cols"]
        },
        "ExamSeatingRequest": {
            "type": "object",
            "properties": {
                "students": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/StudentInput"}
                },
                "rooms": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/RoomDimensionInput"}
                }
            },
            "required": ["students", "rooms"]
        },
        "SeatAssignmentView": {
            "type": "object",
            "properties": {
                "student": {"$ref": "#/definitions/StudentInput"},
                "room_name": {"type": "string"},
                "row": {"type": "integer"},
                "col": {"type": "integer"}
            }
        },
        "SeatingExportRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "rooms": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/RoomDimensionInput"}
                },
                "assignments": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/SeatAssignmentView"}
                }
            },
            "required": ["rooms", "assignments"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
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
