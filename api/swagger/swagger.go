package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Attendance API",
        "description": "Students, subjects and per-subject attendance with live counters",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Subjects", "description": "Subjects and their attendance counters"},
        {"name": "Students", "description": "Student registry"},
        {"name": "Attendance", "description": "Marking, history, export and deletion"}
    ],
    "paths": {
        "/health": {
            "get": {"summary": "Health check", "responses": {"200": {"description": "OK"}}}
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/ping": {
            "get": {"summary": "Liveness check", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Ack"}}}}
        },
        "/api/subjects": {
            "get": {
                "tags": ["Subjects"],
                "summary": "List subjects with counters, newest first",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Subject"}}}
                }
            },
            "post": {
                "tags": ["Subjects"],
                "summary": "Create subject",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSubjectRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Subject"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "409": {"description": "Duplicate name", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/subjects/{id}": {
            "delete": {
                "tags": ["Subjects"],
                "summary": "Delete subject and its attendance",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Ack"}}}
            }
        },
        "/api/subjects/{id}/students": {
            "get": {
                "tags": ["Subjects"],
                "summary": "Students with their status for a subject on a date",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "date", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/RosterEntry"}}}
                }
            }
        },
        "/api/subjects/{id}/summary": {
            "get": {
                "tags": ["Subjects"],
                "summary": "Subject counters and present percentage",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SubjectSummary"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/subjects/{id}/consistency": {
            "get": {
                "tags": ["Subjects"],
                "summary": "Compare stored counters with the records",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ConsistencyReport"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Student"}}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Create student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Student"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "409": {"description": "Duplicate enroll_id", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/students/{id}": {
            "delete": {
                "tags": ["Students"],
                "summary": "Delete student and their attendance",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Ack"}}}
            }
        },
        "/api/students/{id}/summary": {
            "get": {
                "tags": ["Students"],
                "summary": "Per-subject attendance of one student",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/StudentSummary"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Attendance history, newest first",
                "parameters": [
                    {"name": "subjectId", "in": "query", "type": "integer"},
                    {"name": "studentId", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/AttendanceRecord"}}}
                }
            },
            "post": {
                "tags": ["Attendance"],
                "summary": "Mark one student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MarkAttendanceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Ack"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "404": {"description": "Unknown student or subject", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "409": {"description": "Already marked", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Attendance"],
                "summary": "Delete attendance of a subject on a date",
                "parameters": [
                    {"name": "subjectId", "in": "query", "required": true, "type": "integer"},
                    {"name": "date", "in": "query", "required": true, "type": "string", "format": "date"},
                    {"name": "studentId", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/BulkDeleteResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "404": {"description": "Nothing matched", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/attendance/bulk": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Mark many students for one subject and date",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkMarkRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/BulkMarkResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "404": {"description": "Unknown subject", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/attendance/export": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Download attendance history",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "subjectId", "in": "query", "type": "integer"},
                    {"name": "studentId", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "Attachment", "schema": {"type": "file"}}}
            }
        },
        "/api/attendance/{id}": {
            "delete": {
                "tags": ["Attendance"],
                "summary": "Delete one attendance record",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Ack"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Subject": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "totalClasses": {"type": "integer"},
                "present": {"type": "integer"},
                "absent": {"type": "integer"}
            }
        },
        "SubjectCounters": {
            "type": "object",
            "properties": {
                "totalClasses": {"type": "integer"},
                "present": {"type": "integer"},
                "absent": {"type": "integer"}
            }
        },
        "Student": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "enroll_id": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "RosterEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "enroll_id": {"type": "string"},
                "name": {"type": "string"},
                "status": {"type": "string", "enum": ["present", "absent"], "x-nullable": true}
            }
        },
        "AttendanceRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "studentId": {"type": "integer"},
                "enroll_id": {"type": "string"},
                "subjectId": {"type": "integer"},
                "subjectName": {"type": "string"},
                "date": {"type": "string", "format": "date"},
                "status": {"type": "string", "enum": ["present", "absent"]}
            }
        },
        "CreateSubjectRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string"}}
        },
        "CreateStudentRequest": {
            "type": "object",
            "required": ["enroll_id", "name"],
            "properties": {
                "enroll_id": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "MarkAttendanceRequest": {
            "type": "object",
            "required": ["studentId", "subjectId", "date", "status"],
            "properties": {
                "studentId": {"type": "integer"},
                "subjectId": {"type": "integer"},
                "date": {"type": "string", "format": "date"},
                "status": {"type": "string", "enum": ["present", "absent"]}
            }
        },
        "BulkAttendanceItem": {
            "type": "object",
            "properties": {
                "studentId": {"type": "integer"},
                "status": {"type": "string", "enum": ["present", "absent"]}
            }
        },
        "BulkMarkRequest": {
            "type": "object",
            "required": ["subjectId", "date", "records"],
            "properties": {
                "subjectId": {"type": "integer"},
                "date": {"type": "string", "format": "date"},
                "records": {"type": "array", "items": {"$ref": "#/definitions/BulkAttendanceItem"}}
            }
        },
        "BulkMarkResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "inserted": {"type": "integer"},
                "presentCount": {"type": "integer"},
                "absentCount": {"type": "integer"}
            }
        },
        "BulkDeleteResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "deleted": {"type": "integer"},
                "presentRemoved": {"type": "integer"},
                "absentRemoved": {"type": "integer"}
            }
        },
        "SubjectSummary": {
            "type": "object",
            "properties": {
                "subjectId": {"type": "integer"},
                "subjectName": {"type": "string"},
                "totalClasses": {"type": "integer"},
                "present": {"type": "integer"},
                "absent": {"type": "integer"},
                "presentPercentage": {"type": "number"}
            }
        },
        "StudentSubjectSummary": {
            "type": "object",
            "properties": {
                "subjectId": {"type": "integer"},
                "subjectName": {"type": "string"},
                "total": {"type": "integer"},
                "present": {"type": "integer"},
                "absent": {"type": "integer"},
                "presentPercentage": {"type": "number"}
            }
        },
        "StudentSummary": {
            "type": "object",
            "properties": {
                "studentId": {"type": "integer"},
                "enroll_id": {"type": "string"},
                "name": {"type": "string"},
                "subjects": {"type": "array", "items": {"$ref": "#/definitions/StudentSubjectSummary"}}
            }
        },
        "ConsistencyReport": {
            "type": "object",
            "properties": {
                "subjectId": {"type": "integer"},
                "stored": {"$ref": "#/definitions/SubjectCounters"},
                "recomputed": {"$ref": "#/definitions/SubjectCounters"},
                "consistent": {"type": "boolean"}
            }
        },
        "Ack": {
            "type": "object",
            "properties": {"ok": {"type": "boolean"}}
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ErrorEnvelope": {
            "type": "object",
            "properties": {"error": {"$ref": "#/definitions/APIError"}}
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
