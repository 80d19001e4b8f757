package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "DIID-GS API",
        "description": "Quarter-scoped gradebook and attendance tracker",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Quarters", "description": "Quarter lifecycle"},
        {"name": "Students", "description": "Students and quarter rosters"},
        {"name": "Grades", "description": "Component scores and derived totals"},
        {"name": "Attendance", "description": "Daily attendance marks"},
        {"name": "Calendar", "description": "Quarter calendar notes and holiday overlay"},
        {"name": "Scope", "description": "Working-quarter scope snapshot"},
        {"name": "Exports", "description": "CSV and PDF report downloads"},
        {"name": "Dashboard", "description": "Overview figures and runtime metrics"}
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
        "/quarters": {
            "get": {
                "tags": ["Quarters"],
                "summary": "List quarters",
                "parameters": [
                    {"name": "teacherId", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Quarters"],
                "summary": "Create quarter",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateQuarterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/quarters/active": {
            "get": {
                "tags": ["Quarters"],
                "summary": "Get the teacher's active quarter",
                "parameters": [
                    {"name": "teacherId", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No active quarter", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/quarters/{quarterId}": {
            "get": {
                "tags": ["Quarters"],
                "summary": "Get quarter",
                "parameters": [
                    {"name": "quarterId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Quarters"],
                "summary": "Update quarter",
                "parameters": [
                    {"name": "quarterId", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateQuarterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Quarters"],
                "summary": "Delete quarter with its enrollments, grades, attendance and notes",
                "parameters": [
                    {"name": "quarterId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Deleted; data holds the fallback quarter", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/quarters/{quarterId}/activate": {
            "post": {
                "tags": ["Quarters"],
                "summary": "Make the quarter the teacher's single active one",
                "parameters": [
                    {"name": "quarterId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "Search students",
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}": {
            "put": {
                "tags": ["Students"],
                "summary": "Update student",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/quarters/{quarterId}/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List enrolled students for a quarter",
                "parameters": [
                    {"name": "quarterId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Enroll a student in the quarter",
                "description": "Creates the student when the code is new, otherwise reuses the existing record",
                "parameters": [
                    {"name": "quarterId", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EnrollStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already enrolled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/quarters/{quarterId}/students/{studentId}": {
            "delete": {
                "tags": ["Students"],
                "summary": "Remove a student from the quarter with their grades and attendance",
                "parameters": [
                    {"name": "quarterId", "in": "path", "type": "string", "required": true},
                    {"name": "studentId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Removed"}
                }
            }
        },
        "/quarters/{quarterId}/grades": {
            "get": {
                "tags": ["Grades"],
                "summary": "List saved grades for a quarter",
                "parameters": [
                    {"name": "quarterId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/quarters/{quarterId}/grades/distribution": {
            "get": {
                "tags": ["Grades"],
                "summary": "Letter grade distribution",
                "parameters": [
                    {"name": "quarterId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/quarters/{quarterId}/grades/report": {
            "get": {
                "tags": ["Grades"],
                "summary": "Grade report rows with student names",
                "parameters": [
                    {"name": "quarterId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/quarters/{quarterId}/grades/{studentId}": {
            "get": {
                "tags": ["Grades"],
                "summary": "Get a student's grades",
                "description": "Unsaved students come back as a zero-score row",
                "parameters": [
                    {"name": "quarterId", "in": "path", "type": "string", "required": true},
                    {"name": "studentId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Grades"],
                "summary": "Save a student's component scores",
                "description": "Persists the raw components and the recomputed total in one write",
                "parameters": [
                    {"name": "quarterId", "in": "path", "type": "string", "required": true},
                    {"name": "studentId", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveGradesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Component out of range", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/quarters/{quarterId}/attendance": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Mark attendance for one student and day",
                "description": "Re-marking the same day replaces the stored status",
                "parameters": [
                    {"name": "quarterId", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MarkAttendanceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/quarters/{quarterId}/attendance/bulk": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Mark attendance for several students at once",
                "parameters": [
                    {"name": "quarterId", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/MarkAttendanceRequest"}}}
                ],
                "responses": {
                    "200": {"description": "Saved records; meta reports per-student failures", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/quarters/{quarterId}/attendance/daily": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Cohort attendance tally for one date",
                "parameters": [
                    {"name": "quarterId", "in": "path", "type": "string", "required": true},
                    {"name": "date", "in": "query", "type": "string", "required": true, "description": "YYYY-MM-DD"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/quarters/{quarterId}/attendance/history": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Per-student attendance breakdown for the quarter",
                "parameters": [
                    {"name": "quarterId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/quarters/{quarterId}/attendance/{studentId}": {
            "delete": {
                "tags": ["Attendance"],
                "summary": "Remove an attendance mark",
                "parameters": [
                    {"name": "quarterId", "in": "path", "type": "string", "required": true},
                    {"name": "studentId", "in": "path", "type": "string", "required": true},
                    {"name": "date", "in": "query", "type": "string", "required": true, "description": "YYYY-MM-DD"}
                ],
                "responses": {
                    "204": {"description": "Removed"}
                }
            }
        },
        "/quarters/{quarterId}/attendance/{studentId}/summary": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Attendance summary for one student",
                "parameters": [
                    {"name": "quarterId", "in": "path", "type": "string", "required": true},
                    {"name": "studentId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/quarters/{quarterId}/calendar": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Quarter calendar with holiday overlay",
                "parameters": [
                    {"name": "quarterId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/quarters/{quarterId}/calendar/notes": {
            "post": {
                "tags": ["Calendar"],
                "summary": "Create calendar note",
                "parameters": [
                    {"name": "quarterId", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCalendarNoteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar/notes/{id}": {
            "put": {
                "tags": ["Calendar"],
                "summary": "Update calendar note",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateCalendarNoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Calendar"],
                "summary": "Delete calendar note",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Removed"}
                }
            }
        },
        "/scope": {
            "get": {
                "tags": ["Scope"],
                "summary": "Current scope snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Scope"],
                "summary": "Select the working quarter",
                "description": "Loads the quarter's collections into the scope snapshot; an empty quarter_id clears the scope",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScopeSelectRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK; meta.partial is set when a collection failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Selection superseded by a newer one", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/quarters/{quarterId}/exports/roster": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export the quarter roster",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "quarterId", "in": "path", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string", "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/quarters/{quarterId}/exports/grades": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export the quarter grade sheet",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "quarterId", "in": "path", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string", "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/quarters/{quarterId}/exports/attendance": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export the quarter attendance sheet",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "quarterId", "in": "path", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string", "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/quarters/{quarterId}/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Quarter overview figures",
                "parameters": [
                    {"name": "quarterId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/system": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Runtime metrics snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CreateQuarterRequest": {
            "type": "object",
            "required": ["teacher_id", "name", "start_date", "end_date"],
            "properties": {
                "teacher_id": {"type": "string"},
                "name": {"type": "string"},
                "start_date": {"type": "string", "format": "date-time"},
                "end_date": {"type": "string", "format": "date-time"},
                "status": {"type": "string", "enum": ["upcoming", "active", "completed"], "default": "upcoming"}
            }
        },
        "UpdateQuarterRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "start_date": {"type": "string", "format": "date-time"},
                "end_date": {"type": "string", "format": "date-time"},
                "status": {"type": "string", "enum": ["upcoming", "active", "completed"]}
            }
        },
        "EnrollStudentRequest": {
            "type": "object",
            "required": ["first_name", "last_name", "student_id"],
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "student_id": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "UpdateStudentRequest": {
            "type": "object",
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "student_id": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "SaveGradesRequest": {
            "type": "object",
            "required": ["grades"],
            "properties": {
                "grades": {"$ref": "#/definitions/PeriodGrades"}
            }
        },
        "PeriodGrades": {
            "type": "object",
            "properties": {
                "period1": {"$ref": "#/definitions/GradeComponents"},
                "period2": {"$ref": "#/definitions/GradeComponents"},
                "finalPeriod": {
                    "type": "object",
                    "properties": {
                        "finalOralExam": {"type": "number"},
                        "finalGrammarExam": {"type": "number"}
                    }
                }
            }
        },
        "GradeComponents": {
            "type": "object",
            "properties": {
                "participationHomework": {"type": "number"},
                "presentations": {"type": "number"},
                "quizzes": {"type": "number"},
                "compositionExam": {"type": "number"},
                "oralExam": {"type": "number"}
            }
        },
        "MarkAttendanceRequest": {
            "type": "object",
            "required": ["student_id", "date", "status"],
            "properties": {
                "student_id": {"type": "string"},
                "date": {"type": "string", "format": "date-time"},
                "status": {"type": "string", "enum": ["present", "absent", "late", "excused"]},
                "notes": {"type": "string"}
            }
        },
        "CreateCalendarNoteRequest": {
            "type": "object",
            "required": ["date", "type", "title"],
            "properties": {
                "date": {"type": "string", "format": "date-time"},
                "type": {"type": "string", "enum": ["excuse", "holiday", "reminder"]},
                "title": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "UpdateCalendarNoteRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "format": "date-time"},
                "type": {"type": "string", "enum": ["excuse", "holiday", "reminder"]},
                "title": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "ScopeSelectRequest": {
            "type": "object",
            "properties": {
                "quarter_id": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
