package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Results API",
        "description": "Student results management: directory-backed staff login and identity-gated grade access",
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
        {"name": "Authentication", "description": "Staff login against the institution directory"},
        {"name": "Grade Access", "description": "Identity-gated student grade retrieval"},
        {"name": "Students", "description": "Student record management"},
        {"name": "Grades", "description": "Grade recording and listing"},
        {"name": "Subjects", "description": "Subject catalogue"},
        {"name": "Directory", "description": "Institution tree administration"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate staff account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current session claims",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/verify": {
            "post": {
                "tags": ["Grade Access"],
                "summary": "Verify student identity and fetch grades",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GradeAccessRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Identity mismatch", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No grades for scope", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/validate-grade-access": {
            "post": {
                "tags": ["Grade Access"],
                "summary": "Validate grade access and echo verified inputs",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GradeAccessRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Identity mismatch", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{regno}/statement": {
            "get": {
                "tags": ["Grade Access"],
                "summary": "Download result statement",
                "produces": ["application/pdf", "text/csv"],
                "parameters": [
                    {"name": "regno", "in": "path", "required": true, "type": "string"},
                    {"name": "dob", "in": "query", "required": true, "type": "string"},
                    {"name": "cohort", "in": "query", "type": "string"},
                    {"name": "term", "in": "query", "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["pdf", "csv"]}
                ],
                "responses": {
                    "200": {"description": "Statement document"},
                    "401": {"description": "Identity mismatch", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "cohort", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Register student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate registration number", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{regno}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "regno", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grades": {
            "get": {
                "tags": ["Grades"],
                "summary": "List normalized grade records",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "studentId", "in": "query", "type": "string"},
                    {"name": "cohort", "in": "query", "type": "string"},
                    {"name": "term", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Grades"],
                "summary": "Record grade batch",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordGradesRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not permitted to manage results", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/subjects": {
            "get": {
                "tags": ["Subjects"],
                "summary": "List subjects",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "cohort", "in": "query", "type": "string"},
                    {"name": "term", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Subjects"],
                "summary": "Add subject batch",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddSubjectsRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/directory/institutions": {
            "get": {
                "tags": ["Directory"],
                "summary": "List institutions",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Directory"],
                "summary": "Create institution",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateInstitutionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/directory/institutions/{id}/departments": {
            "post": {
                "tags": ["Directory"],
                "summary": "Add department",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddDepartmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate department code", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/directory/institutions/{id}/accounts": {
            "post": {
                "tags": ["Directory"],
                "summary": "Add institution account",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddAccountRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate login id in scope", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/directory/institutions/{id}/departments/{deptId}/cohorts/{cohort}/accounts": {
            "post": {
                "tags": ["Directory"],
                "summary": "Add cohort account",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "deptId", "in": "path", "required": true, "type": "string"},
                    {"name": "cohort", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddAccountRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate login id in scope", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/status": {
            "get": {
                "tags": ["Observability"],
                "summary": "Operational status",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "loginIdentifier": {"type": "string"},
                "secret": {"type": "string"}
            },
            "required": ["loginIdentifier", "secret"]
        },
        "GradeAccessRequest": {
            "type": "object",
            "properties": {
                "registrationNumber": {"type": "string"},
                "dateOfBirth": {"type": "string"},
                "cohortLabel": {"type": "string"},
                "termLabel": {"type": "string"}
            },
            "required": ["registrationNumber", "dateOfBirth"]
        },
        "CreateStudentRequest": {
            "type": "object",
            "properties": {
                "registrationNumber": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "cohortLabel": {"type": "string"},
                "departmentLabel": {"type": "string"},
                "dateOfBirth": {"type": "string"}
            },
            "required": ["registrationNumber", "name", "email", "cohortLabel", "departmentLabel", "dateOfBirth"]
        },
        "RecordGradesRequest": {
            "type": "object",
            "properties": {
                "studentId": {"type": "string"},
                "cohortLabel": {"type": "string"},
                "termLabel": {"type": "string"},
                "subjects": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/GradeEntryItem"}
                }
            },
            "required": ["studentId", "cohortLabel", "termLabel", "subjects"]
        },
        "GradeEntryItem": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "marks": {"type": "number"},
                "present": {"type": "boolean"}
            },
            "required": ["name"]
        },
        "AddSubjectsRequest": {
            "type": "object",
            "properties": {
                "subjects": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/SubjectItem"}
                }
            },
            "required": ["subjects"]
        },
        "SubjectItem": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "code": {"type": "string"},
                "cohortLabel": {"type": "string"},
                "termLabel": {"type": "string"}
            },
            "required": ["name", "code", "cohortLabel", "termLabel"]
        },
        "CreateInstitutionRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"}
            },
            "required": ["name"]
        },
        "AddDepartmentRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "code": {"type": "string"},
                "description": {"type": "string"}
            },
            "required": ["name", "code"]
        },
        "AddAccountRequest": {
            "type": "object",
            "properties": {
                "loginId": {"type": "string"},
                "secret": {"type": "string"},
                "role": {"type": "string", "enum": ["head", "teacher", "admin"]},
                "canManageResults": {"type": "boolean"}
            },
            "required": ["loginId", "secret", "role"]
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
