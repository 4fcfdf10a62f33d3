package dto

import "github.com/campusworks/results-api/internal/models"

// GradeAccessRequest is the identity-gated grade lookup payload. Cohort
// and term are independently optional filters.
type GradeAccessRequest struct {
	RegistrationNumber string `json:"registrationNumber" validate:"required"`
	DateOfBirth        string `json:"dateOfBirth" validate:"required"`
	CohortLabel        string `json:"cohortLabel,omitempty"`
	TermLabel          string `json:"termLabel,omitempty"`
}

// StudentProfile is the public slice of a student record returned after a
// successful identity check. The date of birth is never echoed.
type StudentProfile struct {
	RegistrationNumber string `json:"registrationNumber"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	CohortLabel        string `json:"cohortLabel"`
	DepartmentLabel    string `json:"departmentLabel"`
}

// EffectiveFilters echoes the filters applied to the grade lookup, with
// "all" substituted for the ones that were omitted.
type EffectiveFilters struct {
	CohortLabel string `json:"cohortLabel"`
	TermLabel   string `json:"termLabel"`
}

// GradeAccessResult is the success payload of a grade access request.
type GradeAccessResult struct {
	Student          StudentProfile       `json:"student"`
	Grades           []models.GradeRecord `json:"grades"`
	EffectiveFilters EffectiveFilters     `json:"effectiveFilters"`
}

// GradeAccessValidation mirrors the strict validation endpoint payload:
// the result plus an echo of the verified request.
type GradeAccessValidation struct {
	GradeAccessResult
	Validation ValidationEcho `json:"validation"`
}

// ValidationEcho confirms the inputs the access check was performed with.
type ValidationEcho struct {
	RegistrationNumber string `json:"registrationNumber"`
	DateOfBirth        string `json:"dateOfBirth"`
	CohortLabel        string `json:"cohortLabel"`
	TermLabel          string `json:"termLabel"`
	Verified           bool   `json:"verified"`
}
