package dto

// GradeEntryItem is one row of a batched grade submission. The letter
// grade is computed server-side at write time.
type GradeEntryItem struct {
	Name    string  `json:"name" validate:"required"`
	Marks   float64 `json:"marks" validate:"gte=0,lte=100"`
	Present bool    `json:"present"`
}

// RecordGradesRequest appends one batched grade document for a student.
type RecordGradesRequest struct {
	StudentID   string           `json:"studentId" validate:"required"`
	CohortLabel string           `json:"cohortLabel" validate:"required"`
	TermLabel   string           `json:"termLabel" validate:"required"`
	Subjects    []GradeEntryItem `json:"subjects" validate:"required,min=1,dive"`
}

// SubjectItem is one subject definition in a batched submission.
type SubjectItem struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required"`
	CohortLabel string `json:"cohortLabel" validate:"required"`
	TermLabel   string `json:"termLabel" validate:"required"`
}

// AddSubjectsRequest appends a batch of subject definitions as one
// document.
type AddSubjectsRequest struct {
	Subjects []SubjectItem `json:"subjects" validate:"required,min=1,dive"`
}

// CreateStudentRequest registers a student identity record.
type CreateStudentRequest struct {
	RegistrationNumber string `json:"registrationNumber" validate:"required"`
	Name               string `json:"name" validate:"required"`
	Email              string `json:"email" validate:"required,email"`
	CohortLabel        string `json:"cohortLabel" validate:"required"`
	DepartmentLabel    string `json:"departmentLabel" validate:"required"`
	DateOfBirth        string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
}
