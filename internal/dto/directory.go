package dto

// CreateInstitutionRequest creates an empty institution root.
type CreateInstitutionRequest struct {
	Name string `json:"name" validate:"required"`
}

// AddDepartmentRequest adds a department under an institution.
type AddDepartmentRequest struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required"`
	Description string `json:"description,omitempty"`
}

// AddAccountRequest creates a staff account at institution or cohort
// scope depending on the route it is posted to.
type AddAccountRequest struct {
	LoginID          string `json:"loginId" validate:"required"`
	Secret           string `json:"secret" validate:"required,min=8"`
	Role             string `json:"role" validate:"required,oneof=head teacher admin"`
	CanManageResults bool   `json:"canManageResults"`
}
