package models

import "time"

// AccountRole represents the staff roles recognised by the system.
type AccountRole string

const (
	RoleHead    AccountRole = "head"
	RoleTeacher AccountRole = "teacher"
	RoleAdmin   AccountRole = "admin"
)

// AccountStatus marks whether an account may log in.
type AccountStatus string

const (
	StatusActive   AccountStatus = "active"
	StatusInactive AccountStatus = "inactive"
)

// CohortKey identifies a year slice of a department. The enumeration is
// fixed and ordered; credential resolution visits cohorts in this order.
type CohortKey string

const (
	CohortFirst  CohortKey = "cohort-1"
	CohortSecond CohortKey = "cohort-2"
)

// OrderedCohortKeys returns the cohort keys in their canonical traversal
// order.
func OrderedCohortKeys() []CohortKey {
	return []CohortKey{CohortFirst, CohortSecond}
}

// CohortLabelFor maps a cohort key to its display label used on student
// records and grade documents.
func CohortLabelFor(key CohortKey) string {
	switch key {
	case CohortFirst:
		return "Year I"
	case CohortSecond:
		return "Year II"
	default:
		return string(key)
	}
}

// Account is a staff login entity. LoginID is unique only within the
// structural scope the account was created in; the tree as a whole may
// contain duplicates.
type Account struct {
	ID               string        `bson:"id" json:"id"`
	LoginID          string        `bson:"loginId" json:"loginId"`
	Secret           string        `bson:"secret" json:"-"`
	Role             AccountRole   `bson:"role" json:"role"`
	Status           AccountStatus `bson:"status" json:"status"`
	CanManageResults bool          `bson:"canManageResults" json:"canManageResults"`
	CreatedAt        time.Time     `bson:"createdAt" json:"createdAt"`
}

// Cohort groups the accounts and subject definitions of one year slice.
type Cohort struct {
	Accounts []Account           `bson:"accounts,omitempty" json:"accounts,omitempty"`
	Subjects []SubjectDefinition `bson:"subjects,omitempty" json:"subjects,omitempty"`
}

// Department is a named sub-unit of exactly one institution.
type Department struct {
	ID          string               `bson:"id" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Code        string               `bson:"code" json:"code"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	Cohorts     map[CohortKey]Cohort `bson:"cohorts,omitempty" json:"cohorts,omitempty"`
}

// Institution is the root of the organizational tree as stored in the
// institutions collection.
type Institution struct {
	ID          string       `bson:"_id" json:"id"`
	Name        string       `bson:"name" json:"name"`
	Accounts    []Account    `bson:"accounts,omitempty" json:"accounts,omitempty"`
	Departments []Department `bson:"departments,omitempty" json:"departments,omitempty"`
	CreatedAt   time.Time    `bson:"createdAt" json:"createdAt"`
}

// Scope records where in the tree an account was found. Department and
// cohort are empty for institution-level accounts.
type Scope struct {
	InstitutionID   string    `json:"institutionId"`
	InstitutionName string    `json:"institutionName"`
	DepartmentID    string    `json:"departmentId,omitempty"`
	DepartmentName  string    `json:"departmentName,omitempty"`
	CohortKey       CohortKey `json:"cohortKey,omitempty"`
}

// Principal is a resolved, authenticated account together with its
// position in the directory tree.
type Principal struct {
	Account Account `json:"account"`
	Scope   Scope   `json:"scope"`
}
