package models

import "time"

// StudentRecord is the flat identity record for a student. The
// registration number is the natural key; uniqueness is enforced at
// creation time but reads tolerate pre-existing duplicates by taking the
// first match.
type StudentRecord struct {
	ID                 string    `bson:"_id" json:"-"`
	RegistrationNumber string    `bson:"registrationNumber" json:"registrationNumber"`
	Name               string    `bson:"name" json:"name"`
	Email              string    `bson:"email" json:"email"`
	CohortLabel        string    `bson:"cohortLabel" json:"cohortLabel"`
	DepartmentLabel    string    `bson:"departmentLabel" json:"departmentLabel"`
	DateOfBirth        string    `bson:"dateOfBirth" json:"dateOfBirth"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
}

// StudentFilter captures listing criteria for the staff roster view.
type StudentFilter struct {
	Search      string
	CohortLabel string
}
