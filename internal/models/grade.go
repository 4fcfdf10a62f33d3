package models

import "time"

// SubjectDefinition describes a teachable subject for one cohort and term.
type SubjectDefinition struct {
	Name        string `bson:"name" json:"name"`
	Code        string `bson:"code" json:"code"`
	CohortLabel string `bson:"cohortLabel" json:"cohortLabel"`
	TermLabel   string `bson:"termLabel" json:"termLabel"`
}

// SubjectBatch is the stored shape for subject definitions: several
// subjects appended as one document.
type SubjectBatch struct {
	ID        string              `bson:"_id" json:"id"`
	Subjects  []SubjectDefinition `bson:"subjects" json:"subjects"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}

// GradeSubjectEntry is one subject inside a batched grade document.
type GradeSubjectEntry struct {
	Name    string  `bson:"name" json:"name"`
	Marks   float64 `bson:"marks" json:"marks"`
	Grade   string  `bson:"grade" json:"grade"`
	Present bool    `bson:"present" json:"present"`
}

// GradeDocument is a raw grade document as read from storage. Two shapes
// coexist: batched documents carry a Subjects list, singular documents
// carry the subject fields inline (with the score under either marks or
// score). The shape is resolved by the normalizer and never propagates
// past it.
type GradeDocument struct {
	ID          string              `bson:"_id" json:"id"`
	StudentID   string              `bson:"studentId" json:"studentId"`
	CohortLabel string              `bson:"cohortLabel" json:"cohortLabel"`
	TermLabel   string              `bson:"termLabel" json:"termLabel"`
	Subjects    []GradeSubjectEntry `bson:"subjects,omitempty" json:"subjects,omitempty"`
	Subject     string              `bson:"subject,omitempty" json:"subject,omitempty"`
	Marks       *float64            `bson:"marks,omitempty" json:"marks,omitempty"`
	Score       *float64            `bson:"score,omitempty" json:"score,omitempty"`
	Grade       string              `bson:"grade,omitempty" json:"grade,omitempty"`
	Present     bool                `bson:"present,omitempty" json:"present,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// Batched reports whether the document carries a subjects list. Presence
// decides the shape, not length: a document written with an empty list is
// still batched and normalizes to zero records.
func (d GradeDocument) Batched() bool {
	return d.Subjects != nil
}

// GradeFilter narrows a raw grade document read. Cohort and term are
// independently optional.
type GradeFilter struct {
	StudentID   string
	CohortLabel string
	TermLabel   string
}

// GradeRecord is the canonical, flattened grade entry. It is derived on
// read and never persisted; the ID is synthesized so it stays stable
// across repeated reads of the same underlying document.
type GradeRecord struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"studentId"`
	CohortLabel string    `json:"cohortLabel"`
	TermLabel   string    `json:"termLabel"`
	Subject     string    `json:"subject"`
	Score       float64   `json:"score"`
	Grade       string    `json:"grade"`
	Present     bool      `json:"present"`
	Date        time.Time `json:"date"`
}
