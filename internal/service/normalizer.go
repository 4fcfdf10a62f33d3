package service

import (
	"time"

	"github.com/campusworks/results-api/internal/models"
)

// NormalizeGradeDocuments flattens raw grade documents into canonical
// records. Batched documents expand into one record per subject entry,
// each inheriting the parent's student, cohort and term; singular
// documents map to a single record. Output order equals input document
// order with expanded subjects in their original list order. No sorting,
// no deduplication.
//
// A record's date is the parent document's createdAt. Documents without a
// createdAt fall back to the supplied instant; callers that need
// reproducible output across calls must fix fallback themselves.
func NormalizeGradeDocuments(docs []models.GradeDocument, fallback time.Time) []models.GradeRecord {
	records := make([]models.GradeRecord, 0, len(docs))

	for _, doc := range docs {
		date := doc.CreatedAt
		if date.IsZero() {
			date = fallback
		}

		if doc.Batched() {
			for _, entry := range doc.Subjects {
				records = append(records, models.GradeRecord{
					ID:          doc.ID + "_" + entry.Name,
					StudentID:   doc.StudentID,
					CohortLabel: doc.CohortLabel,
					TermLabel:   doc.TermLabel,
					Subject:     entry.Name,
					Score:       entry.Marks,
					Grade:       entry.Grade,
					Present:     entry.Present,
					Date:        date,
				})
			}
			continue
		}

		records = append(records, models.GradeRecord{
			ID:          doc.ID,
			StudentID:   doc.StudentID,
			CohortLabel: doc.CohortLabel,
			TermLabel:   doc.TermLabel,
			Subject:     doc.Subject,
			Score:       singularScore(doc),
			Grade:       doc.Grade,
			Present:     doc.Present,
			Date:        date,
		})
	}

	return records
}

// singularScore resolves the score of a singular document, which older
// writers stored under marks and newer ones under score.
func singularScore(doc models.GradeDocument) float64 {
	if doc.Marks != nil {
		return *doc.Marks
	}
	if doc.Score != nil {
		return *doc.Score
	}
	return 0
}
