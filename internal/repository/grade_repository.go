package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campusworks/results-api/internal/models"
)

const gradesCollection = "grades"

// GradeRepository reads and appends raw grade documents. Documents are
// append-only; canonical records are derived on read by the normalizer.
type GradeRepository struct {
	col *mongo.Collection
}

// NewGradeRepository creates a grade repository.
func NewGradeRepository(db *mongo.Database) *GradeRepository {
	return &GradeRepository{col: db.Collection(gradesCollection)}
}

// List returns raw grade documents matching the filter in storage order.
func (r *GradeRepository) List(ctx context.Context, filter models.GradeFilter) ([]models.GradeDocument, error) {
	query := bson.M{}
	if filter.StudentID != "" {
		query["studentId"] = filter.StudentID
	}
	if filter.CohortLabel != "" {
		query["cohortLabel"] = filter.CohortLabel
	}
	if filter.TermLabel != "" {
		query["termLabel"] = filter.TermLabel
	}

	cursor, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find grade documents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.GradeDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode grade documents: %w", err)
	}
	return docs, nil
}

// Append inserts one raw grade document.
func (r *GradeRepository) Append(ctx context.Context, doc *models.GradeDocument) error {
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert grade document: %w", err)
	}
	return nil
}
