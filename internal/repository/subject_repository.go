package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campusworks/results-api/internal/models"
)

const subjectsCollection = "subjects"

// SubjectRepository stores subject definitions as batched documents.
type SubjectRepository struct {
	col *mongo.Collection
}

// NewSubjectRepository creates a subject repository.
func NewSubjectRepository(db *mongo.Database) *SubjectRepository {
	return &SubjectRepository{col: db.Collection(subjectsCollection)}
}

// ListBatches returns every stored subject batch in storage order.
func (r *SubjectRepository) ListBatches(ctx context.Context) ([]models.SubjectBatch, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find subject batches: %w", err)
	}
	defer cursor.Close(ctx)

	var batches []models.SubjectBatch
	if err := cursor.All(ctx, &batches); err != nil {
		return nil, fmt.Errorf("decode subject batches: %w", err)
	}
	return batches, nil
}

// Append inserts one subject batch document.
func (r *SubjectRepository) Append(ctx context.Context, batch *models.SubjectBatch) error {
	if _, err := r.col.InsertOne(ctx, batch); err != nil {
		return fmt.Errorf("insert subject batch: %w", err)
	}
	return nil
}
