package repository

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campusworks/results-api/internal/models"
)

const studentsCollection = "students"

// StudentRepository manages the flat student identity records.
type StudentRepository struct {
	col *mongo.Collection
}

// NewStudentRepository creates a student repository.
func NewStudentRepository(db *mongo.Database) *StudentRepository {
	return &StudentRepository{col: db.Collection(studentsCollection)}
}

// List returns student records matching the filter in storage order.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentRecord, error) {
	query := bson.M{}
	if filter.CohortLabel != "" {
		query["cohortLabel"] = filter.CohortLabel
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": search, "$options": "i"}},
			bson.M{"registrationNumber": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	cursor, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find students: %w", err)
	}
	defer cursor.Close(ctx)

	var students []models.StudentRecord
	if err := cursor.All(ctx, &students); err != nil {
		return nil, fmt.Errorf("decode students: %w", err)
	}
	return students, nil
}

// FindByRegistration returns every record carrying the registration
// number, in storage order. Duplicates are possible in legacy data; the
// caller applies the first-match tie-break.
func (r *StudentRepository) FindByRegistration(ctx context.Context, registrationNumber string) ([]models.StudentRecord, error) {
	cursor, err := r.col.Find(ctx, bson.M{"registrationNumber": registrationNumber})
	if err != nil {
		return nil, fmt.Errorf("find students by registration: %w", err)
	}
	defer cursor.Close(ctx)

	var students []models.StudentRecord
	if err := cursor.All(ctx, &students); err != nil {
		return nil, fmt.Errorf("decode students: %w", err)
	}
	return students, nil
}

// ExistsByRegistration reports whether any record carries the
// registration number.
func (r *StudentRepository) ExistsByRegistration(ctx context.Context, registrationNumber string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"registrationNumber": registrationNumber})
	if err != nil {
		return false, fmt.Errorf("count students: %w", err)
	}
	return count > 0, nil
}

// Create inserts a student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.StudentRecord) error {
	if _, err := r.col.InsertOne(ctx, student); err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

// FindByID fetches one student record by its document ID.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.StudentRecord, error) {
	var student models.StudentRecord
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&student); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find student %s: %w", id, err)
	}
	return &student, nil
}
