package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campusworks/results-api/internal/models"
)

// institutionsCollection is the document-store collection holding one
// nested directory tree per institution.
const institutionsCollection = "institutions"

// InstitutionRepository reads and replaces institution trees wholesale.
// There is no partial update: directory writes rebuild the tree from the
// mutated node up and replace the whole document.
type InstitutionRepository struct {
	col *mongo.Collection
}

// NewInstitutionRepository creates an institution repository.
func NewInstitutionRepository(db *mongo.Database) *InstitutionRepository {
	return &InstitutionRepository{col: db.Collection(institutionsCollection)}
}

// GetAll fetches the full directory snapshot in storage order.
func (r *InstitutionRepository) GetAll(ctx context.Context) ([]models.Institution, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find institutions: %w", err)
	}
	defer cursor.Close(ctx)

	var institutions []models.Institution
	if err := cursor.All(ctx, &institutions); err != nil {
		return nil, fmt.Errorf("decode institutions: %w", err)
	}
	return institutions, nil
}

// FindByID fetches one institution tree.
func (r *InstitutionRepository) FindByID(ctx context.Context, id string) (*models.Institution, error) {
	var inst models.Institution
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&inst); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find institution %s: %w", id, err)
	}
	return &inst, nil
}

// Create inserts a new institution tree.
func (r *InstitutionRepository) Create(ctx context.Context, inst *models.Institution) error {
	if _, err := r.col.InsertOne(ctx, inst); err != nil {
		return fmt.Errorf("insert institution: %w", err)
	}
	return nil
}

// Replace swaps the stored tree for the given rebuilt one.
func (r *InstitutionRepository) Replace(ctx context.Context, inst *models.Institution) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": inst.ID}, inst)
	if err != nil {
		return fmt.Errorf("replace institution %s: %w", inst.ID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
