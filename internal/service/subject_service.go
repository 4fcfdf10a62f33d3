package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusworks/results-api/internal/dto"
	"github.com/campusworks/results-api/internal/models"
	appErrors "github.com/campusworks/results-api/pkg/errors"
)

type subjectBatchStore interface {
	ListBatches(ctx context.Context) ([]models.SubjectBatch, error)
	Append(ctx context.Context, batch *models.SubjectBatch) error
}

// SubjectService stores and serves subject definitions. Definitions are
// written as batches (one document per submission) and flattened on read.
type SubjectService struct {
	subjects  subjectBatchStore
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewSubjectService constructs a SubjectService.
func NewSubjectService(subjects subjectBatchStore, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SubjectService{
		subjects:  subjects,
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// AddBatch appends one subject definition batch.
func (s *SubjectService) AddBatch(ctx context.Context, req dto.AddSubjectsRequest) (*models.SubjectBatch, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject submission")
	}

	defs := make([]models.SubjectDefinition, 0, len(req.Subjects))
	for _, item := range req.Subjects {
		defs = append(defs, models.SubjectDefinition{
			Name:        item.Name,
			Code:        item.Code,
			CohortLabel: item.CohortLabel,
			TermLabel:   item.TermLabel,
		})
	}

	batch := &models.SubjectBatch{
		ID:        uuid.NewString(),
		Subjects:  defs,
		CreatedAt: s.now(),
	}

	if err := s.subjects.Append(ctx, batch); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store subject batch")
	}

	return batch, nil
}

// List flattens all stored batches into definitions matching the optional
// cohort and term labels, preserving batch and in-batch order.
func (s *SubjectService) List(ctx context.Context, cohortLabel, termLabel string) ([]models.SubjectDefinition, error) {
	batches, err := s.subjects.ListBatches(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject batches")
	}

	defs := make([]models.SubjectDefinition, 0)
	for _, batch := range batches {
		for _, def := range batch.Subjects {
			if cohortLabel != "" && def.CohortLabel != cohortLabel {
				continue
			}
			if termLabel != "" && def.TermLabel != termLabel {
				continue
			}
			defs = append(defs, def)
		}
	}

	return defs, nil
}
