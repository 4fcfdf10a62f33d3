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

type gradeDocumentStore interface {
	List(ctx context.Context, filter models.GradeFilter) ([]models.GradeDocument, error)
	Append(ctx context.Context, doc *models.GradeDocument) error
}

// GradeService handles staff-side grade entry and review.
type GradeService struct {
	grades    gradeDocumentStore
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewGradeService constructs a GradeService.
func NewGradeService(grades gradeDocumentStore, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &GradeService{
		grades:    grades,
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Record appends one batched grade document for a student. Letter grades
// are classified at write time from the submitted marks; stored documents
// always carry the computed grade.
func (s *GradeService) Record(ctx context.Context, req dto.RecordGradesRequest, actor *models.JWTClaims) (*models.GradeDocument, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade submission")
	}

	if actor != nil {
		if actor.Role == models.RoleTeacher && !actor.CanManageResults {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "account cannot manage results")
		}
		// Cohort-scoped accounts may only enter grades for their own cohort.
		if actor.Scope.CohortKey != "" && models.CohortLabelFor(actor.Scope.CohortKey) != req.CohortLabel {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "grade entry outside assigned cohort")
		}
	}

	entries := make([]models.GradeSubjectEntry, 0, len(req.Subjects))
	for _, item := range req.Subjects {
		entries = append(entries, models.GradeSubjectEntry{
			Name:    item.Name,
			Marks:   item.Marks,
			Grade:   Classify(item.Marks, item.Present),
			Present: item.Present,
		})
	}

	doc := &models.GradeDocument{
		ID:          uuid.NewString(),
		StudentID:   req.StudentID,
		CohortLabel: req.CohortLabel,
		TermLabel:   req.TermLabel,
		Subjects:    entries,
		CreatedAt:   s.now(),
	}

	if err := s.grades.Append(ctx, doc); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store grade document")
	}

	s.logger.Info("grades recorded",
		zap.String("studentId", req.StudentID),
		zap.String("cohort", req.CohortLabel),
		zap.String("term", req.TermLabel),
		zap.Int("subjects", len(entries)),
	)

	return doc, nil
}

// List returns normalized records for staff review, narrowed by the
// optional filter fields.
func (s *GradeService) List(ctx context.Context, filter models.GradeFilter) ([]models.GradeRecord, error) {
	docs, err := s.grades.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade documents")
	}

	return NormalizeGradeDocuments(docs, s.now()), nil
}
