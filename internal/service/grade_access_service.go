package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusworks/results-api/internal/dto"
	"github.com/campusworks/results-api/internal/models"
	appErrors "github.com/campusworks/results-api/pkg/errors"
)

type studentFinder interface {
	FindByRegistration(ctx context.Context, registrationNumber string) ([]models.StudentRecord, error)
}

type gradeDocumentLister interface {
	List(ctx context.Context, filter models.GradeFilter) ([]models.GradeDocument, error)
}

// GradeAccessService gates grade release behind the student identity
// pair. It never distinguishes a wrong registration number from a wrong
// date of birth.
type GradeAccessService struct {
	students  studentFinder
	grades    gradeDocumentLister
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewGradeAccessService constructs a GradeAccessService.
func NewGradeAccessService(students studentFinder, grades gradeDocumentLister, validate *validator.Validate, logger *zap.Logger) *GradeAccessService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &GradeAccessService{
		students:  students,
		grades:    grades,
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ValidateAccess verifies the identity pair and returns the student's
// normalized grades, narrowed by the optional cohort/term filters.
//
// An empty result is a failure only when at least one filter was
// supplied; an unfiltered empty result is a valid response with an empty
// grade list.
func (s *GradeAccessService) ValidateAccess(ctx context.Context, req dto.GradeAccessRequest) (*dto.GradeAccessResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "registration number and date of birth are required")
	}

	candidates, err := s.students.FindByRegistration(ctx, req.RegistrationNumber)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up student")
	}

	// First record matching both halves of the pair wins; duplicates in
	// legacy data resolve deterministically to storage order.
	var student *models.StudentRecord
	for i := range candidates {
		if candidates[i].DateOfBirth == req.DateOfBirth {
			student = &candidates[i]
			break
		}
	}
	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidIdentity, "")
	}

	docs, err := s.grades.List(ctx, models.GradeFilter{
		StudentID:   req.RegistrationNumber,
		CohortLabel: req.CohortLabel,
		TermLabel:   req.TermLabel,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade documents")
	}

	records := NormalizeGradeDocuments(docs, s.now())

	if len(records) == 0 && (req.CohortLabel != "" || req.TermLabel != "") {
		return nil, appErrors.Clone(appErrors.ErrNoGradesForScope, "")
	}

	return &dto.GradeAccessResult{
		Student: dto.StudentProfile{
			RegistrationNumber: student.RegistrationNumber,
			Name:               student.Name,
			Email:              student.Email,
			CohortLabel:        student.CohortLabel,
			DepartmentLabel:    student.DepartmentLabel,
		},
		Grades: records,
		EffectiveFilters: dto.EffectiveFilters{
			CohortLabel: orAll(req.CohortLabel),
			TermLabel:   orAll(req.TermLabel),
		},
	}, nil
}

// ValidateAccessStrict runs the same pipeline and additionally echoes the
// verified request inputs in the payload.
func (s *GradeAccessService) ValidateAccessStrict(ctx context.Context, req dto.GradeAccessRequest) (*dto.GradeAccessValidation, error) {
	result, err := s.ValidateAccess(ctx, req)
	if err != nil {
		return nil, err
	}

	return &dto.GradeAccessValidation{
		GradeAccessResult: *result,
		Validation: dto.ValidationEcho{
			RegistrationNumber: req.RegistrationNumber,
			DateOfBirth:        req.DateOfBirth,
			CohortLabel:        orAll(req.CohortLabel),
			TermLabel:          orAll(req.TermLabel),
			Verified:           true,
		},
	}, nil
}

func orAll(filter string) string {
	if filter == "" {
		return "all"
	}
	return filter
}
