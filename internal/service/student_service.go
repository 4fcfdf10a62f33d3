package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/campusworks/results-api/internal/dto"
	"github.com/campusworks/results-api/internal/models"
	appErrors "github.com/campusworks/results-api/pkg/errors"
)

type studentStore interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentRecord, error)
	FindByID(ctx context.Context, id string) (*models.StudentRecord, error)
	ExistsByRegistration(ctx context.Context, registrationNumber string) (bool, error)
	Create(ctx context.Context, student *models.StudentRecord) error
}

// StudentService manages the staff-facing student roster.
type StudentService struct {
	students  studentStore
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewStudentService constructs a StudentService.
func NewStudentService(students studentStore, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &StudentService{
		students:  students,
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create registers a student identity record, rejecting duplicate
// registration numbers.
func (s *StudentService) Create(ctx context.Context, req dto.CreateStudentRequest) (*models.StudentRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	exists, err := s.students.ExistsByRegistration(ctx, req.RegistrationNumber)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check registration number")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student with this registration number already exists")
	}

	student := &models.StudentRecord{
		ID:                 uuid.NewString(),
		RegistrationNumber: req.RegistrationNumber,
		Name:               req.Name,
		Email:              req.Email,
		CohortLabel:        req.CohortLabel,
		DepartmentLabel:    req.DepartmentLabel,
		DateOfBirth:        req.DateOfBirth,
		CreatedAt:          s.now(),
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store student")
	}

	return student, nil
}

// List returns roster records matching the filter.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentRecord, error) {
	students, err := s.students.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, nil
}

// Get fetches one roster record.
func (s *StudentService) Get(ctx context.Context, id string) (*models.StudentRecord, error) {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}
