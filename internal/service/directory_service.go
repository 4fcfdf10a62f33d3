package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusworks/results-api/internal/dto"
	"github.com/campusworks/results-api/internal/models"
	appErrors "github.com/campusworks/results-api/pkg/errors"
)

type institutionStore interface {
	GetAll(ctx context.Context) ([]models.Institution, error)
	FindByID(ctx context.Context, id string) (*models.Institution, error)
	Create(ctx context.Context, inst *models.Institution) error
	Replace(ctx context.Context, inst *models.Institution) error
}

// DirectoryService administers the institution tree. Every mutation
// rebuilds the affected institution from the mutated node up and replaces
// the stored document wholesale, so snapshots held by concurrent readers
// are never mutated in place.
type DirectoryService struct {
	institutions institutionStore
	cache        snapshotCache
	validator    *validator.Validate
	logger       *zap.Logger
	now          func() time.Time
}

// NewDirectoryService constructs a DirectoryService.
func NewDirectoryService(institutions institutionStore, cache snapshotCache, validate *validator.Validate, logger *zap.Logger) *DirectoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &DirectoryService{
		institutions: institutions,
		cache:        cache,
		validator:    validate,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// List returns the full directory snapshot.
func (s *DirectoryService) List(ctx context.Context) ([]models.Institution, error) {
	institutions, err := s.institutions.GetAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load directory")
	}
	return institutions, nil
}

// CreateInstitution adds an empty institution root.
func (s *DirectoryService) CreateInstitution(ctx context.Context, req dto.CreateInstitutionRequest) (*models.Institution, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "institution name is required")
	}

	inst := &models.Institution{
		ID:        uuid.NewString(),
		Name:      req.Name,
		CreatedAt: s.now(),
	}

	if err := s.institutions.Create(ctx, inst); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store institution")
	}

	s.invalidateSnapshot(ctx)
	return inst, nil
}

// AddDepartment adds a department (with empty cohorts) under an
// institution. Department codes are unique within the institution.
func (s *DirectoryService) AddDepartment(ctx context.Context, institutionID string, req dto.AddDepartmentRequest) (*models.Institution, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "department name and code are required")
	}

	inst, err := s.loadInstitution(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	for _, dept := range inst.Departments {
		if dept.Code == req.Code {
			return nil, appErrors.Clone(appErrors.ErrConflict, "department code already exists in this institution")
		}
	}

	rebuilt := cloneInstitution(*inst)
	cohorts := make(map[models.CohortKey]models.Cohort, len(models.OrderedCohortKeys()))
	for _, key := range models.OrderedCohortKeys() {
		cohorts[key] = models.Cohort{}
	}
	rebuilt.Departments = append(rebuilt.Departments, models.Department{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Cohorts:     cohorts,
	})

	if err := s.replace(ctx, &rebuilt); err != nil {
		return nil, err
	}
	return &rebuilt, nil
}

// AddInstitutionAccount creates a staff account at institution scope.
// Login IDs are unique within the scope being written to; other scopes
// may legitimately hold the same login ID.
func (s *DirectoryService) AddInstitutionAccount(ctx context.Context, institutionID string, req dto.AddAccountRequest) (*models.Account, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid account payload")
	}

	inst, err := s.loadInstitution(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	if hasLoginID(inst.Accounts, req.LoginID) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "login id already exists in this scope")
	}

	acct, err := s.newAccount(req)
	if err != nil {
		return nil, err
	}

	rebuilt := cloneInstitution(*inst)
	rebuilt.Accounts = append(rebuilt.Accounts, *acct)

	if err := s.replace(ctx, &rebuilt); err != nil {
		return nil, err
	}
	return acct, nil
}

// AddCohortAccount creates a staff account inside one cohort of a
// department.
func (s *DirectoryService) AddCohortAccount(ctx context.Context, institutionID, departmentID string, cohortKey models.CohortKey, req dto.AddAccountRequest) (*models.Account, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid account payload")
	}

	if !validCohortKey(cohortKey) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown cohort key")
	}

	inst, err := s.loadInstitution(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	deptIdx := -1
	for i, dept := range inst.Departments {
		if dept.ID == departmentID {
			deptIdx = i
			break
		}
	}
	if deptIdx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
	}

	cohort := inst.Departments[deptIdx].Cohorts[cohortKey]
	if hasLoginID(cohort.Accounts, req.LoginID) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "login id already exists in this scope")
	}

	acct, err := s.newAccount(req)
	if err != nil {
		return nil, err
	}

	rebuilt := cloneInstitution(*inst)
	if rebuilt.Departments[deptIdx].Cohorts == nil {
		rebuilt.Departments[deptIdx].Cohorts = make(map[models.CohortKey]models.Cohort)
	}
	rebuiltCohort := rebuilt.Departments[deptIdx].Cohorts[cohortKey]
	rebuiltCohort.Accounts = append(rebuiltCohort.Accounts, *acct)
	rebuilt.Departments[deptIdx].Cohorts[cohortKey] = rebuiltCohort

	if err := s.replace(ctx, &rebuilt); err != nil {
		return nil, err
	}
	return acct, nil
}

func (s *DirectoryService) loadInstitution(ctx context.Context, id string) (*models.Institution, error) {
	inst, err := s.institutions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "institution not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load institution")
	}
	return inst, nil
}

func (s *DirectoryService) replace(ctx context.Context, inst *models.Institution) error {
	if err := s.institutions.Replace(ctx, inst); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return appErrors.Clone(appErrors.ErrNotFound, "institution not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store institution")
	}
	s.invalidateSnapshot(ctx)
	return nil
}

func (s *DirectoryService) invalidateSnapshot(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, directorySnapshotKey); err != nil {
		s.logger.Warn("directory cache invalidation failed", zap.Error(err))
	}
}

func (s *DirectoryService) newAccount(req dto.AddAccountRequest) (*models.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash secret")
	}

	return &models.Account{
		ID:               uuid.NewString(),
		LoginID:          req.LoginID,
		Secret:           string(hash),
		Role:             models.AccountRole(req.Role),
		Status:           models.StatusActive,
		CanManageResults: req.CanManageResults,
		CreatedAt:        s.now(),
	}, nil
}

func hasLoginID(accounts []models.Account, loginID string) bool {
	for _, acct := range accounts {
		if acct.LoginID == loginID {
			return true
		}
	}
	return false
}

func validCohortKey(key models.CohortKey) bool {
	for _, known := range models.OrderedCohortKeys() {
		if key == known {
			return true
		}
	}
	return false
}

// cloneInstitution deep-copies the tree so a mutation never aliases
// slices or maps with snapshots already handed to readers.
func cloneInstitution(in models.Institution) models.Institution {
	out := in
	out.Accounts = append([]models.Account(nil), in.Accounts...)
	if in.Departments != nil {
		out.Departments = make([]models.Department, len(in.Departments))
		for i, dept := range in.Departments {
			out.Departments[i] = cloneDepartment(dept)
		}
	}
	return out
}

func cloneDepartment(in models.Department) models.Department {
	out := in
	if in.Cohorts != nil {
		out.Cohorts = make(map[models.CohortKey]models.Cohort, len(in.Cohorts))
		for key, cohort := range in.Cohorts {
			out.Cohorts[key] = models.Cohort{
				Accounts: append([]models.Account(nil), cohort.Accounts...),
				Subjects: append([]models.SubjectDefinition(nil), cohort.Subjects...),
			}
		}
	}
	return out
}
