package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusworks/results-api/internal/dto"
	"github.com/campusworks/results-api/internal/models"
	appErrors "github.com/campusworks/results-api/pkg/errors"
)

type mockStudentFinder struct {
	students []models.StudentRecord
	err      error
}

func (m *mockStudentFinder) FindByRegistration(ctx context.Context, registrationNumber string) ([]models.StudentRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []models.StudentRecord
	for _, s := range m.students {
		if s.RegistrationNumber == registrationNumber {
			out = append(out, s)
		}
	}
	return out, nil
}

type mockGradeLister struct {
	docs []models.GradeDocument
	err  error
	last models.GradeFilter
}

func (m *mockGradeLister) List(ctx context.Context, filter models.GradeFilter) ([]models.GradeDocument, error) {
	m.last = filter
	if m.err != nil {
		return nil, m.err
	}
	var out []models.GradeDocument
	for _, doc := range m.docs {
		if filter.StudentID != "" && doc.StudentID != filter.StudentID {
			continue
		}
		if filter.CohortLabel != "" && doc.CohortLabel != filter.CohortLabel {
			continue
		}
		if filter.TermLabel != "" && doc.TermLabel != filter.TermLabel {
			continue
		}
		out = append(out, doc)
	}
	return out, nil
}

func newAccessService(students *mockStudentFinder, grades *mockGradeLister) *GradeAccessService {
	return NewGradeAccessService(students, grades, validator.New(), zap.NewNop())
}

func TestValidateAccessSuccess(t *testing.T) {
	students := &mockStudentFinder{students: []models.StudentRecord{
		{ID: "s1", RegistrationNumber: "REG-001", Name: "Priya Raman", Email: "priya@example.edu", CohortLabel: "Year I", DepartmentLabel: "Computer Science", DateOfBirth: "2006-03-14"},
	}}
	grades := &mockGradeLister{docs: []models.GradeDocument{
		{
			ID:          "doc-1",
			StudentID:   "REG-001",
			CohortLabel: "Year I",
			TermLabel:   "Term 2",
			Subjects: []models.GradeSubjectEntry{
				{Name: "Algorithms", Marks: 92, Grade: "O", Present: true},
				{Name: "Databases", Marks: 58, Grade: "B", Present: true},
			},
			CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}}
	svc := newAccessService(students, grades)

	result, err := svc.ValidateAccess(context.Background(), dto.GradeAccessRequest{
		RegistrationNumber: "REG-001",
		DateOfBirth:        "2006-03-14",
	})
	require.NoError(t, err)

	assert.Equal(t, "Priya Raman", result.Student.Name)
	require.Len(t, result.Grades, 2)
	assert.Equal(t, "O", result.Grades[0].Grade)
	assert.Equal(t, "B", result.Grades[1].Grade)
	assert.Equal(t, "all", result.EffectiveFilters.CohortLabel)
	assert.Equal(t, "all", result.EffectiveFilters.TermLabel)
}

func TestValidateAccessWrongDateOfBirth(t *testing.T) {
	students := &mockStudentFinder{students: []models.StudentRecord{
		{ID: "s1", RegistrationNumber: "REG-001", DateOfBirth: "2006-03-14"},
	}}
	svc := newAccessService(students, &mockGradeLister{})

	_, err := svc.ValidateAccess(context.Background(), dto.GradeAccessRequest{
		RegistrationNumber: "REG-001",
		DateOfBirth:        "2006-03-15",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidIdentity.Code, appErr.Code)
}

func TestValidateAccessUnknownRegistrationSameDenial(t *testing.T) {
	svc := newAccessService(&mockStudentFinder{}, &mockGradeLister{})

	_, err := svc.ValidateAccess(context.Background(), dto.GradeAccessRequest{
		RegistrationNumber: "REG-404",
		DateOfBirth:        "2000-01-01",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	// The denial never reveals which half of the pair failed.
	assert.Equal(t, appErrors.ErrInvalidIdentity.Code, appErr.Code)
	assert.Equal(t, appErrors.ErrInvalidIdentity.Message, appErr.Message)
}

func TestValidateAccessDuplicateRegistrationFirstMatchWins(t *testing.T) {
	students := &mockStudentFinder{students: []models.StudentRecord{
		{ID: "s1", RegistrationNumber: "REG-001", Name: "First", DateOfBirth: "2001-01-01"},
		{ID: "s2", RegistrationNumber: "REG-001", Name: "Second", DateOfBirth: "2006-03-14"},
		{ID: "s3", RegistrationNumber: "REG-001", Name: "Third", DateOfBirth: "2006-03-14"},
	}}
	svc := newAccessService(students, &mockGradeLister{})

	result, err := svc.ValidateAccess(context.Background(), dto.GradeAccessRequest{
		RegistrationNumber: "REG-001",
		DateOfBirth:        "2006-03-14",
	})
	require.NoError(t, err)
	assert.Equal(t, "Second", result.Student.Name)
}

func TestValidateAccessFilteredEmptyFails(t *testing.T) {
	students := &mockStudentFinder{students: []models.StudentRecord{
		{ID: "s1", RegistrationNumber: "REG-001", DateOfBirth: "2006-03-14"},
	}}
	grades := &mockGradeLister{docs: []models.GradeDocument{
		{ID: "doc-1", StudentID: "REG-001", CohortLabel: "Year I", TermLabel: "Term 1", Subject: "History", Present: true},
	}}
	svc := newAccessService(students, grades)

	_, err := svc.ValidateAccess(context.Background(), dto.GradeAccessRequest{
		RegistrationNumber: "REG-001",
		DateOfBirth:        "2006-03-14",
		TermLabel:          "Term 3",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNoGradesForScope.Code, appErr.Code)
}

func TestValidateAccessUnfilteredEmptySucceeds(t *testing.T) {
	students := &mockStudentFinder{students: []models.StudentRecord{
		{ID: "s1", RegistrationNumber: "REG-001", DateOfBirth: "2006-03-14"},
	}}
	svc := newAccessService(students, &mockGradeLister{})

	result, err := svc.ValidateAccess(context.Background(), dto.GradeAccessRequest{
		RegistrationNumber: "REG-001",
		DateOfBirth:        "2006-03-14",
	})
	require.NoError(t, err)
	assert.Empty(t, result.Grades)
}

func TestValidateAccessFilterEcho(t *testing.T) {
	students := &mockStudentFinder{students: []models.StudentRecord{
		{ID: "s1", RegistrationNumber: "REG-001", DateOfBirth: "2006-03-14"},
	}}
	grades := &mockGradeLister{docs: []models.GradeDocument{
		{ID: "doc-1", StudentID: "REG-001", CohortLabel: "Year I", TermLabel: "Term 1", Subject: "History", Present: true},
	}}
	svc := newAccessService(students, grades)

	result, err := svc.ValidateAccess(context.Background(), dto.GradeAccessRequest{
		RegistrationNumber: "REG-001",
		DateOfBirth:        "2006-03-14",
		CohortLabel:        "Year I",
	})
	require.NoError(t, err)
	assert.Equal(t, "Year I", result.EffectiveFilters.CohortLabel)
	assert.Equal(t, "all", result.EffectiveFilters.TermLabel)
	assert.Equal(t, "Year I", grades.last.CohortLabel)
}

func TestValidateAccessMissingFields(t *testing.T) {
	svc := newAccessService(&mockStudentFinder{}, &mockGradeLister{})

	_, err := svc.ValidateAccess(context.Background(), dto.GradeAccessRequest{RegistrationNumber: "REG-001"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestValidateAccessStorageError(t *testing.T) {
	svc := newAccessService(&mockStudentFinder{err: errors.New("boom")}, &mockGradeLister{})

	_, err := svc.ValidateAccess(context.Background(), dto.GradeAccessRequest{
		RegistrationNumber: "REG-001",
		DateOfBirth:        "2006-03-14",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErr.Code)
}

func TestValidateAccessStrictEchoesInputs(t *testing.T) {
	students := &mockStudentFinder{students: []models.StudentRecord{
		{ID: "s1", RegistrationNumber: "REG-001", Name: "Priya Raman", DateOfBirth: "2006-03-14"},
	}}
	svc := newAccessService(students, &mockGradeLister{})

	result, err := svc.ValidateAccessStrict(context.Background(), dto.GradeAccessRequest{
		RegistrationNumber: "REG-001",
		DateOfBirth:        "2006-03-14",
	})
	require.NoError(t, err)
	assert.True(t, result.Validation.Verified)
	assert.Equal(t, "REG-001", result.Validation.RegistrationNumber)
	assert.Equal(t, "2006-03-14", result.Validation.DateOfBirth)
	assert.Equal(t, "all", result.Validation.CohortLabel)
	assert.Equal(t, "all", result.Validation.TermLabel)
}
