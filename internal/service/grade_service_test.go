package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusworks/results-api/internal/dto"
	"github.com/campusworks/results-api/internal/models"
	appErrors "github.com/campusworks/results-api/pkg/errors"
)

type mockGradeStore struct {
	docs     []models.GradeDocument
	appended []*models.GradeDocument
}

func (m *mockGradeStore) List(ctx context.Context, filter models.GradeFilter) ([]models.GradeDocument, error) {
	return m.docs, nil
}

func (m *mockGradeStore) Append(ctx context.Context, doc *models.GradeDocument) error {
	m.appended = append(m.appended, doc)
	return nil
}

func recordRequest() dto.RecordGradesRequest {
	return dto.RecordGradesRequest{
		StudentID:   "REG-001",
		CohortLabel: "Year I",
		TermLabel:   "Term 2",
		Subjects: []dto.GradeEntryItem{
			{Name: "Algorithms", Marks: 92, Present: true},
			{Name: "Databases", Marks: 45, Present: true},
			{Name: "Networks", Marks: 0, Present: false},
		},
	}
}

func TestRecordClassifiesAtWriteTime(t *testing.T) {
	store := &mockGradeStore{}
	svc := NewGradeService(store, validator.New(), zap.NewNop())

	doc, err := svc.Record(context.Background(), recordRequest(), nil)
	require.NoError(t, err)
	require.Len(t, store.appended, 1)
	require.Len(t, doc.Subjects, 3)

	assert.Equal(t, GradeOutstanding, doc.Subjects[0].Grade)
	assert.Equal(t, GradeUngraded, doc.Subjects[1].Grade)
	assert.Equal(t, GradeAbsent, doc.Subjects[2].Grade)
	assert.NotEmpty(t, doc.ID)
	assert.False(t, doc.CreatedAt.IsZero())
}

func TestRecordTeacherWithoutGrant(t *testing.T) {
	svc := NewGradeService(&mockGradeStore{}, validator.New(), zap.NewNop())
	actor := &models.JWTClaims{Role: models.RoleTeacher, CanManageResults: false}

	_, err := svc.Record(context.Background(), recordRequest(), actor)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestRecordCohortScopedActorLimitedToOwnCohort(t *testing.T) {
	svc := NewGradeService(&mockGradeStore{}, validator.New(), zap.NewNop())
	actor := &models.JWTClaims{
		Role:             models.RoleTeacher,
		CanManageResults: true,
		Scope:            models.Scope{CohortKey: models.CohortSecond},
	}

	req := recordRequest() // Year I submission
	_, err := svc.Record(context.Background(), req, actor)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	req.CohortLabel = models.CohortLabelFor(models.CohortSecond)
	_, err = svc.Record(context.Background(), req, actor)
	require.NoError(t, err)
}

func TestRecordValidation(t *testing.T) {
	svc := NewGradeService(&mockGradeStore{}, validator.New(), zap.NewNop())

	_, err := svc.Record(context.Background(), dto.RecordGradesRequest{StudentID: "REG-001"}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	bad := recordRequest()
	bad.Subjects[0].Marks = 120
	_, err = svc.Record(context.Background(), bad, nil)
	require.Error(t, err)
}

func TestListNormalizes(t *testing.T) {
	store := &mockGradeStore{docs: []models.GradeDocument{
		{
			ID:        "doc-1",
			StudentID: "REG-001",
			Subjects: []models.GradeSubjectEntry{
				{Name: "Algorithms", Marks: 92, Grade: "O", Present: true},
			},
		},
	}}
	svc := NewGradeService(store, validator.New(), zap.NewNop())

	records, err := svc.List(context.Background(), models.GradeFilter{StudentID: "REG-001"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "doc-1_Algorithms", records[0].ID)
}
