package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusworks/results-api/internal/dto"
	"github.com/campusworks/results-api/internal/models"
	"github.com/campusworks/results-api/pkg/export"
	appErrors "github.com/campusworks/results-api/pkg/errors"
)

type stubAccessValidator struct {
	result *dto.GradeAccessResult
	err    error
}

func (s *stubAccessValidator) ValidateAccess(ctx context.Context, req dto.GradeAccessRequest) (*dto.GradeAccessResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func statementResult() *dto.GradeAccessResult {
	return &dto.GradeAccessResult{
		Student: dto.StudentProfile{
			RegistrationNumber: "REG-001",
			Name:               "Priya Raman",
			DepartmentLabel:    "Computer Science",
		},
		Grades: []models.GradeRecord{
			{ID: "d1_Algorithms", Subject: "Algorithms", CohortLabel: "Year I", TermLabel: "Term 2", Score: 92, Grade: "O", Present: true, Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "d1_Networks", Subject: "Networks", CohortLabel: "Year I", TermLabel: "Term 2", Grade: "UA", Present: false, Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		},
		EffectiveFilters: dto.EffectiveFilters{CohortLabel: "all", TermLabel: "all"},
	}
}

func TestRenderStatementPDF(t *testing.T) {
	svc := NewReportService(&stubAccessValidator{result: statementResult()}, export.NewStatementExporter(), zap.NewNop(), true)

	data, contentType, err := svc.RenderStatement(context.Background(), dto.GradeAccessRequest{RegistrationNumber: "REG-001", DateOfBirth: "2006-03-14"}, FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestRenderStatementCSV(t *testing.T) {
	svc := NewReportService(&stubAccessValidator{result: statementResult()}, export.NewStatementExporter(), zap.NewNop(), true)

	data, contentType, err := svc.RenderStatement(context.Background(), dto.GradeAccessRequest{RegistrationNumber: "REG-001", DateOfBirth: "2006-03-14"}, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)

	body := string(data)
	assert.Contains(t, body, "Algorithms")
	// Absent rows render a dash instead of a numeric score.
	assert.Contains(t, body, "Networks,Year I,Term 2,-,UA")
}

func TestRenderStatementDefaultsToPDF(t *testing.T) {
	svc := NewReportService(&stubAccessValidator{result: statementResult()}, export.NewStatementExporter(), zap.NewNop(), true)

	_, contentType, err := svc.RenderStatement(context.Background(), dto.GradeAccessRequest{RegistrationNumber: "REG-001", DateOfBirth: "2006-03-14"}, "")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
}

func TestRenderStatementUnknownFormat(t *testing.T) {
	svc := NewReportService(&stubAccessValidator{result: statementResult()}, export.NewStatementExporter(), zap.NewNop(), true)

	_, _, err := svc.RenderStatement(context.Background(), dto.GradeAccessRequest{RegistrationNumber: "REG-001", DateOfBirth: "2006-03-14"}, "docx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRenderStatementDisabled(t *testing.T) {
	svc := NewReportService(&stubAccessValidator{result: statementResult()}, export.NewStatementExporter(), zap.NewNop(), false)

	_, _, err := svc.RenderStatement(context.Background(), dto.GradeAccessRequest{RegistrationNumber: "REG-001", DateOfBirth: "2006-03-14"}, FormatPDF)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestRenderStatementAccessDenied(t *testing.T) {
	svc := NewReportService(&stubAccessValidator{err: appErrors.Clone(appErrors.ErrInvalidIdentity, "")}, export.NewStatementExporter(), zap.NewNop(), true)

	_, _, err := svc.RenderStatement(context.Background(), dto.GradeAccessRequest{RegistrationNumber: "REG-001", DateOfBirth: "bad"}, FormatPDF)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidIdentity.Code, appErrors.FromError(err).Code)
}
