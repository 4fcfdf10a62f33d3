package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/campusworks/results-api/internal/dto"
	"github.com/campusworks/results-api/pkg/export"
	appErrors "github.com/campusworks/results-api/pkg/errors"
)

type accessValidator interface {
	ValidateAccess(ctx context.Context, req dto.GradeAccessRequest) (*dto.GradeAccessResult, error)
}

type statementRenderer interface {
	RenderPDF(stmt export.Statement) ([]byte, error)
	RenderCSV(stmt export.Statement) ([]byte, error)
}

// ReportService renders downloadable result statements. Access control is
// delegated to the grade access pipeline so a statement can never reveal
// more than the interactive endpoints would.
type ReportService struct {
	access   accessValidator
	exporter statementRenderer
	logger   *zap.Logger
	enabled  bool
}

// NewReportService constructs a ReportService.
func NewReportService(access accessValidator, exporter statementRenderer, logger *zap.Logger, enabled bool) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		access:   access,
		exporter: exporter,
		logger:   logger,
		enabled:  enabled,
	}
}

// StatementFormat selects the rendered document type.
type StatementFormat string

const (
	FormatPDF StatementFormat = "pdf"
	FormatCSV StatementFormat = "csv"
)

// RenderStatement validates the identity pair and renders the resulting
// grade listing in the requested format.
func (s *ReportService) RenderStatement(ctx context.Context, req dto.GradeAccessRequest, format StatementFormat) ([]byte, string, error) {
	if !s.enabled {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "statement downloads are disabled")
	}

	result, err := s.access.ValidateAccess(ctx, req)
	if err != nil {
		return nil, "", err
	}

	stmt := buildStatement(result)

	switch format {
	case FormatCSV:
		data, err := s.exporter.RenderCSV(stmt)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render statement")
		}
		return data, "text/csv", nil
	case FormatPDF, "":
		data, err := s.exporter.RenderPDF(stmt)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render statement")
		}
		return data, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "unsupported statement format")
	}
}

func buildStatement(result *dto.GradeAccessResult) export.Statement {
	stmt := export.Statement{
		Title: "Statement of Results",
		Lines: []string{
			fmt.Sprintf("Name: %s", result.Student.Name),
			fmt.Sprintf("Registration Number: %s", result.Student.RegistrationNumber),
			fmt.Sprintf("Department: %s", result.Student.DepartmentLabel),
			fmt.Sprintf("Cohort: %s / Term: %s", result.EffectiveFilters.CohortLabel, result.EffectiveFilters.TermLabel),
		},
		Headers: []string{"Subject", "Cohort", "Term", "Score", "Grade", "Date"},
	}

	for _, record := range result.Grades {
		score := strconv.FormatFloat(record.Score, 'f', -1, 64)
		if !record.Present {
			score = "-"
		}
		stmt.Rows = append(stmt.Rows, map[string]string{
			"Subject": record.Subject,
			"Cohort":  record.CohortLabel,
			"Term":    record.TermLabel,
			"Score":   score,
			"Grade":   record.Grade,
			"Date":    record.Date.Format("2006-01-02"),
		})
	}

	return stmt
}
