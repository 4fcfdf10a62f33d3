package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/results-api/internal/dto"
	"github.com/campusworks/results-api/internal/middleware"
	"github.com/campusworks/results-api/internal/models"
	"github.com/campusworks/results-api/internal/service"
	appErrors "github.com/campusworks/results-api/pkg/errors"
	"github.com/campusworks/results-api/pkg/response"
)

// GradeHandler serves the staff grade management endpoints.
type GradeHandler struct {
	grades *service.GradeService
}

// NewGradeHandler creates a new handler.
func NewGradeHandler(grades *service.GradeService) *GradeHandler {
	return &GradeHandler{grades: grades}
}

// Record godoc
// @Summary Record grades
// @Description Append a batched grade document for a student
// @Tags Grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.RecordGradesRequest true "Grade batch"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /grades [post]
func (h *GradeHandler) Record(c *gin.Context) {
	var req dto.RecordGradesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid grade payload"))
		return
	}

	doc, err := h.grades.Record(c.Request.Context(), req, middleware.CurrentClaims(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, doc)
}

// List godoc
// @Summary List grade records
// @Description List normalized per-subject grade records
// @Tags Grades
// @Produce json
// @Security BearerAuth
// @Param studentId query string false "Registration number filter"
// @Param cohort query string false "Cohort label filter"
// @Param term query string false "Term label filter"
// @Success 200 {object} response.Envelope
// @Router /grades [get]
func (h *GradeHandler) List(c *gin.Context) {
	filter := models.GradeFilter{
		StudentID:   c.Query("studentId"),
		CohortLabel: c.Query("cohort"),
		TermLabel:   c.Query("term"),
	}

	records, err := h.grades.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, records, nil)
}
