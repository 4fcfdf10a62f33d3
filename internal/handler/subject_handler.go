package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/results-api/internal/dto"
	"github.com/campusworks/results-api/internal/service"
	appErrors "github.com/campusworks/results-api/pkg/errors"
	"github.com/campusworks/results-api/pkg/response"
)

// SubjectHandler serves subject catalogue endpoints.
type SubjectHandler struct {
	subjects *service.SubjectService
}

// NewSubjectHandler creates a new handler.
func NewSubjectHandler(subjects *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjects: subjects}
}

// AddBatch godoc
// @Summary Add subjects
// @Description Append a batch of subject definitions
// @Tags Subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.AddSubjectsRequest true "Subject batch"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /subjects [post]
func (h *SubjectHandler) AddBatch(c *gin.Context) {
	var req dto.AddSubjectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid subject payload"))
		return
	}

	batch, err := h.subjects.AddBatch(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, batch)
}

// List godoc
// @Summary List subjects
// @Description List subject definitions, optionally narrowed by cohort and term
// @Tags Subjects
// @Produce json
// @Security BearerAuth
// @Param cohort query string false "Cohort label filter"
// @Param term query string false "Term label filter"
// @Success 200 {object} response.Envelope
// @Router /subjects [get]
func (h *SubjectHandler) List(c *gin.Context) {
	subjects, err := h.subjects.List(c.Request.Context(), c.Query("cohort"), c.Query("term"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, subjects, nil)
}
