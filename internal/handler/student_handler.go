package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/results-api/internal/dto"
	"github.com/campusworks/results-api/internal/models"
	"github.com/campusworks/results-api/internal/service"
	appErrors "github.com/campusworks/results-api/pkg/errors"
	"github.com/campusworks/results-api/pkg/response"
)

// StudentHandler serves staff student management and the public
// identity-gated grade access endpoints.
type StudentHandler struct {
	students *service.StudentService
	access   *service.GradeAccessService
	reports  *service.ReportService
}

// NewStudentHandler creates a new handler.
func NewStudentHandler(students *service.StudentService, access *service.GradeAccessService, reports *service.ReportService) *StudentHandler {
	return &StudentHandler{students: students, access: access, reports: reports}
}

// Create godoc
// @Summary Register student
// @Description Create a student identity record
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid student payload"))
		return
	}

	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, student)
}

// List godoc
// @Summary List students
// @Description List student records with optional search and cohort filters
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name or registration number search"
// @Param cohort query string false "Cohort label filter"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	filter := models.StudentFilter{
		Search:      c.Query("search"),
		CohortLabel: c.Query("cohort"),
	}

	students, err := h.students.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, students, nil)
}

// Get godoc
// @Summary Get student
// @Description Fetch a single student record by ID
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, student, nil)
}

// Verify godoc
// @Summary Verify student identity and fetch grades
// @Description Validate the registration number and date of birth pair and return the student's grades
// @Tags Grade Access
// @Accept json
// @Produce json
// @Param payload body dto.GradeAccessRequest true "Identity payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/verify [post]
func (h *StudentHandler) Verify(c *gin.Context) {
	var req dto.GradeAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid verification payload"))
		return
	}

	result, err := h.access.ValidateAccess(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result, nil)
}

// ValidateGradeAccess godoc
// @Summary Validate grade access
// @Description Run the identity check and echo the verified inputs alongside the grades
// @Tags Grade Access
// @Accept json
// @Produce json
// @Param payload body dto.GradeAccessRequest true "Identity payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/validate-grade-access [post]
func (h *StudentHandler) ValidateGradeAccess(c *gin.Context) {
	var req dto.GradeAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid validation payload"))
		return
	}

	result, err := h.access.ValidateAccessStrict(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result, nil)
}

// Statement godoc
// @Summary Download result statement
// @Description Render the student's grades as a downloadable statement after the identity check
// @Tags Grade Access
// @Produce application/pdf
// @Param regno path string true "Registration number"
// @Param dob query string true "Date of birth (YYYY-MM-DD)"
// @Param cohort query string false "Cohort label filter"
// @Param term query string false "Term label filter"
// @Param format query string false "pdf or csv" default(pdf)
// @Success 200 {file} binary
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{regno}/statement [get]
func (h *StudentHandler) Statement(c *gin.Context) {
	req := dto.GradeAccessRequest{
		RegistrationNumber: c.Param("regno"),
		DateOfBirth:        c.Query("dob"),
		CohortLabel:        c.Query("cohort"),
		TermLabel:          c.Query("term"),
	}
	format := service.StatementFormat(c.Query("format"))

	data, contentType, err := h.reports.RenderStatement(c.Request.Context(), req, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	ext := "pdf"
	if format == service.FormatCSV {
		ext = "csv"
	}
	filename := fmt.Sprintf("statement-%s.%s", req.RegistrationNumber, ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
