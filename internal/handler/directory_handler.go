package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/results-api/internal/dto"
	"github.com/campusworks/results-api/internal/models"
	"github.com/campusworks/results-api/internal/service"
	appErrors "github.com/campusworks/results-api/pkg/errors"
	"github.com/campusworks/results-api/pkg/response"
)

// DirectoryHandler serves institution tree administration.
type DirectoryHandler struct {
	directory *service.DirectoryService
}

// NewDirectoryHandler creates a new handler.
func NewDirectoryHandler(directory *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// List godoc
// @Summary List institutions
// @Description Return the full institution directory
// @Tags Directory
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /directory/institutions [get]
func (h *DirectoryHandler) List(c *gin.Context) {
	institutions, err := h.directory.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, institutions, nil)
}

// CreateInstitution godoc
// @Summary Create institution
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateInstitutionRequest true "Institution payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /directory/institutions [post]
func (h *DirectoryHandler) CreateInstitution(c *gin.Context) {
	var req dto.CreateInstitutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid institution payload"))
		return
	}

	inst, err := h.directory.CreateInstitution(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, inst)
}

// AddDepartment godoc
// @Summary Add department
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institution ID"
// @Param payload body dto.AddDepartmentRequest true "Department payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /directory/institutions/{id}/departments [post]
func (h *DirectoryHandler) AddDepartment(c *gin.Context) {
	var req dto.AddDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid department payload"))
		return
	}

	inst, err := h.directory.AddDepartment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, inst)
}

// AddInstitutionAccount godoc
// @Summary Add institution account
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institution ID"
// @Param payload body dto.AddAccountRequest true "Account payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /directory/institutions/{id}/accounts [post]
func (h *DirectoryHandler) AddInstitutionAccount(c *gin.Context) {
	var req dto.AddAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid account payload"))
		return
	}

	acct, err := h.directory.AddInstitutionAccount(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, acct)
}

// AddCohortAccount godoc
// @Summary Add cohort account
// @Tags Directory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Institution ID"
// @Param deptId path string true "Department ID"
// @Param cohort path string true "Cohort key"
// @Param payload body dto.AddAccountRequest true "Account payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /directory/institutions/{id}/departments/{deptId}/cohorts/{cohort}/accounts [post]
func (h *DirectoryHandler) AddCohortAccount(c *gin.Context) {
	var req dto.AddAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid account payload"))
		return
	}

	acct, err := h.directory.AddCohortAccount(
		c.Request.Context(),
		c.Param("id"),
		c.Param("deptId"),
		models.CohortKey(c.Param("cohort")),
		req,
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, acct)
}
