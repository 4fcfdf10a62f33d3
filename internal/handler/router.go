package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/campusworks/results-api/internal/middleware"
	"github.com/campusworks/results-api/internal/models"
	"github.com/campusworks/results-api/internal/service"
)

// Handlers bundles the HTTP handlers for route registration.
type Handlers struct {
	Auth      *AuthHandler
	Students  *StudentHandler
	Grades    *GradeHandler
	Subjects  *SubjectHandler
	Directory *DirectoryHandler
	Metrics   *MetricsHandler
}

// RegisterRoutes mounts the API under the given prefix. The grade access
// endpoints stay public; everything else requires a staff token.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers, authService *service.AuthService, metricsService *service.MetricsService) {
	api := r.Group(prefix)
	api.Use(middleware.Metrics(metricsService))

	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.GET("/me", middleware.JWT(authService), h.Auth.Me)
	}

	students := api.Group("/students")
	{
		// Public: identity pair gates access, no token required.
		students.POST("/verify", h.Students.Verify)
		students.POST("/validate-grade-access", h.Students.ValidateGradeAccess)
		students.GET("/:regno/statement", h.Students.Statement)

		staff := students.Group("", middleware.JWT(authService))
		staff.POST("", h.Students.Create)
		staff.GET("", h.Students.List)
		staff.GET("/:regno", h.Students.Get)
	}

	grades := api.Group("/grades", middleware.JWT(authService))
	{
		grades.POST("", middleware.RequireResultsManager(), h.Grades.Record)
		grades.GET("", h.Grades.List)
	}

	subjects := api.Group("/subjects", middleware.JWT(authService))
	{
		subjects.POST("", middleware.RequireResultsManager(), h.Subjects.AddBatch)
		subjects.GET("", h.Subjects.List)
	}

	directory := api.Group("/directory", middleware.JWT(authService))
	{
		directory.GET("/institutions", h.Directory.List)

		admin := directory.Group("", middleware.RBAC(models.RoleAdmin, models.RoleHead))
		admin.POST("/institutions", h.Directory.CreateInstitution)
		admin.POST("/institutions/:id/departments", h.Directory.AddDepartment)
		admin.POST("/institutions/:id/accounts", h.Directory.AddInstitutionAccount)
		admin.POST("/institutions/:id/departments/:deptId/cohorts/:cohort/accounts", h.Directory.AddCohortAccount)
	}

	api.GET("/status", middleware.JWT(authService), h.Metrics.Status)
}
