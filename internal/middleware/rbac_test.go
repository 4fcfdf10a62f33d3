package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/campusworks/results-api/internal/models"
)

func rbacRouter(claims *models.JWTClaims, guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if claims != nil {
			c.Set(ContextUserKey, claims)
		}
		c.Next()
	})
	r.GET("/", guard, func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func get(r *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRBACAllowsListedRole(t *testing.T) {
	r := rbacRouter(&models.JWTClaims{Role: models.RoleAdmin}, RBAC(models.RoleAdmin, models.RoleHead))
	assert.Equal(t, http.StatusNoContent, get(r))
}

func TestRBACBlocksUnlistedRole(t *testing.T) {
	r := rbacRouter(&models.JWTClaims{Role: models.RoleTeacher}, RBAC(models.RoleAdmin, models.RoleHead))
	assert.Equal(t, http.StatusForbidden, get(r))
}

func TestRBACRequiresClaims(t *testing.T) {
	r := rbacRouter(nil, RBAC(models.RoleAdmin))
	assert.Equal(t, http.StatusUnauthorized, get(r))
}

func TestRequireResultsManagerBlocksUngrantedTeacher(t *testing.T) {
	r := rbacRouter(&models.JWTClaims{Role: models.RoleTeacher}, RequireResultsManager())
	assert.Equal(t, http.StatusForbidden, get(r))
}

func TestRequireResultsManagerAllowsGrantedTeacher(t *testing.T) {
	r := rbacRouter(&models.JWTClaims{Role: models.RoleTeacher, CanManageResults: true}, RequireResultsManager())
	assert.Equal(t, http.StatusNoContent, get(r))
}

func TestRequireResultsManagerAllowsHead(t *testing.T) {
	r := rbacRouter(&models.JWTClaims{Role: models.RoleHead}, RequireResultsManager())
	assert.Equal(t, http.StatusNoContent, get(r))
}
