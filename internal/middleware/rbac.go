package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/campusworks/results-api/internal/models"
	appErrors "github.com/campusworks/results-api/pkg/errors"
	"github.com/campusworks/results-api/pkg/response"
)

// RBAC enforces role-based access control for staff routes.
func RBAC(allowed ...models.AccountRole) gin.HandlerFunc {
	allowedRoles := make(map[models.AccountRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedRoles[role] = struct{}{}
	}

	return func(c *gin.Context) {
		claims := CurrentClaims(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if _, ok := allowedRoles[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireResultsManager blocks accounts that cannot manage results.
// Heads and admins always pass; teachers need the explicit grant.
func RequireResultsManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := CurrentClaims(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if claims.Role == models.RoleTeacher && !claims.CanManageResults {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "account is not permitted to manage results"))
			c.Abort()
			return
		}

		c.Next()
	}
}
