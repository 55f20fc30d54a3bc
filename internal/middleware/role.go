package middleware

import (
	"net/http"

	"fitbook/internal/domain"
	"fitbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole ensures that the authenticated user has one of the listed
// roles.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		role := domain.UserRole(roleVal.(string))
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		c.Abort()
	}
}

// ProviderOnly restricts an endpoint to calendar owners.
func ProviderOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleProvider, domain.RoleStudioOwner)
}

// AdminOnly restricts an endpoint to administrators.
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
