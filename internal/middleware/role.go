package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	domainUser "storefront/internal/domain/user"
	"storefront/pkg/utils"
)

// RoleMiddleware authorizes against the freshly fetched identity's role,
// never against token claims, so a role change takes effect on the next
// request. It must run downstream of AuthMiddleware; a missing identity
// here is a wiring bug, not a bad request.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusInternalServerError, "User not resolved before role check")
			c.Abort()
			return
		}

		for _, allowedRole := range allowedRoles {
			if user.Role == allowedRole {
				c.Next()
				return
			}
		}

		utils.ErrorResponse(c, http.StatusForbidden,
			fmt.Sprintf("Role (%s) is not allowed to access this resource", user.Role))
		c.Abort()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RoleMiddleware(domainUser.RoleAdmin)
}
