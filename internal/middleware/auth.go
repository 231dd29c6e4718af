package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/config"
	domainUser "storefront/internal/domain/user"
	appErrors "storefront/pkg/errors"
	"storefront/pkg/utils"
)

// TokenCookieName is the session cookie set on login/register/reset.
const TokenCookieName = "token"

const currentUserKey = "currentUser"

// AuthMiddleware is the authentication gate. It extracts the session token
// (cookie first, Authorization header as fallback), verifies signature and
// expiry, then re-fetches the user record on every request: there is no
// server-side token revocation, so deleting the user is the only way to
// invalidate an outstanding token and it must take effect immediately.
func AuthMiddleware(cfg *config.Config, userRepo domainUser.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, appErrors.ErrUnauthenticated.Error())
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(token, cfg.JWT.Secret)
		if err != nil {
			// Expired and malformed carry distinct messages; both are 401.
			utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
			c.Abort()
			return
		}

		user, err := userRepo.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, domainUser.ErrUserNotFound) {
				utils.ErrorResponse(c, http.StatusNotFound, appErrors.ErrUserNotFound.Error())
			} else {
				utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to resolve user")
			}
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(TokenCookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// CurrentUser returns the identity resolved by AuthMiddleware. It is only
// valid downstream of the auth gate.
func CurrentUser(c *gin.Context) (*domainUser.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*domainUser.User)
	return user, ok
}
