package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"restaurant-pos/utils"
)

// AuthMiddleware validates the bearer token and exposes the user id,
// role and full name to handlers. Refresh tokens are rejected here;
// they are only good for the refresh endpoint.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid token format"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}
		if claims.TokenType != utils.TokenTypeAccess {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("access token required"))
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("full_name", claims.FullName)
		c.Next()
	}
}

// RequireRoles rejects callers whose role claim is not in the list.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		utils.RespondError(c, http.StatusForbidden, errors.New("insufficient role"))
		c.Abort()
	}
}
