package middleware

import (
	"net/http"
	"strings"

	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

// Protect validates the Bearer token and stores the admin identity in the
// request context under "adminID" and "adminRole".
func Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Authorization token required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateAdminToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("adminID", claims.AdminID)
		c.Set("adminRole", claims.Role)
		c.Next()
	}
}

// RequireRole limits a route to admins holding one of the given roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("adminRole")
		roleStr, _ := role.(string)
		for _, r := range roles {
			if roleStr == r {
				c.Next()
				return
			}
		}
		utils.JSONError(c, http.StatusForbidden, "Insufficient permissions")
		c.Abort()
	}
}
