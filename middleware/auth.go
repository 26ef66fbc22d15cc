package middleware

import (
	"net/http"
	"strings"

	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

// AuthRequired parses the bearer token and stores the resolved caller on
// the context. Core services only ever see (user_id, role).
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}

		claims, err := utils.ParseAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(callerKey, services.Caller{UserID: claims.UserID, Role: claims.Role})
		c.Next()
	}
}

// OptionalAuth resolves the caller when a valid bearer token is present
// and stays silent otherwise. Public routes that personalize for
// logged-in users run behind this.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			if claims, err := utils.ParseAccessToken(strings.TrimPrefix(header, "Bearer ")); err == nil {
				c.Set(callerKey, services.Caller{UserID: claims.UserID, Role: claims.Role})
			}
		}
		c.Next()
	}
}

// RoleRequired gates a route group to the given roles. Must run after
// AuthRequired.
func RoleRequired(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := GetCaller(c)
		for _, role := range roles {
			if caller.Role == role {
				c.Next()
				return
			}
		}
		utils.JSONError(c, http.StatusForbidden, "insufficient permissions")
		c.Abort()
	}
}

// GetCaller returns the caller set by AuthRequired; zero value when absent.
func GetCaller(c *gin.Context) services.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(services.Caller); ok {
			return caller
		}
	}
	return services.Caller{}
}
