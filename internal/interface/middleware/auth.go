package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/docuchat/auth-service/internal/domain/entity"
	"github.com/docuchat/auth-service/pkg/helpers"
	"github.com/docuchat/auth-service/pkg/response"
)

const (
	CtxEmailKey = "userEmail"
	CtxRoleKey  = "userRole"
)

// Auth validates the Authorization bearer token and injects the
// subject email and role into the Gin context.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Header("WWW-Authenticate", "Bearer")
			response.Error(c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			response.Error(c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}
		role, err := entity.ParseRole(claims.Role)
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			response.Error(c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}
		c.Set(CtxEmailKey, claims.Subject)
		c.Set(CtxRoleKey, role.String())
		c.Next()
	}
}

// RequireRole gates a route on the caller's role. Admin passes every
// gate; the switch is exhaustive over the Role constants so a new role
// cannot slip through unhandled.
func RequireRole(required entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := entity.ParseRole(c.GetString(CtxRoleKey))
		if err != nil {
			response.Error(c, http.StatusForbidden, "forbidden", nil)
			c.Abort()
			return
		}
		switch role {
		case entity.RoleAdmin:
			c.Next()
		case entity.RoleUser:
			if required == entity.RoleUser {
				c.Next()
				return
			}
			response.Error(c, http.StatusForbidden, "forbidden", nil)
			c.Abort()
		}
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}
