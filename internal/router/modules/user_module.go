package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/docuchat/auth-service/internal/domain/entity"
	handlers "github.com/docuchat/auth-service/internal/interface/http"
	"github.com/docuchat/auth-service/internal/interface/middleware"
	"github.com/docuchat/auth-service/pkg/helpers"
)

// UserModule wires the bearer-protected user endpoints.
// GET /api/v1/users/me, GET /api/v1/users (admin)

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/users")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/me", m.Handler.Me)
		auth.GET("", middleware.RequireRole(entity.RoleAdmin), m.Handler.List)
	}
}
