package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	authapp "github.com/docuchat/auth-service/internal/application"
	"github.com/docuchat/auth-service/internal/interface/middleware"
	"github.com/docuchat/auth-service/pkg/response"
)

type UserHandler struct {
	Svc    *authapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *authapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// Me handles GET /users/me for the bearer-token caller.
func (h *UserHandler) Me(c *gin.Context) {
	email := c.GetString(middleware.CtxEmailKey)
	u, err := h.Svc.GetProfile(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, authapp.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "user not found", nil)
			return
		}
		response.Error(c, http.StatusServiceUnavailable, "service temporarily unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, u.PublicView(), "profile")
}

// List handles GET /users (admin only, backs the dashboard).
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusServiceUnavailable, "service temporarily unavailable", nil)
		return
	}
	out := make([]map[string]any, 0, len(users))
	for i := range users {
		out = append(out, users[i].PublicView())
	}
	response.Success(c, http.StatusOK, out, "users")
}
