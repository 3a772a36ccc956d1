package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	authapp "github.com/docuchat/auth-service/internal/application"
	"github.com/docuchat/auth-service/internal/domain/entity"
	"github.com/docuchat/auth-service/pkg/response"
	"github.com/docuchat/auth-service/pkg/validation"
)

type AuthHandler struct {
	Svc    *authapp.Service
	Logger *logrus.Logger
}

func NewAuthHandler(svc *authapp.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

// clientIP prefers the proxy-resolved address set by the RealIP
// middleware over gin's own resolution.
func clientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

// loginRequest follows the OAuth2 password grant form shape: the
// username field carries the email.
type loginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// tokenResponse is the wire contract other services consume. Token
// endpoints return it bare, without the API envelope.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	role := entity.Role(req.Role) // validated by oneof; empty means default
	pair, err := h.Svc.Register(c.Request.Context(), authapp.RegisterInput{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		if errors.Is(err, authapp.ErrEmailTaken) {
			response.Error(c, http.StatusBadRequest, "email already registered", nil)
			return
		}
		response.Error(c, http.StatusServiceUnavailable, "service temporarily unavailable", nil)
		return
	}

	if h.Logger != nil {
		h.Logger.WithFields(logrus.Fields{"email": req.Email, "ip": clientIP(c)}).Info("user registered")
	}
	c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
	})
}

// Login handles POST /auth/login. Credential failures of any kind get
// one uniform 401 with a bearer challenge, so the response never tells
// an unknown email apart from a wrong password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	pair, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, authapp.ErrInvalidCredentials) {
			if h.Logger != nil {
				h.Logger.WithFields(logrus.Fields{"ip": clientIP(c)}).Warn("login rejected")
			}
			c.Header("WWW-Authenticate", "Bearer")
			response.Error(c, http.StatusUnauthorized, "incorrect email or password", nil)
			return
		}
		response.Error(c, http.StatusServiceUnavailable, "service temporarily unavailable", nil)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
	})
}
