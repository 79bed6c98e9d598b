package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskord/taskord-api/internal/application"
	"github.com/taskord/taskord-api/pkg/response"
	"github.com/taskord/taskord-api/pkg/validation"
)

type AuthHandler struct {
	Auth   *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(auth *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64,alphanum"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register POST /api/auth/register {username, password}
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrUsernameTaken) {
			response.Error[any](c, http.StatusBadRequest, "registration failed", map[string]string{"username": "already taken"})
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "registration failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": u.ID, "username": u.Username}, "user registered", nil)
}

// Login POST /api/auth/login {username, password}
// Unknown username and wrong password produce the same 401.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	token, exp, err := h.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid username or password", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": token, "expiration": exp}, "login successful", nil)
}
