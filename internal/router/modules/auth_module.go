package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskord/taskord-api/internal/container"
	handlers "github.com/taskord/taskord-api/internal/interface/http"
	"github.com/taskord/taskord-api/internal/interface/middleware"
)

// AuthModule wires the public authentication routes.
// Public: POST /api/auth/register, POST /api/auth/login
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())    // 10 req/min per IP
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP()) // 10 req/min per IP

	auth := rg.Group("/auth")
	auth.POST("/register", registerLimiter, m.Handler.Register)
	auth.POST("/login", loginLimiter, m.Handler.Login)
}
