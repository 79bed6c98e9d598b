package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskord/taskord-api/internal/container"
	handlers "github.com/taskord/taskord-api/internal/interface/http"
	"github.com/taskord/taskord-api/internal/interface/middleware"
	"github.com/taskord/taskord-api/pkg/helpers"
)

// TaskModule wires task and comment routes behind the bearer-token gate.
// Every route here requires a valid token; requests never reach the
// services without one.
type TaskModule struct {
	Handler *handlers.TaskHandler
	Tokens  *helpers.TokenManager
}

func NewTaskModule(h *handlers.TaskHandler, tokens *helpers.TokenManager) *TaskModule {
	return &TaskModule{Handler: h, Tokens: tokens}
}

func (m *TaskModule) Register(rg *gin.RouterGroup) {
	protected := rg.Group("/")
	protected.Use(middleware.Auth(m.Tokens))
	protected.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP()),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUsername()),
	)
	{
		protected.GET("/tasks", m.Handler.ListTasks)
		protected.GET("/tasks/:id", m.Handler.GetTask)
		protected.POST("/tasks", m.Handler.CreateTask)
		protected.PUT("/tasks/:id", m.Handler.UpdateTask)
		protected.DELETE("/tasks/:id", m.Handler.DeleteTask)

		protected.GET("/tasks/:id/comments", m.Handler.ListComments)
		protected.POST("/tasks/:id/comments", m.Handler.CreateComment)
		protected.PUT("/tasks/:id/comments/:commentId", m.Handler.UpdateComment)
		protected.DELETE("/tasks/:id/comments/:commentId", m.Handler.DeleteComment)
	}
}
