package router

import (
	"github.com/taskord/taskord-api/internal/application"
	"github.com/taskord/taskord-api/internal/container"
	pginfra "github.com/taskord/taskord-api/internal/infrastructure/postgres"
	handlers "github.com/taskord/taskord-api/internal/interface/http"
	"github.com/taskord/taskord-api/internal/router/modules"
	"github.com/taskord/taskord-api/pkg/events"
)

func buildAuthHandler() *handlers.AuthHandler {
	users := pginfra.NewUserRepository(container.GetPGPool())
	service := application.NewAuthService(users, container.GetTokens(), container.GetLogger())
	return handlers.NewAuthHandler(service, container.GetLogger())
}

func buildTaskHandler() *handlers.TaskHandler {
	tasks := pginfra.NewTaskRepository(container.GetPGPool())
	comments := pginfra.NewCommentRepository(container.GetPGPool())

	// A nil *RabbitPublisher must stay a nil interface so services skip
	// publishing entirely when the broker is absent.
	var pub events.Publisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}

	taskService := application.NewTaskService(tasks, comments, pub, container.GetLogger())
	commentService := application.NewCommentService(tasks, comments, pub, container.GetLogger())
	return handlers.NewTaskHandler(taskService, commentService, container.GetLogger())
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	r.Add(modules.NewAuthModule(buildAuthHandler()))
	r.Add(modules.NewTaskModule(buildTaskHandler(), container.GetTokens()))
}
