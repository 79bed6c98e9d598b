package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskord/taskord-api/internal/application"
	"github.com/taskord/taskord-api/internal/domain/entity"
	"github.com/taskord/taskord-api/internal/domain/repository"
	"github.com/taskord/taskord-api/internal/interface/middleware"
	"github.com/taskord/taskord-api/pkg/helpers"
	"github.com/taskord/taskord-api/pkg/validation"
)

// Minimal in-memory backing store for handler tests. Mirrors the storage
// cascades (task -> comments, comment -> subtree).
type fakeStore struct {
	users       map[string]*entity.User
	tasks       map[int64]*entity.Task
	comments    map[int64]*entity.Comment
	nextTask    int64
	nextComment int64
	taskUpdates int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]*entity.User),
		tasks:    make(map[int64]*entity.Task),
		comments: make(map[int64]*entity.Comment),
	}
}

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if _, ok := r.s.users[u.Username]; ok {
		return repository.ErrDuplicate
	}
	u.ID = "user-" + u.Username
	r.s.users[u.Username] = u
	return nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	u, ok := r.s.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

type fakeTaskRepo struct{ s *fakeStore }

func (r *fakeTaskRepo) List(_ context.Context) ([]*entity.Task, error) {
	out := make([]*entity.Task, 0, len(r.s.tasks))
	for i := int64(1); i <= r.s.nextTask; i++ {
		if t, ok := r.s.tasks[i]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id int64) (*entity.Task, error) {
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

func (r *fakeTaskRepo) Create(_ context.Context, t *entity.Task) error {
	r.s.nextTask++
	t.ID = r.s.nextTask
	r.s.tasks[t.ID] = t
	return nil
}

func (r *fakeTaskRepo) Update(_ context.Context, t *entity.Task) error {
	if _, ok := r.s.tasks[t.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.taskUpdates++
	r.s.tasks[t.ID] = t
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.s.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.tasks, id)
	for cid, c := range r.s.comments {
		if c.TaskID == id {
			delete(r.s.comments, cid)
		}
	}
	return nil
}

type fakeCommentRepo struct{ s *fakeStore }

func (r *fakeCommentRepo) Create(_ context.Context, c *entity.Comment) error {
	r.s.nextComment++
	c.ID = r.s.nextComment
	r.s.comments[c.ID] = c
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id int64) (*entity.Comment, error) {
	c, ok := r.s.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (r *fakeCommentRepo) UpdateText(_ context.Context, id int64, text string) error {
	c, ok := r.s.comments[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.Text = text
	c.IsUpdated = true
	return nil
}

func (r *fakeCommentRepo) DeleteSubtree(_ context.Context, id int64) error {
	if _, ok := r.s.comments[id]; !ok {
		return repository.ErrNotFound
	}
	doomed := map[int64]bool{id: true}
	for {
		grew := false
		for cid, c := range r.s.comments {
			if doomed[cid] || c.ParentCommentID == nil {
				continue
			}
			if doomed[*c.ParentCommentID] {
				doomed[cid] = true
				grew = true
			}
		}
		if !grew {
			break
		}
	}
	for cid := range doomed {
		delete(r.s.comments, cid)
	}
	return nil
}

func (r *fakeCommentRepo) ListByTask(_ context.Context, taskID int64) ([]*entity.Comment, error) {
	out := make([]*entity.Comment, 0)
	for i := int64(1); i <= r.s.nextComment; i++ {
		if c, ok := r.s.comments[i]; ok && c.TaskID == taskID {
			out = append(out, c)
		}
	}
	return out, nil
}

var (
	_ repository.UserRepository    = (*fakeUserRepo)(nil)
	_ repository.TaskRepository    = (*fakeTaskRepo)(nil)
	_ repository.CommentRepository = (*fakeCommentRepo)(nil)
)

// newTestServer builds a gin engine with the real route layout over the
// in-memory store. Rate limiters are omitted (nil redis is a passthrough
// anyway); everything else matches the production wiring.
func newTestServer(store *fakeStore) (*gin.Engine, *helpers.TokenManager) {
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	tokens := helpers.NewTokenManager("test-secret", "taskord-api", "taskord-clients", 3*time.Hour)

	users := &fakeUserRepo{s: store}
	tasks := &fakeTaskRepo{s: store}
	comments := &fakeCommentRepo{s: store}

	authHandler := NewAuthHandler(application.NewAuthService(users, tokens, logger), logger)
	taskHandler := NewTaskHandler(
		application.NewTaskService(tasks, comments, nil, logger),
		application.NewCommentService(tasks, comments, nil, logger),
		logger,
	)

	r := gin.New()
	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	protected := api.Group("/")
	protected.Use(middleware.Auth(tokens))
	protected.GET("/tasks", taskHandler.ListTasks)
	protected.GET("/tasks/:id", taskHandler.GetTask)
	protected.POST("/tasks", taskHandler.CreateTask)
	protected.PUT("/tasks/:id", taskHandler.UpdateTask)
	protected.DELETE("/tasks/:id", taskHandler.DeleteTask)
	protected.GET("/tasks/:id/comments", taskHandler.ListComments)
	protected.POST("/tasks/:id/comments", taskHandler.CreateComment)
	protected.PUT("/tasks/:id/comments/:commentId", taskHandler.UpdateComment)
	protected.DELETE("/tasks/:id/comments/:commentId", taskHandler.DeleteComment)

	return r, tokens
}

// envelope mirrors response.APIResponse for decoding in tests.
type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}
