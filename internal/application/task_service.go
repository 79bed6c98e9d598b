package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/taskord/taskord-api/internal/domain/entity"
	repo "github.com/taskord/taskord-api/internal/domain/repository"
	"github.com/taskord/taskord-api/pkg/events"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrIDMismatch   = errors.New("path id does not match body id")
)

// TaskService is the repository facade for tasks. Reads return tasks with
// their comments populated; deletes cascade to the whole comment set.
type TaskService struct {
	Tasks    repo.TaskRepository
	Comments repo.CommentRepository
	Events   events.Publisher
	Logger   *logrus.Logger
}

func NewTaskService(tasks repo.TaskRepository, comments repo.CommentRepository, pub events.Publisher, logger *logrus.Logger) *TaskService {
	return &TaskService{Tasks: tasks, Comments: comments, Events: pub, Logger: logger}
}

func (s *TaskService) List(ctx context.Context) ([]*entity.Task, error) {
	tasks, err := s.Tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		comments, err := s.Comments.ListByTask(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		t.Comments = linkReplies(comments)
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, id int64) (*entity.Task, error) {
	t, err := s.Tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	comments, err := s.Comments.ListByTask(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Comments = linkReplies(comments)
	return t, nil
}

func (s *TaskService) Create(ctx context.Context, t *entity.Task) (*entity.Task, error) {
	if err := s.Tasks.Create(ctx, t); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Error("create task failed")
		}
		return nil, err
	}
	t.Comments = []*entity.Comment{}
	s.publish(ctx, events.TaskCreated, map[string]any{"task_id": t.ID})
	return t, nil
}

// Update replaces the mutable task fields. The id in the payload must match
// the id addressed by the caller; mismatches are rejected before any
// persistence happens.
func (s *TaskService) Update(ctx context.Context, id int64, t *entity.Task) error {
	if t.ID != id {
		return ErrIDMismatch
	}
	if err := s.Tasks.Update(ctx, t); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	s.publish(ctx, events.TaskUpdated, map[string]any{"task_id": id})
	return nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.Tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	s.publish(ctx, events.TaskDeleted, map[string]any{"task_id": id})
	return nil
}

func (s *TaskService) publish(ctx context.Context, name string, payload map[string]any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishJSON(ctx, events.New(name, payload)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("event", name).Warn("event publish failed")
	}
}
