package repository

import (
	"context"

	"github.com/taskord/taskord-api/internal/domain/entity"
)

// TaskRepository defines the interface for task-related database operations.
type TaskRepository interface {
	List(ctx context.Context) ([]*entity.Task, error)
	GetByID(ctx context.Context, id int64) (*entity.Task, error)
	Create(ctx context.Context, t *entity.Task) error
	Update(ctx context.Context, t *entity.Task) error
	Delete(ctx context.Context, id int64) error
}
