package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskord/taskord-api/internal/domain/entity"
	"github.com/taskord/taskord-api/internal/domain/repository"
)

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) List(ctx context.Context) ([]*entity.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, is_completed, created_at, updated_at
		FROM tasks
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*entity.Task, 0)
	for rows.Next() {
		t := &entity.Task{}
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.IsCompleted,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*entity.Task, error) {
	t := &entity.Task{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, title, description, is_completed, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`, id)

	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.IsCompleted,
		&t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return t, nil
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (title, description, is_completed)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, t.Title, t.Description, t.IsCompleted)

	return row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	t.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, is_completed = $3, updated_at = $4
		WHERE id = $5
	`, t.Title, t.Description, t.IsCompleted, t.UpdatedAt, t.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes the task. Comments belonging to it go with it through the
// ON DELETE CASCADE foreign key on comments.task_id.
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
