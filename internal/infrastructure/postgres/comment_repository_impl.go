package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskord/taskord-api/internal/domain/entity"
	"github.com/taskord/taskord-api/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO comments (task_id, parent_comment_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, is_updated, created_at, updated_at
	`, c.TaskID, c.ParentCommentID, c.Text)

	return row.Scan(&c.ID, &c.IsUpdated, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*entity.Comment, error) {
	c := &entity.Comment{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, task_id, parent_comment_id, text, is_updated, created_at, updated_at
		FROM comments
		WHERE id = $1
	`, id)

	if err := row.Scan(&c.ID, &c.TaskID, &c.ParentCommentID, &c.Text, &c.IsUpdated,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return c, nil
}

// UpdateText replaces the text and sets is_updated. The flag is set even
// when the new text equals the old one.
func (r *CommentRepository) UpdateText(ctx context.Context, id int64, text string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE comments
		SET text = $1, is_updated = TRUE, updated_at = now()
		WHERE id = $2
	`, text, id)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// DeleteSubtree removes the comment and all descendant replies in a single
// statement, so no reply is ever left with a dangling parent reference.
func (r *CommentRepository) DeleteSubtree(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `
		WITH RECURSIVE subtree AS (
			SELECT id FROM comments WHERE id = $1
			UNION ALL
			SELECT c.id FROM comments c
			JOIN subtree s ON c.parent_comment_id = s.id
		)
		DELETE FROM comments WHERE id IN (SELECT id FROM subtree)
	`, id)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *CommentRepository) ListByTask(ctx context.Context, taskID int64) ([]*entity.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, task_id, parent_comment_id, text, is_updated, created_at, updated_at
		FROM comments
		WHERE task_id = $1
		ORDER BY id
	`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]*entity.Comment, 0)
	for rows.Next() {
		c := &entity.Comment{}
		if err := rows.Scan(&c.ID, &c.TaskID, &c.ParentCommentID, &c.Text, &c.IsUpdated,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
