package repository

import (
	"context"

	"github.com/taskord/taskord-api/internal/domain/entity"
)

// CommentRepository defines the interface for comment-related database
// operations. Comments are stored flat; the reply tree is reconstructed
// from ParentCommentID links by the caller.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id int64) (*entity.Comment, error)
	// UpdateText replaces the comment text and marks the comment as
	// updated. The flag is monotonic: it is never reset.
	UpdateText(ctx context.Context, id int64, text string) error
	// DeleteSubtree removes the comment and every descendant reply.
	DeleteSubtree(ctx context.Context, id int64) error
	ListByTask(ctx context.Context, taskID int64) ([]*entity.Comment, error)
}
