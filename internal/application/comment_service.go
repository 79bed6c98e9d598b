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
	ErrCommentNotFound       = errors.New("comment not found")
	ErrParentNotFound        = errors.New("parent comment not found")
	ErrParentInDifferentTask = errors.New("parent comment belongs to a different task")
)

// CommentService owns the integrity of the comment tree under a task:
// same-task parents, sentinel-zero normalization and subtree cascades.
// Comments never move to another parent after creation, so the parent
// chain stays acyclic by construction.
type CommentService struct {
	Tasks    repo.TaskRepository
	Comments repo.CommentRepository
	Events   events.Publisher
	Logger   *logrus.Logger
}

func NewCommentService(tasks repo.TaskRepository, comments repo.CommentRepository, pub events.Publisher, logger *logrus.Logger) *CommentService {
	return &CommentService{Tasks: tasks, Comments: comments, Events: pub, Logger: logger}
}

// Create validates the owning task and the optional parent, then inserts
// the comment. Clients may send parentCommentId = 0 to mean "root"; it is
// normalized to the true absence of a parent, never treated as a reference
// to comment id 0.
func (s *CommentService) Create(ctx context.Context, taskID int64, text string, parentID *int64) (*entity.Comment, error) {
	if _, err := s.Tasks.GetByID(ctx, taskID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if parentID != nil && *parentID == 0 {
		parentID = nil
	}
	if parentID != nil {
		parent, err := s.Comments.GetByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
		if parent.TaskID != taskID {
			return nil, ErrParentInDifferentTask
		}
	}

	c := &entity.Comment{TaskID: taskID, Text: text, ParentCommentID: parentID}
	if err := s.Comments.Create(ctx, c); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("task_id", taskID).Error("create comment failed")
		}
		return nil, err
	}
	c.Replies = []*entity.Comment{}
	s.publish(ctx, events.CommentCreated, map[string]any{"task_id": taskID, "comment_id": c.ID})
	return c, nil
}

// Update replaces the text and marks the comment as edited, even when the
// new text equals the old one. Re-parenting is not supported.
func (s *CommentService) Update(ctx context.Context, commentID int64, text string) error {
	if err := s.Comments.UpdateText(ctx, commentID, text); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	s.publish(ctx, events.CommentUpdated, map[string]any{"comment_id": commentID})
	return nil
}

// Delete removes the comment together with its entire reply subtree, so no
// reply is ever orphaned with a dangling parent reference.
func (s *CommentService) Delete(ctx context.Context, commentID int64) error {
	if err := s.Comments.DeleteSubtree(ctx, commentID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	s.publish(ctx, events.CommentDeleted, map[string]any{"comment_id": commentID})
	return nil
}

// ListForTask returns the task's full flat set of comments with Replies
// populated server-side at response-assembly time.
func (s *CommentService) ListForTask(ctx context.Context, taskID int64) ([]*entity.Comment, error) {
	if _, err := s.Tasks.GetByID(ctx, taskID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	comments, err := s.Comments.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return linkReplies(comments), nil
}

func (s *CommentService) publish(ctx context.Context, name string, payload map[string]any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishJSON(ctx, events.New(name, payload)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("event", name).Warn("event publish failed")
	}
}

// linkReplies populates the derived Replies view on a flat comment set by
// resolving ParentCommentID links. The input slice is returned unchanged
// in order and length; only Replies is filled in.
func linkReplies(comments []*entity.Comment) []*entity.Comment {
	byID := make(map[int64]*entity.Comment, len(comments))
	for _, c := range comments {
		c.Replies = []*entity.Comment{}
		byID[c.ID] = c
	}
	for _, c := range comments {
		if c.ParentCommentID == nil {
			continue
		}
		if parent, ok := byID[*c.ParentCommentID]; ok {
			parent.Replies = append(parent.Replies, c)
		}
	}
	return comments
}
