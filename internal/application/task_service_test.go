package application

import (
	"context"
	"errors"
	"testing"

	"github.com/taskord/taskord-api/internal/domain/entity"
	"github.com/taskord/taskord-api/pkg/events"
)

func TestDeleteTaskCascadesToComments(t *testing.T) {
	store, taskSvc, commentSvc := newCommentFixture(t)
	task := mustCreateTask(t, taskSvc, "Buy milk")
	ctx := context.Background()

	root, _ := commentSvc.Create(ctx, task.ID, "root", nil)
	_, _ = commentSvc.Create(ctx, task.ID, "reply", &root.ID)

	if err := taskSvc.Delete(ctx, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if len(store.comments) != 0 {
		t.Errorf("comments left after task delete = %d, want 0", len(store.comments))
	}
	// The task itself is gone, so listing its comments is a NotFound.
	if _, err := commentSvc.ListForTask(ctx, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("err = %v, want ErrTaskNotFound", err)
	}
}

func TestUpdateTaskIDMismatch(t *testing.T) {
	_, taskSvc, _ := newCommentFixture(t)
	task := mustCreateTask(t, taskSvc, "Buy milk")

	err := taskSvc.Update(context.Background(), task.ID, &entity.Task{ID: task.ID + 1, Title: "renamed"})
	if !errors.Is(err, ErrIDMismatch) {
		t.Fatalf("err = %v, want ErrIDMismatch", err)
	}

	got, err := taskSvc.Get(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Title != "Buy milk" {
		t.Errorf("title = %q, want unchanged %q", got.Title, "Buy milk")
	}
}

func TestUpdateTaskUnknown(t *testing.T) {
	_, taskSvc, _ := newCommentFixture(t)

	err := taskSvc.Update(context.Background(), 42, &entity.Task{ID: 42, Title: "ghost"})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("err = %v, want ErrTaskNotFound", err)
	}
}

func TestGetTaskPopulatesComments(t *testing.T) {
	_, taskSvc, commentSvc := newCommentFixture(t)
	task := mustCreateTask(t, taskSvc, "Buy milk")
	ctx := context.Background()

	root, _ := commentSvc.Create(ctx, task.ID, "nice", nil)
	reply, _ := commentSvc.Create(ctx, task.ID, "thanks", &root.ID)

	got, err := taskSvc.Get(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if len(got.Comments) != 2 {
		t.Fatalf("len(comments) = %d, want 2", len(got.Comments))
	}
	if len(got.Comments[0].Replies) != 1 || got.Comments[0].Replies[0].ID != reply.ID {
		t.Errorf("replies not linked on task read")
	}
}

func TestTaskWritesPublishEvents(t *testing.T) {
	store := newMemStore()
	pub := &recordingPublisher{}
	taskSvc := NewTaskService(&memTaskRepo{s: store}, &memCommentRepo{s: store}, pub, nil)
	ctx := context.Background()

	task, err := taskSvc.Create(ctx, &entity.Task{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if err := taskSvc.Delete(ctx, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}

	if len(pub.bodies) != 2 {
		t.Fatalf("published events = %d, want 2", len(pub.bodies))
	}
	first, ok := pub.bodies[0].(events.Event)
	if !ok || first.Name != events.TaskCreated {
		t.Errorf("first event = %#v, want %s", pub.bodies[0], events.TaskCreated)
	}
}
