package events

import (
	"context"
	"time"
)

// Event names published to the domain event queue.
const (
	TaskCreated    = "task.created"
	TaskUpdated    = "task.updated"
	TaskDeleted    = "task.deleted"
	CommentCreated = "comment.created"
	CommentUpdated = "comment.updated"
	CommentDeleted = "comment.deleted"
)

// Event is the envelope pushed onto the queue after a successful write.
// Consumers are external; publishing never blocks or fails a request.
type Event struct {
	Name       string         `json:"name"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

func New(name string, payload map[string]any) Event {
	return Event{Name: name, OccurredAt: time.Now().UTC(), Payload: payload}
}

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}
