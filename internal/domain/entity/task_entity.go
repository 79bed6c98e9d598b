package entity

import (
	"time"
)

// Task is a top-level to-do item owning zero or more comments.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsCompleted bool       `json:"isCompleted"`
	Comments    []*Comment `json:"comments"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Comment is a note attached to a task. A comment may reply to another
// comment on the same task, forming a tree through ParentCommentID.
//
// Replies is a derived view assembled at read time from the flat set of
// comments; it is never persisted.
type Comment struct {
	ID              int64      `json:"id"`
	Text            string     `json:"text"`
	IsUpdated       bool       `json:"isUpdated"`
	TaskID          int64      `json:"taskId"`
	ParentCommentID *int64     `json:"parentCommentId,omitempty"`
	Replies         []*Comment `json:"replies"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}
