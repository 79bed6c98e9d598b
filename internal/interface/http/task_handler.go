package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskord/taskord-api/internal/application"
	"github.com/taskord/taskord-api/internal/domain/entity"
	"github.com/taskord/taskord-api/pkg/response"
	"github.com/taskord/taskord-api/pkg/validation"
)

type TaskHandler struct {
	Tasks    *application.TaskService
	Comments *application.CommentService
	Logger   *logrus.Logger
}

func NewTaskHandler(tasks *application.TaskService, comments *application.CommentService, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{Tasks: tasks, Comments: comments, Logger: logger}
}

type taskRequest struct {
	ID          int64  `json:"id"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	IsCompleted bool   `json:"isCompleted"`
}

type commentRequest struct {
	ID              int64  `json:"id"`
	Text            string `json:"text" binding:"required"`
	ParentCommentID *int64 `json:"parentCommentId"`
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid "+name, nil)
		return 0, false
	}
	return id, true
}

func (h *TaskHandler) fail(c *gin.Context, op string, err error) {
	if h.Logger != nil {
		h.Logger.WithError(err).WithField("op", op).Error("request failed")
	}
	response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
}

// ListTasks GET /api/tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.Tasks.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list tasks", err)
		return
	}
	response.Success(c, http.StatusOK, tasks, "tasks", nil)
}

// GetTask GET /api/tasks/:id
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	task, err := h.Tasks.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrTaskNotFound) {
			response.Error[any](c, http.StatusNotFound, "task not found", nil)
			return
		}
		h.fail(c, "get task", err)
		return
	}
	response.Success(c, http.StatusOK, task, "task", nil)
}

// CreateTask POST /api/tasks
// Responds 200 with the created task and a Location header to get-by-id.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	task := &entity.Task{Title: req.Title, Description: req.Description, IsCompleted: req.IsCompleted}
	task, err := h.Tasks.Create(c.Request.Context(), task)
	if err != nil {
		h.fail(c, "create task", err)
		return
	}
	c.Header("Location", "/api/tasks/"+strconv.FormatInt(task.ID, 10))
	response.Success(c, http.StatusOK, task, "task created", nil)
}

// UpdateTask PUT /api/tasks/:id
// The body id must match the path id; mismatches are rejected before any
// persistence happens.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	task := &entity.Task{ID: req.ID, Title: req.Title, Description: req.Description, IsCompleted: req.IsCompleted}
	if err := h.Tasks.Update(c.Request.Context(), id, task); err != nil {
		switch {
		case errors.Is(err, application.ErrIDMismatch):
			response.Error[any](c, http.StatusBadRequest, "id mismatch", nil)
		case errors.Is(err, application.ErrTaskNotFound):
			response.Error[any](c, http.StatusNotFound, "task not found", nil)
		default:
			h.fail(c, "update task", err)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteTask DELETE /api/tasks/:id
// Cascades to all comments of the task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Tasks.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, application.ErrTaskNotFound) {
			response.Error[any](c, http.StatusNotFound, "task not found", nil)
			return
		}
		h.fail(c, "delete task", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListComments GET /api/tasks/:id/comments
func (h *TaskHandler) ListComments(c *gin.Context) {
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}
	comments, err := h.Comments.ListForTask(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, application.ErrTaskNotFound) {
			response.Error[any](c, http.StatusNotFound, "task not found", nil)
			return
		}
		h.fail(c, "list comments", err)
		return
	}
	response.Success(c, http.StatusOK, comments, "comments", nil)
}

// CreateComment POST /api/tasks/:id/comments
func (h *TaskHandler) CreateComment(c *gin.Context) {
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	comment, err := h.Comments.Create(c.Request.Context(), taskID, req.Text, req.ParentCommentID)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrTaskNotFound):
			response.Error[any](c, http.StatusNotFound, "task not found", nil)
		case errors.Is(err, application.ErrParentNotFound):
			response.Error[any](c, http.StatusBadRequest, "parent comment not found", nil)
		case errors.Is(err, application.ErrParentInDifferentTask):
			response.Error[any](c, http.StatusBadRequest, "parent comment belongs to a different task", nil)
		default:
			h.fail(c, "create comment", err)
		}
		return
	}
	response.Success(c, http.StatusCreated, comment, "comment created", nil)
}

// UpdateComment PUT /api/tasks/:id/comments/:commentId
// Only the text changes; any update marks the comment as edited.
func (h *TaskHandler) UpdateComment(c *gin.Context) {
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if req.ID != commentID {
		response.Error[any](c, http.StatusBadRequest, "id mismatch", nil)
		return
	}
	if err := h.Comments.Update(c.Request.Context(), commentID, req.Text); err != nil {
		if errors.Is(err, application.ErrCommentNotFound) {
			response.Error[any](c, http.StatusNotFound, "comment not found", nil)
			return
		}
		h.fail(c, "update comment", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteComment DELETE /api/tasks/:id/comments/:commentId
// Removes the comment and its entire reply subtree.
func (h *TaskHandler) DeleteComment(c *gin.Context) {
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}
	if err := h.Comments.Delete(c.Request.Context(), commentID); err != nil {
		if errors.Is(err, application.ErrCommentNotFound) {
			response.Error[any](c, http.StatusNotFound, "comment not found", nil)
			return
		}
		h.fail(c, "delete comment", err)
		return
	}
	c.Status(http.StatusNoContent)
}
