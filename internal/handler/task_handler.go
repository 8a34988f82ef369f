package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"meetme-api/internal/middleware"
	"meetme-api/internal/model"
	"meetme-api/internal/store"
)

type taskResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Day       time.Time `json:"day"`
	Priority  string    `json:"priority"`
	Done      bool      `json:"done"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newTaskResponse(t *model.Task) taskResponse {
	return taskResponse{
		ID:        t.ID,
		UserID:    t.UserID,
		Title:     t.Title,
		Day:       t.Day,
		Priority:  t.Priority,
		Done:      t.Done,
		Notes:     t.Notes,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

type createTaskRequest struct {
	Title    string     `json:"title"`
	Day      *time.Time `json:"day"`
	Priority string     `json:"priority"`
	Notes    string     `json:"notes"`
}

func (h *Handler) CreateTask(c *gin.Context) {
	userID := middleware.UserID(c)

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if req.Title == "" || req.Day == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "title and day are required"})
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	} else if !model.ValidPriority(priority) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid priority"})
		return
	}

	t := &model.Task{
		ID:       uuid.New().String(),
		UserID:   userID,
		Title:    req.Title,
		Day:      *req.Day,
		Priority: priority,
		Notes:    req.Notes,
	}

	if err := h.store.CreateTask(c.Request.Context(), t); err != nil {
		h.log.Error().Err(err).Msg("create task")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(t))
}

func (h *Handler) ListTasks(c *gin.Context) {
	userID := middleware.UserID(c)

	var day time.Time
	if v := c.Query("day"); v != "" {
		t, err := parseTimeParam(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid day"})
			return
		}
		day = t
	}

	tasks, err := h.store.ListTasks(c.Request.Context(), userID, day)
	if err != nil {
		h.log.Error().Err(err).Msg("list tasks")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	out := make([]taskResponse, len(tasks))
	for i := range tasks {
		out[i] = newTaskResponse(&tasks[i])
	}
	c.JSON(http.StatusOK, out)
}

type updateTaskRequest struct {
	Title    *string    `json:"title"`
	Day      *time.Time `json:"day"`
	Priority *string    `json:"priority"`
	Done     *bool      `json:"done"`
	Notes    *string    `json:"notes"`
}

func (h *Handler) UpdateTask(c *gin.Context) {
	userID := middleware.UserID(c)
	id := c.Param("id")

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if req.Title != nil && *req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "title cannot be empty"})
		return
	}
	if req.Priority != nil && !model.ValidPriority(*req.Priority) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid priority"})
		return
	}

	patch := &store.TaskPatch{
		Title:    req.Title,
		Day:      req.Day,
		Priority: req.Priority,
		Done:     req.Done,
		Notes:    req.Notes,
	}

	t, err := h.store.UpdateTask(c.Request.Context(), id, userID, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
			return
		}
		h.log.Error().Err(err).Msg("update task")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(t))
}

func (h *Handler) DeleteTask(c *gin.Context) {
	userID := middleware.UserID(c)
	id := c.Param("id")

	if err := h.store.DeleteTask(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
			return
		}
		h.log.Error().Err(err).Msg("delete task")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task removed"})
}
