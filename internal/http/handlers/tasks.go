package handlers

import (
	"net/http"

	"todo_webapp/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type taskRequest struct {
	Title string `json:"title"`
}

// ListTasks returns every task in the document store, natural order.
func (h *Handler) ListTasks(c *gin.Context) {
	tasks, err := h.DocTasks.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// CreateTask inserts into the document store only. Dual-write creation is
// the view form's job; this route is the raw adapter surface.
func (h *Handler) CreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	task, err := h.DocTasks.Insert(c.Request.Context(), req.Title, uuid.NewString())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// DeleteTask removes one document-store task by its record id.
func (h *Handler) DeleteTask(c *gin.Context) {
	task, err := h.DocTasks.DeleteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task removed", "task": task})
}
