package handlers

import (
	"net/http"

	"todo_webapp/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ListTasksPg mirrors ListTasks over the relational store.
func (h *Handler) ListTasksPg(c *gin.Context) {
	tasks, err := h.RelTasks.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h *Handler) CreateTaskPg(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	task, err := h.RelTasks.Insert(c.Request.Context(), req.Title, uuid.NewString())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": task})
}

func (h *Handler) DeleteTaskPg(c *gin.Context) {
	task, err := h.RelTasks.DeleteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task removed", "task": task})
}
