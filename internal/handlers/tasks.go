package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"taskify/backend/internal/models"
	"taskify/backend/internal/ranking"
	"taskify/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db          *gorm.DB
	taskService services.TaskService
}

func NewTaskHandler(db *gorm.DB, taskService services.TaskService) *TaskHandler {
	return &TaskHandler{db: db, taskService: taskService}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDInterface, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	userIDStr, ok := userIDInterface.(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return uuid.Nil, false
	}
	userID := uuid.FromStringOrNil(userIDStr)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	return userID, true
}

// GetTasks returns the caller's tasks ranked by urgency. The optional
// status, q and sort query parameters apply the same view transform the
// mobile client uses, so both orderings come from one implementation.
func (h *TaskHandler) GetTasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	view := ranking.View{
		Status: c.DefaultQuery("status", ranking.StatusAll),
		Query:  c.Query("q"),
		Order:  c.DefaultQuery("sort", ranking.OrderSmart),
	}
	if !ranking.ValidStatus(view.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
		return
	}
	if !ranking.ValidOrder(view.Order) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sort order"})
		return
	}

	tasks, err := h.taskService.ListByOwner(h.db, userID)
	if err != nil {
		handleTaskError(c, err)
		return
	}

	ranked := ranking.Rank(tasks, time.Now().UTC())
	c.JSON(http.StatusOK, view.Apply(ranked))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var taskInput struct {
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		Deadline    *time.Time `json:"deadline"`
		Priority    string     `json:"priority"`
		Category    string     `json:"category"`
	}
	if err := c.ShouldBindJSON(&taskInput); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	taskID, err := uuid.NewV4()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate task ID"})
		return
	}

	task := models.Task{
		ID:          taskID,
		UserID:      userID,
		Title:       taskInput.Title,
		Description: taskInput.Description,
		Deadline:    taskInput.Deadline,
		Priority:    taskInput.Priority,
		Category:    taskInput.Category,
	}
	if err := h.taskService.Create(h.db, &task); err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id := uuid.FromStringOrNil(c.Param("id"))
	var patch services.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskService.Update(h.db, id, userID, patch)
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id := uuid.FromStringOrNil(c.Param("id"))
	if err := h.taskService.Delete(h.db, id, userID); err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Task removed"})
}

func handleTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
	case errors.Is(err, services.ErrNotOwner):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authorized"})
	case errors.Is(err, services.ErrInvalidPriority):
		c.JSON(http.StatusBadRequest, gin.H{"error": "priority must be Low, Medium or High"})
	default:
		log.Printf("task request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process task request"})
	}
}
