package services

import (
	"errors"
	"time"

	"taskify/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

var (
	// ErrNotOwner means the task exists but belongs to another user.
	ErrNotOwner = errors.New("not authorized for this task")
	// ErrInvalidPriority means the priority is not Low, Medium or High.
	ErrInvalidPriority = errors.New("invalid priority")
)

// TaskPatch is a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	Priority    *string    `json:"priority"`
	Deadline    *time.Time `json:"deadline"`
	Completed   *bool      `json:"completed"`
}

type TaskService interface {
	ListByOwner(db *gorm.DB, ownerID uuid.UUID) ([]models.Task, error)
	GetByID(db *gorm.DB, id uuid.UUID) (models.Task, error)
	Create(db *gorm.DB, task *models.Task) error
	Update(db *gorm.DB, id, ownerID uuid.UUID, patch TaskPatch) (models.Task, error)
	Delete(db *gorm.DB, id, ownerID uuid.UUID) error
}

type TaskServiceImpl struct{}

func NewTaskService() *TaskServiceImpl {
	return &TaskServiceImpl{}
}

func (s *TaskServiceImpl) ListByOwner(db *gorm.DB, ownerID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := db.Where("user_id = ?", ownerID).Order("created_at").Find(&tasks).Error
	return tasks, err
}

func (s *TaskServiceImpl) GetByID(db *gorm.DB, id uuid.UUID) (models.Task, error) {
	var task models.Task
	err := db.First(&task, "id = ?", id).Error
	return task, err
}

func (s *TaskServiceImpl) Create(db *gorm.DB, task *models.Task) error {
	if task.Category == "" {
		task.Category = models.DefaultCategory
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if !models.ValidPriority(task.Priority) {
		return ErrInvalidPriority
	}
	return db.Create(task).Error
}

// Update applies a partial update after checking ownership. A missing task
// surfaces gorm.ErrRecordNotFound; a task owned by someone else surfaces
// ErrNotOwner regardless of the patch contents.
func (s *TaskServiceImpl) Update(db *gorm.DB, id, ownerID uuid.UUID, patch TaskPatch) (models.Task, error) {
	var task models.Task
	if err := db.First(&task, "id = ?", id).Error; err != nil {
		return models.Task{}, err
	}
	if task.UserID != ownerID {
		return models.Task{}, ErrNotOwner
	}

	if patch.Priority != nil && !models.ValidPriority(*patch.Priority) {
		return models.Task{}, ErrInvalidPriority
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Category != nil {
		task.Category = *patch.Category
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Deadline != nil {
		task.Deadline = patch.Deadline
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}

	if err := db.Save(&task).Error; err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (s *TaskServiceImpl) Delete(db *gorm.DB, id, ownerID uuid.UUID) error {
	var task models.Task
	if err := db.First(&task, "id = ?", id).Error; err != nil {
		return err
	}
	if task.UserID != ownerID {
		return ErrNotOwner
	}
	return db.Delete(&task).Error
}
