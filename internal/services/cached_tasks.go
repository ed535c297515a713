package services

import (
	"fmt"
	"time"

	"taskify/backend/internal/cache"
	"taskify/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const ownerListTTL = 10 * time.Minute

// CachedTaskService is a read-through cache around a TaskService. Only the
// per-owner list is cached; every mutation invalidates the owner's entry so
// the next read re-ranks fresh data.
type CachedTaskService struct {
	taskService TaskService
	cache       *cache.RedisCache
}

func NewCachedTaskService(taskService TaskService, cacheInstance *cache.RedisCache) *CachedTaskService {
	return &CachedTaskService{
		taskService: taskService,
		cache:       cacheInstance,
	}
}

func ownerListKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("owner_tasks:%s", ownerID.String())
}

func (s *CachedTaskService) ListByOwner(db *gorm.DB, ownerID uuid.UUID) ([]models.Task, error) {
	key := ownerListKey(ownerID)

	var cached []models.Task
	if err := s.cache.Get(key, &cached); err == nil {
		return cached, nil
	}

	tasks, err := s.taskService.ListByOwner(db, ownerID)
	if err != nil {
		return tasks, err
	}

	s.cache.Set(key, tasks, ownerListTTL)

	return tasks, nil
}

func (s *CachedTaskService) GetByID(db *gorm.DB, id uuid.UUID) (models.Task, error) {
	return s.taskService.GetByID(db, id)
}

func (s *CachedTaskService) Create(db *gorm.DB, task *models.Task) error {
	if err := s.taskService.Create(db, task); err != nil {
		return err
	}
	s.cache.Delete(ownerListKey(task.UserID))
	return nil
}

func (s *CachedTaskService) Update(db *gorm.DB, id, ownerID uuid.UUID, patch TaskPatch) (models.Task, error) {
	task, err := s.taskService.Update(db, id, ownerID, patch)
	if err != nil {
		return task, err
	}
	s.cache.Delete(ownerListKey(ownerID))
	return task, nil
}

func (s *CachedTaskService) Delete(db *gorm.DB, id, ownerID uuid.UUID) error {
	if err := s.taskService.Delete(db, id, ownerID); err != nil {
		return err
	}
	s.cache.Delete(ownerListKey(ownerID))
	return nil
}

// InvalidateOwner drops a user's cached list. Used by the background worker.
func (s *CachedTaskService) InvalidateOwner(ownerID uuid.UUID) error {
	return s.cache.Delete(ownerListKey(ownerID))
}

func (s *CachedTaskService) GetCacheStats() map[string]interface{} {
	return s.cache.Stats()
}
