package repository

import (
	"gorm.io/gorm"

	"github.com/taskhub-dev/taskhub/internal/database"
	"github.com/taskhub-dev/taskhub/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository.
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *GormTaskRepository) FindByIDAndOwner(id, ownerID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *GormTaskRepository) ListByOwner(ownerID uint64, skip, limit int) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Scopes(database.Paginate(skip, limit)).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *GormTaskRepository) ListAll(skip, limit int) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Order("created_at DESC").
		Scopes(database.Paginate(skip, limit)).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *GormTaskRepository) ListDueIncomplete() ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("due_date IS NOT NULL").
		Where("status <> ?", models.TaskStatusDone).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete removes the task together with its comments and notifications
// in one transaction. SQLite test databases do not enforce the FK
// cascade, so the dependents are deleted explicitly.
func (r *GormTaskRepository) Delete(task *models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, task.ID).Error
	})
}
