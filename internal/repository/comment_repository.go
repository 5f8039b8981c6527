package repository

import (
	"gorm.io/gorm"

	"github.com/taskhub-dev/taskhub/internal/database"
	"github.com/taskhub-dev/taskhub/internal/models"
)

// GormCommentRepository is a GORM implementation of CommentRepository.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *GormCommentRepository) FindByID(id uint64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Preload("Author").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *GormCommentRepository) ListByTask(taskID uint64, skip, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.
		Preload("Author").
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Scopes(database.Paginate(skip, limit)).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *GormCommentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

func (r *GormCommentRepository) Delete(comment *models.Comment) error {
	return r.db.Delete(&models.Comment{}, comment.ID).Error
}
