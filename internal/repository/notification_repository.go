package repository

import (
	"gorm.io/gorm"

	"github.com/taskhub-dev/taskhub/internal/database"
	"github.com/taskhub-dev/taskhub/internal/models"
)

// GormNotificationRepository is a GORM implementation of
// NotificationRepository.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *GormNotificationRepository) FindByID(id uint64) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *GormNotificationRepository) ListByUser(userID uint64, unreadOnly bool, skip, limit int) ([]models.Notification, error) {
	query := r.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	err := query.
		Order("created_at DESC").
		Scopes(database.Paginate(skip, limit)).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *GormNotificationRepository) CountUnread(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *GormNotificationRepository) MarkRead(notification *models.Notification) error {
	notification.IsRead = true
	return r.db.Model(notification).Update("is_read", true).Error
}

func (r *GormNotificationRepository) Delete(notification *models.Notification) error {
	return r.db.Delete(&models.Notification{}, notification.ID).Error
}

// UnreadExists only considers unread rows: once a notification is read
// or deleted, the next scan is allowed to recreate it. Downstream code
// relies on this to re-surface persistent problems.
func (r *GormNotificationRepository) UnreadExists(taskID uint64, notificationType models.NotificationType) (bool, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("task_id = ? AND notification_type = ? AND is_read = ?", taskID, notificationType, false).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
