package services

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/permissions"
	"github.com/taskhub-dev/taskhub/internal/repository"
	"github.com/taskhub-dev/taskhub/pkg/apperrors"
	"github.com/taskhub-dev/taskhub/pkg/logger"
)

// NotificationService handles the per-user notification inbox and the
// due-date scan.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	taskRepo         repository.TaskRepository
	now              func() time.Time
	log              *zap.Logger
}

// NotificationOption customises the NotificationService.
type NotificationOption func(*NotificationService)

// WithNow overrides the clock used by the due-date scan.
func WithNow(now func() time.Time) NotificationOption {
	return func(s *NotificationService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository, taskRepo repository.TaskRepository, opts ...NotificationOption) *NotificationService {
	s := &NotificationService{
		notificationRepo: notificationRepo,
		taskRepo:         taskRepo,
		now:              time.Now,
		log:              logger.WithModule("notifications"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the caller's notifications newest-first, optionally
// unread only. Always scoped to the caller; there is no way to list
// someone else's inbox.
func (s *NotificationService) List(user *models.User, unreadOnly bool, skip, limit int) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.ListByUser(user.ID, unreadOnly, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("notification service: list notifications: %w", err)
	}
	return notifications, nil
}

// CountUnread counts the caller's unread notifications.
func (s *NotificationService) CountUnread(user *models.User) (int64, error) {
	count, err := s.notificationRepo.CountUnread(user.ID)
	if err != nil {
		return 0, fmt.Errorf("notification service: count unread: %w", err)
	}
	return count, nil
}

// MarkRead flags a notification as read. Recipient only, no role
// bypass; re-marking an already-read notification is a no-op success.
func (s *NotificationService) MarkRead(user *models.User, notificationID uint64) (*models.Notification, error) {
	notification, err := s.findNotification(notificationID)
	if err != nil {
		return nil, err
	}

	if err := permissions.RequireNotificationAccess(user, notification); err != nil {
		return nil, err
	}

	if err := s.notificationRepo.MarkRead(notification); err != nil {
		return nil, fmt.Errorf("notification service: mark read: %w", err)
	}
	return notification, nil
}

// Delete removes a notification. Recipient only, no role bypass.
func (s *NotificationService) Delete(user *models.User, notificationID uint64) error {
	notification, err := s.findNotification(notificationID)
	if err != nil {
		return err
	}

	if err := permissions.RequireNotificationAccess(user, notification); err != nil {
		return err
	}

	if err := s.notificationRepo.Delete(notification); err != nil {
		return fmt.Errorf("notification service: delete notification: %w", err)
	}
	return nil
}

// GenerationResult counts the notifications created per due-date bucket
// during one scan.
type GenerationResult struct {
	DueSoon  int `json:"due_soon"`
	DueToday int `json:"due_today"`
	Overdue  int `json:"overdue"`
}

// Total sums all buckets.
func (r GenerationResult) Total() int {
	return r.DueSoon + r.DueToday + r.Overdue
}

// GenerateDueDateNotifications scans open tasks with a due date and
// creates at most one unread notification per (task, bucket).
//
// Buckets are evaluated in precedence order: overdue, due today, due
// within the next 24 hours. The dedup check only considers unread
// rows, so a read or deleted notification for a still-overdue task is
// recreated by the next scan. Two concurrent scans can race the
// check-then-create window and both insert; that is an accepted
// limitation, not guarded by a constraint.
func (s *NotificationService) GenerateDueDateNotifications() (GenerationResult, error) {
	var result GenerationResult

	now := s.now().UTC()
	todayEnd := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999000, time.UTC)
	tomorrowEnd := todayEnd.Add(24 * time.Hour)

	tasks, err := s.taskRepo.ListDueIncomplete()
	if err != nil {
		return result, fmt.Errorf("notification service: list due tasks: %w", err)
	}

	for _, task := range tasks {
		if task.DueDate == nil {
			continue
		}
		due := task.DueDate.UTC()

		var (
			bucket  models.NotificationType
			message string
			counter *int
		)
		switch {
		case due.Before(now):
			bucket = models.NotificationOverdue
			message = fmt.Sprintf("Task '%s' is overdue", task.Title)
			counter = &result.Overdue
		case !due.After(todayEnd):
			bucket = models.NotificationDueToday
			message = fmt.Sprintf("Task '%s' is due today", task.Title)
			counter = &result.DueToday
		case !due.After(tomorrowEnd):
			bucket = models.NotificationDueSoon
			message = fmt.Sprintf("Task '%s' is due soon", task.Title)
			counter = &result.DueSoon
		default:
			continue
		}

		exists, err := s.notificationRepo.UnreadExists(task.ID, bucket)
		if err != nil {
			return result, fmt.Errorf("notification service: check existing notification: %w", err)
		}
		if exists {
			continue
		}

		notification := &models.Notification{
			Message: message,
			Type:    bucket,
			UserID:  task.OwnerID,
			TaskID:  task.ID,
		}
		if err := s.notificationRepo.Create(notification); err != nil {
			return result, fmt.Errorf("notification service: create notification: %w", err)
		}
		*counter++
	}

	s.log.Info("due-date scan finished",
		zap.Int("due_soon", result.DueSoon),
		zap.Int("due_today", result.DueToday),
		zap.Int("overdue", result.Overdue))
	return result, nil
}

func (s *NotificationService) findNotification(notificationID uint64) (*models.Notification, error) {
	notification, err := s.notificationRepo.FindByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("notification service: find notification: %w", err)
	}
	return notification, nil
}
