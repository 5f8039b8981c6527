package repository

import (
	"github.com/taskhub-dev/taskhub/internal/models"
)

// UserRepository defines data access for users.
type UserRepository interface {
	// Create persists a new user.
	Create(user *models.User) error

	// FindByID finds a user by ID.
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email.
	FindByEmail(email string) (*models.User, error)

	// ListActive returns active users ordered by creation.
	ListActive(skip, limit int) ([]models.User, error)
}

// TaskRepository defines data access for tasks.
type TaskRepository interface {
	// Create persists a new task.
	Create(task *models.Task) error

	// FindByID finds a task by ID alone.
	FindByID(id uint64) (*models.Task, error)

	// FindByIDAndOwner finds a task only when it belongs to the owner.
	FindByIDAndOwner(id, ownerID uint64) (*models.Task, error)

	// ListByOwner returns tasks owned by a user.
	ListByOwner(ownerID uint64, skip, limit int) ([]models.Task, error)

	// ListAll returns tasks system-wide.
	ListAll(skip, limit int) ([]models.Task, error)

	// ListDueIncomplete returns tasks with a due date that are not done.
	ListDueIncomplete() ([]models.Task, error)

	// Update saves the full task record.
	Update(task *models.Task) error

	// Delete removes the task and its dependent comments and
	// notifications.
	Delete(task *models.Task) error
}

// CommentRepository defines data access for comments.
type CommentRepository interface {
	// Create persists a new comment.
	Create(comment *models.Comment) error

	// FindByID finds a comment by ID with its author resolved.
	FindByID(id uint64) (*models.Comment, error)

	// ListByTask returns a task's comments newest-first with authors
	// resolved.
	ListByTask(taskID uint64, skip, limit int) ([]models.Comment, error)

	// Update saves the comment record.
	Update(comment *models.Comment) error

	// Delete removes the comment.
	Delete(comment *models.Comment) error
}

// NotificationRepository defines data access for notifications.
type NotificationRepository interface {
	// Create persists a new notification.
	Create(notification *models.Notification) error

	// FindByID finds a notification by ID.
	FindByID(id uint64) (*models.Notification, error)

	// ListByUser returns a user's notifications newest-first, optionally
	// restricted to unread ones.
	ListByUser(userID uint64, unreadOnly bool, skip, limit int) ([]models.Notification, error)

	// CountUnread counts a user's unread notifications.
	CountUnread(userID uint64) (int64, error)

	// MarkRead flags the notification as read.
	MarkRead(notification *models.Notification) error

	// Delete removes the notification.
	Delete(notification *models.Notification) error

	// UnreadExists reports whether an unread notification of the given
	// type already exists for the task.
	UnreadExists(taskID uint64, notificationType models.NotificationType) (bool, error)
}
