package models

import (
	"time"
)

// NotificationType is the due-date bucket assigned during the scan.
type NotificationType string

const (
	NotificationDueSoon  NotificationType = "due_soon"
	NotificationDueToday NotificationType = "due_today"
	NotificationOverdue  NotificationType = "overdue"
)

// Notification is a private per-user inbox item. At most one unread
// notification of a given (task, type) pair should exist at a time;
// this is enforced by a pre-create existence check, not a constraint.
type Notification struct {
	ID        uint64           `gorm:"primarykey" json:"id"`
	Message   string           `gorm:"type:varchar(500);not null" json:"message"`
	Type      NotificationType `gorm:"column:notification_type;type:varchar(20);not null" json:"notification_type"`
	IsRead    bool             `gorm:"not null;default:false" json:"is_read"`
	UserID    uint64           `gorm:"not null;index" json:"user_id"`
	TaskID    uint64           `gorm:"not null;index" json:"task_id"`
	CreatedAt time.Time        `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Task Task `gorm:"foreignKey:TaskID" json:"-"`
}
