package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"type:varchar(100);not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	DueDate     *time.Time `json:"due_date"`
	OwnerID     uint64     `gorm:"not null;index" json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations. Deleting a task cascades to its comments and
	// notifications.
	Owner         User           `gorm:"foreignKey:OwnerID" json:"-"`
	Comments      []Comment      `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
	Notifications []Notification `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
}
