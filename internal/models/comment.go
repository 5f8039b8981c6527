package models

import (
	"time"
)

// Comment authorship is immutable: AuthorID is set at creation and never
// changes, even when a task changes owner.
type Comment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	TaskID    uint64    `gorm:"not null;index" json:"task_id"`
	AuthorID  uint64    `gorm:"not null;index" json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Task   Task `gorm:"foreignKey:TaskID" json:"-"`
	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}
