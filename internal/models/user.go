package models

import (
	"time"
)

// UserRole is a closed two-value set. OWNER grants system-wide task
// visibility and comment moderation; it grants nothing extra for
// notifications.
type UserRole string

const (
	RoleOwner  UserRole = "owner"
	RoleMember UserRole = "member"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations. Deleting a user cascades to owned tasks, authored
	// comments and received notifications.
	Tasks         []Task         `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Comments      []Comment      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Notifications []Notification `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsOwner reports whether the user carries the OWNER role.
func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}
