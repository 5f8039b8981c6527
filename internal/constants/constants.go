// Package constants centralizes pagination defaults and field limits so
// business rules stay in one place.
package constants

// Pagination defaults for list endpoints.
const (
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

// Field length limits. Validation happens at binding time; these mirror
// the database column constraints.
const (
	TaskTitleMaxLength          = 100
	TaskDescriptionMaxLength    = 5000
	CommentContentMaxLength     = 5000
	NotificationMessageMaxLength = 500
	UserEmailMaxLength          = 255
	UserPasswordMinLength       = 8
	UserPasswordMaxLength       = 100
)

// Context keys shared between middleware and handlers.
const (
	ContextKeyUser = "current_user"
)
