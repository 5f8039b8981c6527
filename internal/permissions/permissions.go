// Package permissions holds the authorization rules for every resource
// type. The Can* functions are pure predicates over (user, resource)
// pairs; the Require* variants convert a false result into the typed
// failure the services propagate.
//
// The status mapping is deliberate and asymmetric:
//
//   - Denied access to a task, comment or notification is reported as
//     not-found so unauthorized callers cannot confirm an id exists.
//   - Role-gated administrative actions report forbidden, because the
//     caller already knows the operation exists.
package permissions

import (
	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/pkg/apperrors"
)

// CanAccessTask reports whether the user may view a task: the task's
// owner, or any user with the OWNER role.
func CanAccessTask(user *models.User, task *models.Task) bool {
	return task.OwnerID == user.ID || user.IsOwner()
}

// CanModifyTask reports whether the user may modify a task. Access and
// modification are symmetric for tasks.
func CanModifyTask(user *models.User, task *models.Task) bool {
	return task.OwnerID == user.ID || user.IsOwner()
}

// CanModifyComment reports whether the user may edit a comment. Editing
// is author-only; the OWNER role grants no extra edit rights.
func CanModifyComment(user *models.User, comment *models.Comment) bool {
	return comment.AuthorID == user.ID
}

// CanDeleteComment reports whether the user may delete a comment: the
// author, or an OWNER acting as moderator. The asymmetry with
// CanModifyComment is intentional.
func CanDeleteComment(user *models.User, comment *models.Comment) bool {
	return comment.AuthorID == user.ID || user.IsOwner()
}

// CanAccessNotification reports whether the user may touch a
// notification. Strictest rule in the system: recipient only, no role
// bypass. Notifications are private even from admins.
func CanAccessNotification(user *models.User, notification *models.Notification) bool {
	return notification.UserID == user.ID
}

// RequireOwnerRole fails with 403 when the user lacks the OWNER role.
func RequireOwnerRole(user *models.User) error {
	if !user.IsOwner() {
		return apperrors.ErrOwnerRoleRequired
	}
	return nil
}

// RequireTaskAccess masks a denied task read as not-found.
func RequireTaskAccess(user *models.User, task *models.Task) error {
	if !CanAccessTask(user, task) {
		return apperrors.ErrTaskNotFound
	}
	return nil
}

// RequireTaskModification masks a denied task mutation as not-found.
func RequireTaskModification(user *models.User, task *models.Task) error {
	if !CanModifyTask(user, task) {
		return apperrors.ErrTaskNotFound
	}
	return nil
}

// RequireCommentModification masks a denied comment edit as not-found.
func RequireCommentModification(user *models.User, comment *models.Comment) error {
	if !CanModifyComment(user, comment) {
		return apperrors.ErrCommentNotFound
	}
	return nil
}

// RequireCommentDeletion masks a denied comment delete as not-found.
func RequireCommentDeletion(user *models.User, comment *models.Comment) error {
	if !CanDeleteComment(user, comment) {
		return apperrors.ErrCommentNotFound
	}
	return nil
}

// RequireNotificationAccess masks any foreign notification access as
// not-found, regardless of role.
func RequireNotificationAccess(user *models.User, notification *models.Notification) error {
	if !CanAccessNotification(user, notification) {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}
