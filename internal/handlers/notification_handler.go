package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskhub-dev/taskhub/internal/permissions"
	"github.com/taskhub-dev/taskhub/internal/services"
	"github.com/taskhub-dev/taskhub/pkg/response"
)

// NotificationHandler serves notification endpoints.
type NotificationHandler struct {
	notifications *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List returns the caller's notifications newest-first.
// GET /api/v1/notifications?unread_only=&skip=&limit=
func (h *NotificationHandler) List(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	q, err := bindPagination(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	unreadOnly := c.Query("unread_only") == "true"

	notifications, err := h.notifications.List(user, unreadOnly, q.Skip, q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, newNotificationResponses(notifications), &response.Meta{
		Skip:  q.Skip,
		Limit: q.Limit,
	})
}

// UnreadCount returns the caller's unread notification count.
// GET /api/v1/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	count, err := h.notifications.CountUnread(user)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"unread_count": count})
}

// MarkRead flags a notification as read. Idempotent.
// PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	notification, err := h.notifications.MarkRead(user, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, newNotificationResponse(notification))
}

// Delete removes a notification from the caller's inbox.
// DELETE /api/v1/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.notifications.Delete(user, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// CheckDueDates triggers the due-date scan on demand. OWNER role only.
// POST /api/v1/notifications/check-due-dates
func (h *NotificationHandler) CheckDueDates(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := permissions.RequireOwnerRole(user); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.notifications.GenerateDueDateNotifications()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"notifications_created": result.Total(),
		"due_soon":              result.DueSoon,
		"due_today":             result.DueToday,
		"overdue":               result.Overdue,
	})
}
