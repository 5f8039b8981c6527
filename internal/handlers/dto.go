package handlers

import (
	"time"

	"github.com/taskhub-dev/taskhub/internal/models"
)

// Request payloads. Field limits mirror the database columns.

type loginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type createUserRequest struct {
	Email    string          `json:"email" binding:"required,email,max=255"`
	Password string          `json:"password" binding:"required,min=8,max=100"`
	Role     models.UserRole `json:"role" binding:"omitempty,oneof=owner member"`
}

type createTaskRequest struct {
	Title       string            `json:"title" binding:"required,max=100"`
	Description *string           `json:"description" binding:"omitempty,max=5000"`
	Status      models.TaskStatus `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	DueDate     *time.Time        `json:"due_date"`
}

type updateTaskRequest struct {
	Title        *string            `json:"title" binding:"omitempty,min=1,max=100"`
	Description  *string            `json:"description" binding:"omitempty,max=5000"`
	Status       *models.TaskStatus `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	DueDate      *time.Time         `json:"due_date"`
	ClearDueDate bool               `json:"clear_due_date"`
}

type changeOwnerRequest struct {
	NewOwnerID uint64 `json:"new_owner_id" binding:"required"`
}

type commentRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}

type paginationQuery struct {
	Skip  int `form:"skip" binding:"omitempty,min=0"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// Response payloads.

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userResponse struct {
	ID        uint64          `json:"id"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func newUserResponses(users []models.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, newUserResponse(&users[i]))
	}
	return out
}

type taskResponse struct {
	ID          uint64            `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      models.TaskStatus `json:"status"`
	DueDate     *time.Time        `json:"due_date"`
	OwnerID     uint64            `json:"owner_id"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func newTaskResponse(t *models.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		DueDate:     t.DueDate,
		OwnerID:     t.OwnerID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func newTaskResponses(tasks []models.Task) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, newTaskResponse(&tasks[i]))
	}
	return out
}

type commentAuthor struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
}

type commentResponse struct {
	ID        uint64        `json:"id"`
	Content   string        `json:"content"`
	TaskID    uint64        `json:"task_id"`
	AuthorID  uint64        `json:"author_id"`
	Author    commentAuthor `json:"author"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func newCommentResponse(c *models.Comment) commentResponse {
	return commentResponse{
		ID:       c.ID,
		Content:  c.Content,
		TaskID:   c.TaskID,
		AuthorID: c.AuthorID,
		Author: commentAuthor{
			ID:    c.Author.ID,
			Email: c.Author.Email,
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func newCommentResponses(comments []models.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, newCommentResponse(&comments[i]))
	}
	return out
}

type notificationResponse struct {
	ID        uint64                  `json:"id"`
	Message   string                  `json:"message"`
	Type      models.NotificationType `json:"type"`
	IsRead    bool                    `json:"is_read"`
	UserID    uint64                  `json:"user_id"`
	TaskID    uint64                  `json:"task_id"`
	CreatedAt time.Time               `json:"created_at"`
}

func newNotificationResponse(n *models.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		UserID:    n.UserID,
		TaskID:    n.TaskID,
		CreatedAt: n.CreatedAt,
	}
}

func newNotificationResponses(notifications []models.Notification) []notificationResponse {
	out := make([]notificationResponse, 0, len(notifications))
	for i := range notifications {
		out = append(out, newNotificationResponse(&notifications[i]))
	}
	return out
}
