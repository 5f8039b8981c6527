package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskhub-dev/taskhub/internal/auth"
	"github.com/taskhub-dev/taskhub/internal/middleware"
	"github.com/taskhub-dev/taskhub/internal/services"
	"github.com/taskhub-dev/taskhub/pkg/response"
)

// RouterConfig bundles everything the router needs.
type RouterConfig struct {
	Tokens        *auth.TokenService
	Users         *services.UserService
	Tasks         *services.TaskService
	Comments      *services.CommentService
	Notifications *services.NotificationService
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler := NewAuthHandler(cfg.Users, cfg.Tokens)
	userHandler := NewUserHandler(cfg.Users)
	taskHandler := NewTaskHandler(cfg.Tasks)
	commentHandler := NewCommentHandler(cfg.Comments)
	notificationHandler := NewNotificationHandler(cfg.Notifications)

	v1 := r.Group("/api/v1")
	v1.POST("/login/access-token", authHandler.Login)

	authed := v1.Group("")
	authed.Use(middleware.RequireAuth(cfg.Tokens, cfg.Users))
	{
		authed.GET("/users/me", userHandler.Me)
		authed.GET("/users", userHandler.List)
		authed.POST("/users", userHandler.Create)

		authed.GET("/tasks", taskHandler.List)
		authed.POST("/tasks", taskHandler.Create)
		authed.GET("/tasks/:id", taskHandler.Get)
		authed.PUT("/tasks/:id", taskHandler.Update)
		authed.DELETE("/tasks/:id", taskHandler.Delete)
		authed.PATCH("/tasks/:id/owner", taskHandler.ChangeOwner)

		authed.GET("/tasks/:id/comments", commentHandler.ListForTask)
		authed.POST("/tasks/:id/comments", commentHandler.Create)
		authed.PUT("/comments/:id", commentHandler.Update)
		authed.DELETE("/comments/:id", commentHandler.Delete)

		authed.GET("/notifications", notificationHandler.List)
		authed.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		authed.PUT("/notifications/:id/read", notificationHandler.MarkRead)
		authed.DELETE("/notifications/:id", notificationHandler.Delete)
		authed.POST("/notifications/check-due-dates", notificationHandler.CheckDueDates)
	}

	return r
}
