package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taskhub-dev/taskhub/internal/auth"
	"github.com/taskhub-dev/taskhub/internal/config"
	"github.com/taskhub-dev/taskhub/internal/database"
	"github.com/taskhub-dev/taskhub/internal/handlers"
	"github.com/taskhub-dev/taskhub/internal/repository"
	"github.com/taskhub-dev/taskhub/internal/scheduler"
	"github.com/taskhub-dev/taskhub/internal/services"
	"github.com/taskhub-dev/taskhub/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}

	if err := logger.Init(cfg.Server.LogLevel); err != nil {
		panic(fmt.Sprintf("init logger: %v", err))
	}
	defer logger.Sync()

	gin.SetMode(cfg.Server.GinMode)

	db, err := database.Open(cfg.Database)
	if err != nil {
		logger.L().Fatal("open database", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.L().Fatal("migrate database", zap.Error(err))
	}

	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret: cfg.Auth.JWTSecret,
		Issuer: cfg.Auth.JWTIssuer,
		TTL:    cfg.Auth.AccessTokenTTL,
	})
	if err != nil {
		logger.L().Fatal("init token service", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, taskRepo)
	notificationService := services.NewNotificationService(notificationRepo, taskRepo)

	if cfg.Scheduler.Enabled {
		s := scheduler.New(notificationService, scheduler.WithSpec(cfg.Scheduler.DueDatesSpec))
		if err := s.Start(); err != nil {
			logger.L().Fatal("start scheduler", zap.Error(err))
		}
		defer s.Stop()
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		Tokens:        tokens,
		Users:         userService,
		Tasks:         taskService,
		Comments:      commentService,
		Notifications: notificationService,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.L().Info("server listening", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
