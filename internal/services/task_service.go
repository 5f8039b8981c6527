package services

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/permissions"
	"github.com/taskhub-dev/taskhub/internal/repository"
	"github.com/taskhub-dev/taskhub/pkg/apperrors"
	"github.com/taskhub-dev/taskhub/pkg/logger"
)

// TaskService handles task business logic.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	log      *zap.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		log:      logger.WithModule("tasks"),
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      models.TaskStatus
	DueDate     *time.Time
}

// UpdateTaskInput represents a partial update. Nil fields are left
// untouched; ClearDueDate removes an existing due date.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Status       *models.TaskStatus
	DueDate      *time.Time
	ClearDueDate bool
}

// Create persists a task owned by the caller. Inactive users may not
// create tasks.
func (s *TaskService) Create(user *models.User, input CreateTaskInput) (*models.Task, error) {
	if !user.IsActive {
		s.log.Warn("inactive user attempted to create task", zap.Uint64("user_id", user.ID))
		return nil, apperrors.ErrInactiveUserCreateTask
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusTodo
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		DueDate:     input.DueDate,
		OwnerID:     user.ID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("task service: create task: %w", err)
	}

	s.log.Info("task created",
		zap.Uint64("task_id", task.ID),
		zap.Uint64("owner_id", user.ID))
	return task, nil
}

// List returns the tasks visible to the caller. OWNER role sees every
// task unless onlyMine is set; members only ever see their own.
func (s *TaskService) List(user *models.User, onlyMine bool, skip, limit int) ([]models.Task, error) {
	if onlyMine || !user.IsOwner() {
		tasks, err := s.taskRepo.ListByOwner(user.ID, skip, limit)
		if err != nil {
			return nil, fmt.Errorf("task service: list own tasks: %w", err)
		}
		return tasks, nil
	}

	tasks, err := s.taskRepo.ListAll(skip, limit)
	if err != nil {
		return nil, fmt.Errorf("task service: list all tasks: %w", err)
	}
	return tasks, nil
}

// GetForOwner returns a task only when the caller owns it. No OWNER
// role bypass: this is the "my task" detail path.
func (s *TaskService) GetForOwner(user *models.User, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByIDAndOwner(taskID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("task service: find task: %w", err)
	}
	return task, nil
}

// GetForAction fetches a task by id and verifies the caller may modify
// it. Denial is masked as not-found. Shared pre-mutation check for
// update and delete.
func (s *TaskService) GetForAction(user *models.User, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("task service: find task: %w", err)
	}

	if err := permissions.RequireTaskModification(user, task); err != nil {
		s.log.Warn("task access masked as not found",
			zap.Uint64("task_id", taskID),
			zap.Uint64("user_id", user.ID))
		return nil, err
	}

	return task, nil
}

// Update applies a partial update to a task the caller may modify.
func (s *TaskService) Update(user *models.User, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetForAction(user, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("task service: update task: %w", err)
	}

	s.log.Info("task updated", zap.Uint64("task_id", task.ID), zap.Uint64("user_id", user.ID))
	return task, nil
}

// Delete removes a task the caller may modify, cascading to comments
// and notifications.
func (s *TaskService) Delete(user *models.User, taskID uint64) error {
	task, err := s.GetForAction(user, taskID)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(task); err != nil {
		return fmt.Errorf("task service: delete task: %w", err)
	}

	s.log.Info("task deleted", zap.Uint64("task_id", taskID), zap.Uint64("user_id", user.ID))
	return nil
}

// ChangeOwner reassigns a task to another user. OWNER role only.
// Check order matters: role gate first (403), then task existence
// (404), then new owner existence (404, distinct message), then new
// owner activity (400).
func (s *TaskService) ChangeOwner(user *models.User, taskID, newOwnerID uint64) (*models.Task, error) {
	if err := permissions.RequireOwnerRole(user); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("task service: find task: %w", err)
	}

	newOwner, err := s.userRepo.FindByID(newOwnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNewOwnerNotFound
		}
		return nil, fmt.Errorf("task service: find new owner: %w", err)
	}

	if !newOwner.IsActive {
		return nil, apperrors.ErrAssignInactiveUser
	}

	previousOwner := task.OwnerID
	task.OwnerID = newOwnerID
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("task service: change owner: %w", err)
	}

	s.log.Info("task owner changed",
		zap.Uint64("task_id", taskID),
		zap.Uint64("previous_owner_id", previousOwner),
		zap.Uint64("new_owner_id", newOwnerID),
		zap.Uint64("changed_by", user.ID))
	return task, nil
}
