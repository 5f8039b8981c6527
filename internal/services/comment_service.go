package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/permissions"
	"github.com/taskhub-dev/taskhub/internal/repository"
	"github.com/taskhub-dev/taskhub/pkg/apperrors"
	"github.com/taskhub-dev/taskhub/pkg/logger"
)

// CommentService handles comment business logic.
type CommentService struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
	log         *zap.Logger
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, taskRepo repository.TaskRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
		log:         logger.WithModule("comments"),
	}
}

// ListForTask returns a task's comments newest-first with authors
// resolved. The caller needs task access; denial is masked.
func (s *CommentService) ListForTask(user *models.User, taskID uint64, skip, limit int) ([]models.Comment, error) {
	if err := s.requireTaskAccess(user, taskID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByTask(taskID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("comment service: list comments: %w", err)
	}
	return comments, nil
}

// Create adds a comment to a task the caller can access. Authorship is
// forced to the caller and cannot be spoofed.
func (s *CommentService) Create(user *models.User, taskID uint64, content string) (*models.Comment, error) {
	if err := s.requireTaskAccess(user, taskID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:  content,
		TaskID:   taskID,
		AuthorID: user.ID,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("comment service: create comment: %w", err)
	}

	s.log.Info("comment created",
		zap.Uint64("comment_id", comment.ID),
		zap.Uint64("task_id", taskID),
		zap.Uint64("author_id", user.ID))

	// Reload so the author association is populated for the response.
	return s.findComment(comment.ID)
}

// Update replaces a comment's content. Author-only; OWNER role grants
// no edit rights, and denial is masked as not-found.
func (s *CommentService) Update(user *models.User, commentID uint64, content string) (*models.Comment, error) {
	comment, err := s.findComment(commentID)
	if err != nil {
		return nil, err
	}

	if err := permissions.RequireCommentModification(user, comment); err != nil {
		s.log.Warn("comment edit masked as not found",
			zap.Uint64("comment_id", commentID),
			zap.Uint64("user_id", user.ID))
		return nil, err
	}

	comment.Content = content
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, fmt.Errorf("comment service: update comment: %w", err)
	}

	s.log.Info("comment updated", zap.Uint64("comment_id", commentID), zap.Uint64("user_id", user.ID))
	return comment, nil
}

// Delete removes a comment. Allowed for the author or an OWNER acting
// as moderator; denial is masked as not-found.
func (s *CommentService) Delete(user *models.User, commentID uint64) error {
	comment, err := s.findComment(commentID)
	if err != nil {
		return err
	}

	if err := permissions.RequireCommentDeletion(user, comment); err != nil {
		s.log.Warn("comment delete masked as not found",
			zap.Uint64("comment_id", commentID),
			zap.Uint64("user_id", user.ID))
		return err
	}

	if err := s.commentRepo.Delete(comment); err != nil {
		return fmt.Errorf("comment service: delete comment: %w", err)
	}

	s.log.Info("comment deleted", zap.Uint64("comment_id", commentID), zap.Uint64("user_id", user.ID))
	return nil
}

func (s *CommentService) findComment(commentID uint64) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("comment service: find comment: %w", err)
	}
	return comment, nil
}

func (s *CommentService) requireTaskAccess(user *models.User, taskID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return fmt.Errorf("comment service: find task: %w", err)
	}
	return permissions.RequireTaskAccess(user, task)
}
