package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/repository"
	"github.com/taskhub-dev/taskhub/pkg/apperrors"
	"github.com/taskhub-dev/taskhub/pkg/logger"
)

// UserService handles user management and credential checks.
type UserService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		log:      logger.WithModule("users"),
	}
}

// CreateUserInput represents the fields an OWNER supplies when creating
// a user.
type CreateUserInput struct {
	Email    string
	Password string
	Role     models.UserRole
}

// CreateByOwner creates a user with a hashed password. A duplicate
// email yields the same generic failure as any other bad payload so
// the endpoint cannot be used to probe which addresses are registered.
func (s *UserService) CreateByOwner(input CreateUserInput) (*models.User, error) {
	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		s.log.Warn("user creation rejected: email already registered")
		return nil, apperrors.ErrInvalidUserData
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user service: check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("user service: hash password: %w", err)
	}

	role := input.Role
	if role == "" {
		role = models.RoleMember
	}

	user := &models.User{
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		// The unique index can still trip between check and insert;
		// keep the failure indistinguishable from the pre-check path.
		return nil, apperrors.ErrInvalidUserData.WithInternal(err)
	}

	s.log.Info("user created", zap.Uint64("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// List returns all active users for OWNER callers. Everyone else gets
// a single-element list holding only themselves; this is a graceful
// degrade, never an error.
func (s *UserService) List(user *models.User, skip, limit int) ([]models.User, error) {
	if !user.IsOwner() {
		return []models.User{*user}, nil
	}

	users, err := s.userRepo.ListActive(skip, limit)
	if err != nil {
		return nil, fmt.Errorf("user service: list users: %w", err)
	}
	return users, nil
}

// Authenticate verifies email+password credentials. Wrong email and
// wrong password are indistinguishable; inactive users are rejected
// after the password check.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("user service: find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Warn("failed login attempt", zap.Uint64("user_id", user.ID))
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		s.log.Warn("inactive user login attempt", zap.Uint64("user_id", user.ID))
		return nil, apperrors.ErrInactiveUser
	}

	return user, nil
}

// GetByEmail loads a user by email. Used by the auth middleware to
// resolve token subjects.
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, fmt.Errorf("user service: find user: %w", err)
	}
	return user, nil
}
