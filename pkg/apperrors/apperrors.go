package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured application error that carries the HTTP status
// it should be rendered with. Services return AppErrors (or wrap them);
// handlers never pick status codes themselves.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}
	return e.Message
}

// Unwrap exposes the internal error for errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Internal
}

// Is matches two AppErrors by code, so sentinel values survive wrapping.
func (e *AppError) Is(target error) bool {
	var other *AppError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// WithInternal returns a copy of the error with an attached cause.
func (e *AppError) WithInternal(err error) *AppError {
	if e == nil {
		return nil
	}
	cpy := *e
	cpy.Internal = err
	return &cpy
}

// New builds an AppError from scratch.
func New(code, message string, statusCode int) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: statusCode}
}

// From converts any error into an AppError, defaulting to ErrInternal.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternal.WithInternal(err)
}

// Sentinel errors shared across services and handlers.
//
// Existence-masking is deliberate: denied access to tasks, comments and
// notifications is reported as not-found so callers cannot probe for ids.
// Role-gated administrative actions report forbidden because existence is
// not at stake there.
var (
	ErrUnauthenticated = &AppError{
		Code:       "UNAUTHENTICATED",
		Message:    "Could not validate credentials",
		StatusCode: http.StatusUnauthorized,
	}
	ErrInvalidCredentials = &AppError{
		Code:       "INVALID_CREDENTIALS",
		Message:    "Incorrect email or password",
		StatusCode: http.StatusUnauthorized,
	}
	ErrInactiveUser = &AppError{
		Code:       "INACTIVE_USER",
		Message:    "Inactive user",
		StatusCode: http.StatusForbidden,
	}
	ErrOwnerRoleRequired = &AppError{
		Code:       "OWNER_ROLE_REQUIRED",
		Message:    "This action requires OWNER role",
		StatusCode: http.StatusForbidden,
	}
	ErrInactiveUserCreateTask = &AppError{
		Code:       "INACTIVE_USER_CREATE_TASK",
		Message:    "Inactive users cannot create tasks",
		StatusCode: http.StatusForbidden,
	}

	ErrTaskNotFound = &AppError{
		Code:       "TASK_NOT_FOUND",
		Message:    "Task not found",
		StatusCode: http.StatusNotFound,
	}
	ErrCommentNotFound = &AppError{
		Code:       "COMMENT_NOT_FOUND",
		Message:    "Comment not found",
		StatusCode: http.StatusNotFound,
	}
	ErrNotificationNotFound = &AppError{
		Code:       "NOTIFICATION_NOT_FOUND",
		Message:    "Notification not found",
		StatusCode: http.StatusNotFound,
	}
	ErrNewOwnerNotFound = &AppError{
		Code:       "NEW_OWNER_NOT_FOUND",
		Message:    "New owner not found",
		StatusCode: http.StatusNotFound,
	}

	ErrAssignInactiveUser = &AppError{
		Code:       "ASSIGN_INACTIVE_USER",
		Message:    "Cannot assign task to inactive user",
		StatusCode: http.StatusBadRequest,
	}
	// Deliberately generic: a duplicate email must not be distinguishable
	// from any other invalid payload, or the endpoint becomes an account
	// enumeration oracle.
	ErrInvalidUserData = &AppError{
		Code:       "INVALID_USER_DATA",
		Message:    "Invalid user data",
		StatusCode: http.StatusBadRequest,
	}
	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: http.StatusBadRequest,
	}

	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "Internal server error",
		StatusCode: http.StatusInternalServerError,
	}
)

// NewBadRequest builds a 400 with a caller-supplied message.
func NewBadRequest(message string) *AppError {
	return &AppError{
		Code:       ErrBadRequest.Code,
		Message:    message,
		StatusCode: ErrBadRequest.StatusCode,
	}
}

// Wrap attaches a cause to an internal server error.
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:       ErrInternal.Code,
		Message:    message,
		StatusCode: ErrInternal.StatusCode,
		Internal:   err,
	}
}
