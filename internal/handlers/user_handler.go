package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskhub-dev/taskhub/internal/permissions"
	"github.com/taskhub-dev/taskhub/internal/services"
	"github.com/taskhub-dev/taskhub/pkg/apperrors"
	"github.com/taskhub-dev/taskhub/pkg/response"
)

// UserHandler serves user endpoints.
type UserHandler struct {
	users *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me returns the authenticated user.
// GET /api/v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, newUserResponse(user))
}

// List returns active users for OWNER callers; members get themselves.
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
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

	users, err := h.users.List(user, q.Skip, q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, newUserResponses(users), &response.Meta{
		Skip:  q.Skip,
		Limit: q.Limit,
	})
}

// Create registers a new user. OWNER role only.
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := permissions.RequireOwnerRole(user); err != nil {
		response.Error(c, err)
		return
	}

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrInvalidUserData.WithInternal(err))
		return
	}

	created, err := h.users.CreateByOwner(services.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, newUserResponse(created))
}
