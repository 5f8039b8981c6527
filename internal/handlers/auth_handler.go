package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskhub-dev/taskhub/internal/auth"
	"github.com/taskhub-dev/taskhub/internal/services"
	"github.com/taskhub-dev/taskhub/pkg/apperrors"
	"github.com/taskhub-dev/taskhub/pkg/response"
)

// AuthHandler serves the login endpoint.
type AuthHandler struct {
	users  *services.UserService
	tokens *auth.TokenService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users *services.UserService, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// Login exchanges form credentials for a bearer token.
// POST /api/v1/login/access-token
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, apperrors.NewBadRequest("username and password are required").WithInternal(err))
		return
	}

	user, err := h.users.Authenticate(req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.tokens.IssueAccessToken(user.Email)
	if err != nil {
		response.Error(c, apperrors.ErrInternal.WithInternal(err))
		return
	}

	response.Success(c, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
