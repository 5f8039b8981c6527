package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskhub-dev/taskhub/internal/auth"
	"github.com/taskhub-dev/taskhub/internal/constants"
	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/services"
	"github.com/taskhub-dev/taskhub/pkg/apperrors"
	"github.com/taskhub-dev/taskhub/pkg/response"
)

// RequireAuth validates the bearer token, resolves its subject to a
// user and stores the user on the request context. Any failure along
// the way is a uniform 401; an inactive user is a 403.
func RequireAuth(tokens *auth.TokenService, users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error(c, apperrors.ErrUnauthenticated)
			c.Abort()
			return
		}

		email, err := tokens.ValidateAccessToken(token)
		if err != nil {
			response.Error(c, apperrors.ErrUnauthenticated.WithInternal(err))
			c.Abort()
			return
		}

		user, err := users.GetByEmail(email)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		if !user.IsActive {
			response.Error(c, apperrors.ErrInactiveUser)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by RequireAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
