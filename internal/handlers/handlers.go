// Package handlers wires HTTP endpoints to the service layer. Handlers
// stay thin: bind, call the service, render.
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/taskhub-dev/taskhub/internal/middleware"
	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/pkg/apperrors"
)

func currentUser(c *gin.Context) (*models.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, apperrors.ErrUnauthenticated
	}
	return user, nil
}

func pathID(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewBadRequest("Invalid " + name + " parameter")
	}
	return id, nil
}

func bindPagination(c *gin.Context) (paginationQuery, error) {
	var q paginationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return q, apperrors.NewBadRequest("Invalid pagination parameters").WithInternal(err)
	}
	return q, nil
}
