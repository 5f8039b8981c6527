package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskhub-dev/taskhub/internal/services"
	"github.com/taskhub-dev/taskhub/pkg/apperrors"
	"github.com/taskhub-dev/taskhub/pkg/response"
)

// CommentHandler serves comment endpoints.
type CommentHandler struct {
	comments *services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// ListForTask returns a task's comments newest-first.
// GET /api/v1/tasks/:id/comments
func (h *CommentHandler) ListForTask(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	taskID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	q, err := bindPagination(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	comments, err := h.comments.ListForTask(user, taskID, q.Skip, q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, newCommentResponses(comments), &response.Meta{
		Skip:  q.Skip,
		Limit: q.Limit,
	})
}

// Create adds a comment to a task the caller can access.
// POST /api/v1/tasks/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	taskID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.NewBadRequest("content is required").WithInternal(err))
		return
	}

	comment, err := h.comments.Create(user, taskID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, newCommentResponse(comment))
}

// Update replaces a comment's content. Author only.
// PUT /api/v1/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.NewBadRequest("content is required").WithInternal(err))
		return
	}

	comment, err := h.comments.Update(user, id, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, newCommentResponse(comment))
}

// Delete removes a comment. Author or OWNER role.
// DELETE /api/v1/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.comments.Delete(user, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
