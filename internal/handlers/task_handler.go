package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskhub-dev/taskhub/internal/services"
	"github.com/taskhub-dev/taskhub/pkg/apperrors"
	"github.com/taskhub-dev/taskhub/pkg/response"
)

// TaskHandler serves task endpoints.
type TaskHandler struct {
	tasks *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// List returns the tasks visible to the caller.
// GET /api/v1/tasks?only_mine=&skip=&limit=
func (h *TaskHandler) List(c *gin.Context) {
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
	onlyMine := c.Query("only_mine") == "true"

	tasks, err := h.tasks.List(user, onlyMine, q.Skip, q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, newTaskResponses(tasks), &response.Meta{
		Skip:  q.Skip,
		Limit: q.Limit,
	})
}

// Create registers a new task owned by the caller.
// POST /api/v1/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.NewBadRequest("Invalid task data").WithInternal(err))
		return
	}

	task, err := h.tasks.Create(user, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, newTaskResponse(task))
}

// Get returns one of the caller's own tasks. Strict ownership, no
// role bypass.
// GET /api/v1/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
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

	task, err := h.tasks.GetForOwner(user, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, newTaskResponse(task))
}

// Update applies a partial update.
// PUT /api/v1/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
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

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.NewBadRequest("Invalid task data").WithInternal(err))
		return
	}

	task, err := h.tasks.Update(user, id, services.UpdateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, newTaskResponse(task))
}

// Delete removes a task and its comments and notifications.
// DELETE /api/v1/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
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

	if err := h.tasks.Delete(user, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ChangeOwner reassigns a task to another user. OWNER role only.
// PATCH /api/v1/tasks/:id/owner
func (h *TaskHandler) ChangeOwner(c *gin.Context) {
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

	var req changeOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.NewBadRequest("new_owner_id is required").WithInternal(err))
		return
	}

	task, err := h.tasks.ChangeOwner(user, id, req.NewOwnerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, newTaskResponse(task))
}
