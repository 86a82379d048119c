package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"taskr/internal/auth"
	"taskr/internal/errors"
	"taskr/internal/model"
	"taskr/internal/service"
)

const dueDateLayout = "2006-01-02"

// ContextKeySession is the echo context key under which the session
// middleware stores the resolved session.
const ContextKeySession = "taskr_session"

// TaskHandler handles the session-scoped task routes.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// AddTaskRequest represents a new task submission.
type AddTaskRequest struct {
	Name     string `json:"name" validate:"required"`
	DueDate  string `json:"due_date" validate:"required"`
	Priority int    `json:"priority" validate:"required,min=1,max=10"`
}

// TaskListResponse groups tasks for the task page.
type TaskListResponse struct {
	Open   []model.Task `json:"open"`
	Closed []model.Task `json:"closed"`
}

// ListTasks godoc
// @Summary List open and closed tasks
// @Tags tasks
// @Produce json
// @Success 200 {object} TaskListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	ctx := c.Request().Context()

	open, err := h.taskService.OpenTasks(ctx)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	closed, err := h.taskService.ClosedTasks(ctx)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, TaskListResponse{Open: open, Closed: closed})
}

// AddTask godoc
// @Summary Create a new task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body AddTaskRequest true "Task data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /add [post]
func (h *TaskHandler) AddTask(c echo.Context) error {
	session, ok := sessionFrom(c)
	if !ok {
		return loginRequired(c)
	}

	var req AddTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid request body"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: err.Error()})
	}

	dueDate, err := time.Parse(dueDateLayout, req.DueDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{
			Error: "Due date must use the YYYY-MM-DD format.",
			Field: "due_date",
		})
	}

	task, err := h.taskService.AddTask(c.Request().Context(), session.UserID, req.Name, dueDate, req.Priority)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "New entry was successfully posted. Thanks.",
		"task":    task,
	})
}

// CompleteTask godoc
// @Summary Mark a task as complete
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /complete/{id} [get]
func (h *TaskHandler) CompleteTask(c echo.Context) error {
	session, ok := sessionFrom(c)
	if !ok {
		return loginRequired(c)
	}

	taskID, err := taskIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid task id"})
	}

	if err := h.taskService.CompleteTask(c.Request().Context(), session.UserID, taskID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "The task was marked as complete. Nice.",
	})
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /delete/{id} [get]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	session, ok := sessionFrom(c)
	if !ok {
		return loginRequired(c)
	}

	taskID, err := taskIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid task id"})
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), session.UserID, taskID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "The task was deleted. Why not add a new one?",
	})
}

// sessionFrom returns the session resolved by the session middleware.
func sessionFrom(c echo.Context) (*auth.Session, bool) {
	session, ok := c.Get(ContextKeySession).(*auth.Session)
	return session, ok && session != nil
}

func loginRequired(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{
		Error: errors.ErrLoginRequired.Error(),
	})
}

func taskIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
