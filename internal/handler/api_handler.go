package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"taskr/internal/errors"
	"taskr/internal/service"
)

// APIHandler serves the public read-only task API. It applies no ownership
// filtering by contract.
type APIHandler struct {
	apiService service.TaskAPIService
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(apiService service.TaskAPIService) *APIHandler {
	return &APIHandler{apiService: apiService}
}

// TaskCollectionResponse wraps the task list in the envelope existing
// consumers expect.
type TaskCollectionResponse struct {
	Item []service.TaskView `json:"item"`
}

// ListTasks godoc
// @Summary List tasks
// @Tags api
// @Produce json
// @Param limit query int false "Page size (default 10)"
// @Param offset query int false "Page offset"
// @Success 200 {object} TaskCollectionResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/tasks [get]
func (h *APIHandler) ListTasks(c echo.Context) error {
	limit := queryInt(c, "limit", service.DefaultListLimit)
	offset := queryInt(c, "offset", 0)

	views, err := h.apiService.ListTasks(c.Request().Context(), limit, offset)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, TaskCollectionResponse{Item: views})
}

// GetTask godoc
// @Summary Get a single task
// @Tags api
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} service.TaskView
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/tasks/{id} [get]
func (h *APIHandler) GetTask(c echo.Context) error {
	id, err := taskIDParam(c)
	if err != nil {
		// An unparseable id cannot reference an existing element.
		return c.JSON(http.StatusNotFound, errors.ErrorResponse{
			Error: errors.ErrTaskNotFound.Error(),
		})
	}

	view, err := h.apiService.GetTask(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, view)
}

func queryInt(c echo.Context, name string, def int) int {
	if v := c.QueryParam(name); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
