package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskify/taskify-api/internal/api/metrics"
	"github.com/taskify/taskify-api/internal/core/ports"
)

// TaskHandler handles HTTP requests for the caller's own tasks.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func taskIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}
	return id, nil
}

// List returns the caller's tasks.
//
// @Summary      List own tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   taskResponse
// @Failure      401  {object}  errorResponse
// @Router       /tasks/ [get]
func (h *TaskHandler) List(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.ListOwn(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponses(tasks))
}

// Create creates a task owned by the caller.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string       false  "Replay-safe creation key"
// @Param        body             body      taskRequest  true   "Task details"
// @Success      201              {object}  taskResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Router       /tasks/ [post]
func (h *TaskHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Create(c.Request().Context(), id, ports.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Priority:       req.Priority,
		Completed:      req.Completed,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.WithLabelValues(strconv.FormatBool(result.AlreadyExisted)).Inc()
	return c.JSON(http.StatusCreated, toTaskResponse(result.Task))
}

// Update replaces a task's state. Owner only.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  int          true  "Task id"
// @Param        body  body  taskRequest  true  "Task details"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	taskID, err := taskIDParam(c)
	if err != nil {
		return err
	}

	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Update(c.Request().Context(), id, taskID, ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Completed:   req.Completed,
	}); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Delete removes a task. Owner only.
//
// @Summary      Delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Param        id  path  int  true  "Task id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	taskID, err := taskIDParam(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id, taskID); err != nil {
		return err
	}

	metrics.TasksDeletedTotal.WithLabelValues("owner").Inc()
	return c.NoContent(http.StatusNoContent)
}
