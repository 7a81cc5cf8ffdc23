package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskify/taskify-api/internal/api/metrics"
	"github.com/taskify/taskify-api/internal/core/ports"
)

// ManagerHandler handles manager-only task operations. Routes using it are
// additionally gated by the RBAC middleware; the service repeats the check.
type ManagerHandler struct {
	service ports.TaskService
}

func NewManagerHandler(service ports.TaskService) *ManagerHandler {
	return &ManagerHandler{service: service}
}

// ListAll returns every task in the system.
//
// @Summary      List all tasks (manager)
// @Tags         manager
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   taskResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /manager/tasks [get]
func (h *ManagerHandler) ListAll(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.ListAll(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponses(tasks))
}

// DeleteAny removes any user's task by id.
//
// @Summary      Delete any task (manager)
// @Tags         manager
// @Security     BearerAuth
// @Param        id  path  int  true  "Task id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /manager/task/{id} [delete]
func (h *ManagerHandler) DeleteAny(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	taskID, err := taskIDParam(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteAny(c.Request().Context(), id, taskID); err != nil {
		return err
	}

	metrics.TasksDeletedTotal.WithLabelValues("manager").Inc()
	return c.NoContent(http.StatusNoContent)
}
