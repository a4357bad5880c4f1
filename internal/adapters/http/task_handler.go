package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daybot/core/internal/application/services"
	"github.com/daybot/core/internal/domain/entities"
	"github.com/daybot/core/internal/infrastructure/logger"
)

// CreateTaskRequest is the payload for adding a checklist task.
type CreateTaskRequest struct {
	Text     string `json:"text" validate:"required"`
	Priority string `json:"priority" validate:"required"`
	Deadline string `json:"deadline"`
}

// UpdateStatusRequest toggles a completion flag.
type UpdateStatusRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

// UpdateTaskRequest edits task fields in place. Absent fields keep their
// current values; an empty deadline clears it.
type UpdateTaskRequest struct {
	Text     *string `json:"text"`
	Priority *string `json:"priority"`
	Deadline *string `json:"deadline"`
}

func (req UpdateTaskRequest) toUpdate() entities.TaskUpdate {
	update := entities.TaskUpdate{Text: req.Text, Deadline: req.Deadline}
	if req.Priority != nil {
		p := priorityFrom(*req.Priority)
		update.Priority = &p
	}
	return update
}

// TaskHandler handles checklist requests
type TaskHandler struct {
	taskService *services.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// ListTasks returns tasks, optionally sorted
func (h *TaskHandler) ListTasks(c echo.Context) error {
	if c.QueryParam("sort_by") != "" {
		key, descending, err := sortParams(c)
		if err != nil {
			return err
		}
		tasks, err := h.taskService.GetSortedTasks(key, descending)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, ListResponse{Items: tasks, Count: len(tasks)})
	}

	tasks, err := h.taskService.GetTasks()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ListResponse{Items: tasks, Count: len(tasks)})
}

// CreateTask adds a checklist task
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.AddTask(req.Text, priorityFrom(req.Priority), req.Deadline)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

// UpdateTaskStatus toggles completion of the task at :index
func (h *TaskHandler) UpdateTaskStatus(c echo.Context) error {
	index, err := indexParam(c)
	if err != nil {
		return err
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.UpdateTaskStatus(index, *req.Completed)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateTask edits the fields of the task at :index
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	index, err := indexParam(c)
	if err != nil {
		return err
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	task, err := h.taskService.UpdateTask(index, req.toUpdate())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask removes the task at :index
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	index, err := indexParam(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.DeleteTask(index)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}
