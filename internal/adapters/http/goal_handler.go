package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daybot/core/internal/application/services"
	"github.com/daybot/core/internal/infrastructure/logger"
)

// CreateGoalRequest is the payload for adding a goal.
type CreateGoalRequest struct {
	Text     string `json:"text" validate:"required"`
	Priority string `json:"priority" validate:"required"`
	Deadline string `json:"deadline"`
}

// UpdateProgressRequest sets a goal's manual progress percentage.
type UpdateProgressRequest struct {
	Progress *int `json:"progress" validate:"required"`
}

// AddSubtaskRequest appends a step to a goal.
type AddSubtaskRequest struct {
	Text string `json:"text" validate:"required"`
}

// GoalHandler handles goal requests
type GoalHandler struct {
	goalService *services.GoalService
	logger      *logger.Logger
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(goalService *services.GoalService, logger *logger.Logger) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		logger:      logger,
	}
}

// ListGoals returns goals, optionally sorted
func (h *GoalHandler) ListGoals(c echo.Context) error {
	if c.QueryParam("sort_by") != "" {
		key, descending, err := sortParams(c)
		if err != nil {
			return err
		}
		goals, err := h.goalService.GetSortedGoals(key, descending)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, ListResponse{Items: goals, Count: len(goals)})
	}

	goals, err := h.goalService.GetGoals()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ListResponse{Items: goals, Count: len(goals)})
}

// CreateGoal adds a goal
func (h *GoalHandler) CreateGoal(c echo.Context) error {
	var req CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	goal, err := h.goalService.AddGoal(req.Text, priorityFrom(req.Priority), req.Deadline)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, goal)
}

// UpdateGoalStatus toggles completion of the goal at :index
func (h *GoalHandler) UpdateGoalStatus(c echo.Context) error {
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

	goal, err := h.goalService.UpdateGoalStatus(index, *req.Completed)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, goal)
}

// UpdateGoal edits the task fields of the goal at :index
func (h *GoalHandler) UpdateGoal(c echo.Context) error {
	index, err := indexParam(c)
	if err != nil {
		return err
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	goal, err := h.goalService.UpdateGoal(index, req.toUpdate())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, goal)
}

// UpdateGoalProgress sets the progress percentage of the goal at :index
func (h *GoalHandler) UpdateGoalProgress(c echo.Context) error {
	index, err := indexParam(c)
	if err != nil {
		return err
	}

	var req UpdateProgressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	goal, err := h.goalService.UpdateGoalProgress(index, *req.Progress)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, goal)
}

// AddSubtask appends a subtask to the goal at :index
func (h *GoalHandler) AddSubtask(c echo.Context) error {
	index, err := indexParam(c)
	if err != nil {
		return err
	}

	var req AddSubtaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	goal, err := h.goalService.AddSubtask(index, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, goal)
}

// UpdateSubtaskStatus toggles the subtask at :subindex of the goal at :index
func (h *GoalHandler) UpdateSubtaskStatus(c echo.Context) error {
	index, err := indexParam(c)
	if err != nil {
		return err
	}
	subIndex, err := intParam(c, "subindex")
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

	goal, err := h.goalService.UpdateSubtaskStatus(index, subIndex, *req.Completed)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, goal)
}

// DeleteGoal removes the goal at :index
func (h *GoalHandler) DeleteGoal(c echo.Context) error {
	index, err := indexParam(c)
	if err != nil {
		return err
	}

	goal, err := h.goalService.DeleteGoal(index)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, goal)
}
