package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daybot/core/internal/application/services"
	"github.com/daybot/core/internal/infrastructure/logger"
)

// CreateEntryRequest is the payload for adding a schedule line.
type CreateEntryRequest struct {
	Time string `json:"time" validate:"required"`
	Text string `json:"text" validate:"required"`
}

// UpdateEntryTimeRequest moves an entry to a new time of day.
type UpdateEntryTimeRequest struct {
	Time string `json:"time" validate:"required"`
}

// UpdateEntryTextRequest rewrites an entry's text.
type UpdateEntryTextRequest struct {
	Text string `json:"text" validate:"required"`
}

// ScheduleHandler handles daily schedule requests
type ScheduleHandler struct {
	scheduleService *services.ScheduleService
	logger          *logger.Logger
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(scheduleService *services.ScheduleService, logger *logger.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		logger:          logger,
	}
}

// ListSchedule returns entries ordered by time of day
func (h *ScheduleHandler) ListSchedule(c echo.Context) error {
	entries, err := h.scheduleService.GetSortedSchedule()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ListResponse{Items: entries, Count: len(entries)})
}

// CreateEntry adds a schedule line
func (h *ScheduleHandler) CreateEntry(c echo.Context) error {
	var req CreateEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.scheduleService.AddEntry(req.Time, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

// UpdateEntryTime moves the entry at :index to a new time of day
func (h *ScheduleHandler) UpdateEntryTime(c echo.Context) error {
	index, err := indexParam(c)
	if err != nil {
		return err
	}

	var req UpdateEntryTimeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.scheduleService.UpdateEntryTime(index, req.Time)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

// UpdateEntryText rewrites the text of the entry at :index
func (h *ScheduleHandler) UpdateEntryText(c echo.Context) error {
	index, err := indexParam(c)
	if err != nil {
		return err
	}

	var req UpdateEntryTextRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.scheduleService.UpdateEntryText(index, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

// DeleteEntry removes the entry at :index
func (h *ScheduleHandler) DeleteEntry(c echo.Context) error {
	index, err := indexParam(c)
	if err != nil {
		return err
	}

	entry, err := h.scheduleService.DeleteEntry(index)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}
