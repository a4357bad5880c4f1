package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/daybot/core/internal/application/services"
	"github.com/daybot/core/internal/infrastructure/logger"
)

// CreateMoodRequest records a measurement on the 1-5 scale.
type CreateMoodRequest struct {
	Value   *int   `json:"value" validate:"required"`
	Comment string `json:"comment"`
}

// MoodHandler handles mood tracking requests
type MoodHandler struct {
	moodService *services.MoodService
	logger      *logger.Logger
}

// NewMoodHandler creates a new mood handler
func NewMoodHandler(moodService *services.MoodService, logger *logger.Logger) *MoodHandler {
	return &MoodHandler{
		moodService: moodService,
		logger:      logger,
	}
}

// CreateMood records a mood measurement
func (h *MoodHandler) CreateMood(c echo.Context) error {
	var req CreateMoodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.moodService.AddMood(*req.Value, req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

// ListRecentMoods returns the trailing window of measurements. The
// window defaults to a week and is overridden with ?days=N.
func (h *MoodHandler) ListRecentMoods(c echo.Context) error {
	days, err := daysParam(c)
	if err != nil {
		return err
	}

	moods, err := h.moodService.GetRecent(days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ListResponse{Items: moods, Count: len(moods)})
}

// MoodSummary aggregates the trailing window into counts and an average
func (h *MoodHandler) MoodSummary(c echo.Context) error {
	days, err := daysParam(c)
	if err != nil {
		return err
	}

	summary, err := h.moodService.Summarize(days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

func daysParam(c echo.Context) (int, error) {
	raw := c.QueryParam("days")
	if raw == "" {
		return 7, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "days must be an integer")
	}
	return days, nil
}
