package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daybot/core/internal/application/services"
	"github.com/daybot/core/internal/infrastructure/logger"
)

// ReportResponse wraps a rendered text digest.
type ReportResponse struct {
	Report string `json:"report"`
}

// ReportHandler serves the rendered digests and the daily quote
type ReportHandler struct {
	reportService *services.ReportService
	quoteService  *services.QuoteService
	logger        *logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService, quoteService *services.QuoteService, logger *logger.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		quoteService:  quoteService,
		logger:        logger,
	}
}

// DailyChecklist returns the open-tasks digest
func (h *ReportHandler) DailyChecklist(c echo.Context) error {
	report, err := h.reportService.DailyChecklistReport()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ReportResponse{Report: report})
}

// ActiveGoals returns the in-flight goals digest
func (h *ReportHandler) ActiveGoals(c echo.Context) error {
	report, err := h.reportService.ActiveGoalsReport()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ReportResponse{Report: report})
}

// Progress returns the completion-percentage digest
func (h *ReportHandler) Progress(c echo.Context) error {
	report, err := h.reportService.ProgressSummary()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ReportResponse{Report: report})
}

// Weekly returns the trailing-week productivity digest
func (h *ReportHandler) Weekly(c echo.Context) error {
	report, err := h.reportService.WeeklyProductivityReport()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ReportResponse{Report: report})
}

// Quote returns a motivational line with the morning greeting
func (h *ReportHandler) Quote(c echo.Context) error {
	return c.JSON(http.StatusOK, ReportResponse{Report: h.quoteService.Random()})
}
