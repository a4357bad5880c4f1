package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	httpHandlers "github.com/daybot/core/internal/adapters/http"
	"github.com/daybot/core/internal/adapters/notify"
	"github.com/daybot/core/internal/adapters/repository"
	"github.com/daybot/core/internal/application/services"
	"github.com/daybot/core/internal/domain/entities"
	"github.com/daybot/core/internal/infrastructure/config"
	"github.com/daybot/core/internal/infrastructure/logger"
	"github.com/daybot/core/internal/infrastructure/scheduler"
)

// Server represents the HTTP server
type Server struct {
	echo      *echo.Echo
	config    *config.Config
	logger    *logger.Logger
	scheduler *scheduler.Scheduler
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	rules := entities.DefaultValidationRules()
	rules.MinTextLength = cfg.Validation.MinTextLength
	rules.MaxTextLength = cfg.Validation.MaxTextLength

	// Initialize repositories
	taskRepo, err := repository.NewTaskRepository(cfg.Storage.ChecklistPath(), rules)
	if err != nil {
		return nil, fmt.Errorf("failed to open checklist storage: %w", err)
	}
	goalRepo, err := repository.NewGoalRepository(cfg.Storage.GoalsPath(), rules)
	if err != nil {
		return nil, fmt.Errorf("failed to open goals storage: %w", err)
	}
	scheduleRepo, err := repository.NewScheduleRepository(cfg.Storage.SchedulePath(), rules)
	if err != nil {
		return nil, fmt.Errorf("failed to open schedule storage: %w", err)
	}
	moodRepo, err := repository.NewMoodRepository(cfg.Storage.MoodPath(), rules)
	if err != nil {
		return nil, fmt.Errorf("failed to open mood storage: %w", err)
	}

	// Initialize services
	authService := services.NewAuthService(cfg.JWT, cfg.Security, appLogger)
	taskService := services.NewTaskService(taskRepo, appLogger)
	goalService := services.NewGoalService(goalRepo, appLogger)
	scheduleService := services.NewScheduleService(scheduleRepo, appLogger)
	moodService := services.NewMoodService(moodRepo, appLogger)
	reportService := services.NewReportService(taskRepo, goalRepo, moodRepo, appLogger)
	quoteService := services.NewQuoteService()

	// Initialize handlers
	authHandler := httpHandlers.NewAuthHandler(authService, appLogger)
	taskHandler := httpHandlers.NewTaskHandler(taskService, appLogger)
	goalHandler := httpHandlers.NewGoalHandler(goalService, appLogger)
	scheduleHandler := httpHandlers.NewScheduleHandler(scheduleService, appLogger)
	moodHandler := httpHandlers.NewMoodHandler(moodService, appLogger)
	reportHandler := httpHandlers.NewReportHandler(reportService, quoteService, appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes(authHandler, taskHandler, goalHandler, scheduleHandler, moodHandler, reportHandler, authService)

	// Setup metrics
	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	// Background digest jobs
	if cfg.Scheduler.Enabled {
		notifier, err := notify.New(cfg.Notifier, appLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to build notifier: %w", err)
		}
		sched, err := scheduler.New(cfg.Scheduler, reportService, quoteService, notifier, appLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to build scheduler: %w", err)
		}
		server.scheduler = sched
	}

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
				"user_agent", values.UserAgent,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	// Rate limiting middleware
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(s.config.Security.RateLimitRequests), Burst: s.config.Security.RateLimitRequests, ExpiresIn: s.config.Security.RateLimitWindow},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			id := ctx.RealIP()
			return id, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, map[string]string{"message": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, map[string]string{"message": "rate limit exceeded"})
		},
	}))

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
	}))

	// Request ID middleware
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: requestID,
	}))

	// Timeout middleware
	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(authHandler *httpHandlers.AuthHandler, taskHandler *httpHandlers.TaskHandler, goalHandler *httpHandlers.GoalHandler, scheduleHandler *httpHandlers.ScheduleHandler, moodHandler *httpHandlers.MoodHandler, reportHandler *httpHandlers.ReportHandler, authService *services.AuthService) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Auth routes (public)
	v1.POST("/auth/token", authHandler.IssueToken)

	auth := s.authMiddleware(authService)

	// Checklist routes
	taskGroup := v1.Group("/tasks", auth)
	taskGroup.GET("", taskHandler.ListTasks)
	taskGroup.POST("", taskHandler.CreateTask)
	taskGroup.PUT("/:index", taskHandler.UpdateTask)
	taskGroup.PUT("/:index/status", taskHandler.UpdateTaskStatus)
	taskGroup.DELETE("/:index", taskHandler.DeleteTask)

	// Goal routes
	goalGroup := v1.Group("/goals", auth)
	goalGroup.GET("", goalHandler.ListGoals)
	goalGroup.POST("", goalHandler.CreateGoal)
	goalGroup.PUT("/:index", goalHandler.UpdateGoal)
	goalGroup.PUT("/:index/status", goalHandler.UpdateGoalStatus)
	goalGroup.PUT("/:index/progress", goalHandler.UpdateGoalProgress)
	goalGroup.POST("/:index/subtasks", goalHandler.AddSubtask)
	goalGroup.PUT("/:index/subtasks/:subindex/status", goalHandler.UpdateSubtaskStatus)
	goalGroup.DELETE("/:index", goalHandler.DeleteGoal)

	// Schedule routes
	scheduleGroup := v1.Group("/schedule", auth)
	scheduleGroup.GET("", scheduleHandler.ListSchedule)
	scheduleGroup.POST("", scheduleHandler.CreateEntry)
	scheduleGroup.PUT("/:index/time", scheduleHandler.UpdateEntryTime)
	scheduleGroup.PUT("/:index/text", scheduleHandler.UpdateEntryText)
	scheduleGroup.DELETE("/:index", scheduleHandler.DeleteEntry)

	// Mood routes
	moodGroup := v1.Group("/mood", auth)
	moodGroup.GET("", moodHandler.ListRecentMoods)
	moodGroup.POST("", moodHandler.CreateMood)
	moodGroup.GET("/summary", moodHandler.MoodSummary)

	// Report routes
	reportGroup := v1.Group("/reports", auth)
	reportGroup.GET("/checklist", reportHandler.DailyChecklist)
	reportGroup.GET("/goals", reportHandler.ActiveGoals)
	reportGroup.GET("/progress", reportHandler.Progress)
	reportGroup.GET("/weekly", reportHandler.Weekly)
	reportGroup.GET("/quote", reportHandler.Quote)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(requestsTotal, requestDuration)

	// Custom metrics middleware
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	// Metrics endpoint
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) readinessCheck(c echo.Context) error {
	// The server is ready once the data directory is reachable
	if _, err := os.Stat(s.config.Storage.DataDir); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "storage_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server and the background digest jobs
func (s *Server) Start(address string) error {
	if s.scheduler != nil {
		s.scheduler.Start(context.Background())
	}
	s.logger.Info("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	return s.echo.Shutdown(ctx)
}

// customErrorHandler maps domain errors onto HTTP responses
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		var validationErr *entities.ValidationError
		var storageErr *entities.StorageError
		var validatorErrs validator.ValidationErrors

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			msg = he.Message
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else if errors.As(err, &validationErr) {
			code = http.StatusBadRequest
			msg = map[string]string{"message": validationErr.Reason}
		} else if errors.As(err, &storageErr) {
			code = http.StatusInternalServerError
			msg = map[string]string{"message": "storage failure"}
		} else if errors.As(err, &validatorErrs) {
			code = http.StatusBadRequest
			msg = map[string]string{"message": "validation failed", "details": validatorErrs.Error()}
		} else {
			msg = map[string]string{"message": http.StatusText(code)}
		}

		if code == http.StatusInternalServerError {
			logger.Error("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == echo.HEAD {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Error("Error sending response", "error", err)
			}
		}
	}
}
