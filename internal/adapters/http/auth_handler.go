package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daybot/core/internal/application/services"
	"github.com/daybot/core/internal/infrastructure/logger"
)

// TokenRequest exchanges the owner token for a session JWT.
type TokenRequest struct {
	OwnerToken string `json:"owner_token" validate:"required"`
}

// TokenResponse carries the issued session token.
type TokenResponse struct {
	Token string `json:"token"`
}

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService *services.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// IssueToken exchanges the configured owner token for a JWT
func (h *AuthHandler) IssueToken(c echo.Context) error {
	var req TokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.IssueToken(req.OwnerToken)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidOwnerToken):
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid owner token")
		case errors.Is(err, services.ErrAuthNotConfigured):
			return echo.NewHTTPError(http.StatusServiceUnavailable, "Authentication is not configured")
		}
		return err
	}

	h.logger.Info("Session token issued")

	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}
