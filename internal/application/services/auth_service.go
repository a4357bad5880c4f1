package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/daybot/core/internal/infrastructure/config"
	"github.com/daybot/core/internal/infrastructure/logger"
	"github.com/daybot/core/internal/ports"
)

// Auth errors surfaced to the transport layer.
var (
	ErrAuthNotConfigured = errors.New("owner token is not configured")
	ErrInvalidOwnerToken = errors.New("invalid owner token")
	ErrInvalidToken      = errors.New("invalid token")
)

// AuthService exchanges the configured owner token for short-lived
// access tokens. The assistant serves a single owner; there is no user
// registry.
type AuthService struct {
	jwtCfg   config.JWTConfig
	security config.SecurityConfig
	logger   *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(jwtCfg config.JWTConfig, security config.SecurityConfig, logger *logger.Logger) *AuthService {
	return &AuthService{
		jwtCfg:   jwtCfg,
		security: security,
		logger:   logger,
	}
}

// IssueToken compares the presented owner token against the configured
// bcrypt hash and returns a signed JWT on success.
func (s *AuthService) IssueToken(ownerToken string) (string, error) {
	if s.security.OwnerTokenHash == "" || s.jwtCfg.Secret == "" {
		return "", ErrAuthNotConfigured
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.security.OwnerTokenHash), []byte(ownerToken)); err != nil {
		s.logger.Warn("Owner token rejected")
		return "", ErrInvalidOwnerToken
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "owner",
		Issuer:    s.jwtCfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtCfg.ExpiresIn)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info("Access token issued", "expires_in", s.jwtCfg.ExpiresIn)

	return signed, nil
}

// ValidateToken parses and verifies a bearer token.
func (s *AuthService) ValidateToken(tokenString string) (*ports.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtCfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &ports.Claims{Subject: claims.Subject}, nil
}
