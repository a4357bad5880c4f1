package services

import (
	"testing"
	"time"

	"github.com/matryer/is"
	"golang.org/x/crypto/bcrypt"

	"github.com/daybot/core/internal/infrastructure/config"
	"github.com/daybot/core/internal/infrastructure/logger"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("owner-secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return NewAuthService(
		config.JWTConfig{Secret: "test-signing-key", ExpiresIn: time.Hour, Issuer: "daybot-test"},
		config.SecurityConfig{OwnerTokenHash: string(hash)},
		logger.NewNop(),
	)
}

func TestAuthService_IssueAndValidate(t *testing.T) {
	is := is.New(t)
	svc := newTestAuthService(t)

	token, err := svc.IssueToken("owner-secret")
	is.NoErr(err)
	is.True(token != "")

	claims, err := svc.ValidateToken(token)
	is.NoErr(err)
	is.Equal(claims.Subject, "owner")
}

func TestAuthService_RejectsWrongOwnerToken(t *testing.T) {
	is := is.New(t)
	svc := newTestAuthService(t)

	_, err := svc.IssueToken("guessing")
	is.Equal(err, ErrInvalidOwnerToken)
}

func TestAuthService_RejectsTamperedToken(t *testing.T) {
	is := is.New(t)
	svc := newTestAuthService(t)

	token, err := svc.IssueToken("owner-secret")
	is.NoErr(err)

	_, err = svc.ValidateToken(token + "x")
	is.Equal(err, ErrInvalidToken)
}

func TestAuthService_UnconfiguredRefusesToIssue(t *testing.T) {
	is := is.New(t)
	svc := NewAuthService(config.JWTConfig{}, config.SecurityConfig{}, logger.NewNop())

	_, err := svc.IssueToken("anything")
	is.Equal(err, ErrAuthNotConfigured)
}
