package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
	"golang.org/x/crypto/bcrypt"

	"github.com/daybot/core/internal/infrastructure/config"
	"github.com/daybot/core/internal/infrastructure/logger"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("owner-secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		App:        config.AppConfig{Name: "Daybot", Version: "test", Environment: "development"},
		Server:     config.ServerConfig{Port: 8080, Host: "127.0.0.1"},
		Storage:    config.StorageConfig{DataDir: t.TempDir(), ChecklistFile: "checklist.json", GoalsFile: "goals.json", ScheduleFile: "schedule.json", MoodFile: "mood.json"},
		Validation: config.ValidationConfig{MinTextLength: 1, MaxTextLength: 500},
		JWT:        config.JWTConfig{Secret: "test-signing-key", ExpiresIn: time.Hour, Issuer: "daybot-test"},
		Security:   config.SecurityConfig{OwnerTokenHash: string(hash), CORSAllowedOrigins: "*", RateLimitRequests: 100, RateLimitWindow: time.Minute},
	}

	srv, err := New(cfg, logger.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	return srv
}

func do(srv *Server, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func TestServer_HealthAndReady(t *testing.T) {
	is := is.New(t)
	srv := newTestServer(t)

	is.Equal(do(srv, http.MethodGet, "/health", "", "").Code, http.StatusOK)
	is.Equal(do(srv, http.MethodGet, "/ready", "", "").Code, http.StatusOK)
}

func TestServer_TasksRequireAuth(t *testing.T) {
	is := is.New(t)
	srv := newTestServer(t)

	is.Equal(do(srv, http.MethodGet, "/api/v1/tasks", "", "").Code, http.StatusUnauthorized)
	is.Equal(do(srv, http.MethodGet, "/api/v1/tasks", "not-a-jwt", "").Code, http.StatusUnauthorized)
}

func TestServer_TokenFlow(t *testing.T) {
	is := is.New(t)
	srv := newTestServer(t)

	rec := do(srv, http.MethodPost, "/api/v1/auth/token", "", `{"owner_token":"owner-secret"}`)
	is.Equal(rec.Code, http.StatusOK)

	var tokenResp struct {
		Token string `json:"token"`
	}
	is.NoErr(json.Unmarshal(rec.Body.Bytes(), &tokenResp))
	is.True(tokenResp.Token != "")

	rec = do(srv, http.MethodPost, "/api/v1/tasks", tokenResp.Token, `{"text":"Buy milk","priority":"high"}`)
	is.Equal(rec.Code, http.StatusCreated)

	rec = do(srv, http.MethodGet, "/api/v1/tasks", tokenResp.Token, "")
	is.Equal(rec.Code, http.StatusOK)

	var list struct {
		Count int `json:"count"`
	}
	is.NoErr(json.Unmarshal(rec.Body.Bytes(), &list))
	is.Equal(list.Count, 1)
}

func TestServer_WrongOwnerTokenRejected(t *testing.T) {
	is := is.New(t)
	srv := newTestServer(t)

	rec := do(srv, http.MethodPost, "/api/v1/auth/token", "", `{"owner_token":"guessing"}`)
	is.Equal(rec.Code, http.StatusUnauthorized)
}

func TestServer_DomainValidationMapsToBadRequest(t *testing.T) {
	is := is.New(t)
	srv := newTestServer(t)

	rec := do(srv, http.MethodPost, "/api/v1/auth/token", "", `{"owner_token":"owner-secret"}`)
	is.Equal(rec.Code, http.StatusOK)
	var tokenResp struct {
		Token string `json:"token"`
	}
	is.NoErr(json.Unmarshal(rec.Body.Bytes(), &tokenResp))

	rec = do(srv, http.MethodPost, "/api/v1/tasks", tokenResp.Token, `{"text":"Buy milk","priority":"urgent"}`)
	is.Equal(rec.Code, http.StatusBadRequest)
}
