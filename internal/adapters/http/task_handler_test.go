package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/matryer/is"

	"github.com/daybot/core/internal/adapters/repository"
	"github.com/daybot/core/internal/application/services"
	"github.com/daybot/core/internal/domain/entities"
	"github.com/daybot/core/internal/infrastructure/logger"
)

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestTaskHandler(t *testing.T) (*echo.Echo, *TaskHandler) {
	t.Helper()

	repo, err := repository.NewTaskRepository(filepath.Join(t.TempDir(), "checklist.json"), entities.DefaultValidationRules())
	if err != nil {
		t.Fatal(err)
	}

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	service := services.NewTaskService(repo, logger.NewNop())
	return e, NewTaskHandler(service, logger.NewNop())
}

func createTask(t *testing.T, e *echo.Echo, h *TaskHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateTask(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestTaskHandler_CreateTask(t *testing.T) {
	is := is.New(t)
	e, h := newTestTaskHandler(t)

	rec := createTask(t, e, h, `{"text":"Buy milk","priority":"high"}`)
	is.Equal(rec.Code, http.StatusCreated)

	var task entities.Task
	is.NoErr(json.Unmarshal(rec.Body.Bytes(), &task))
	is.Equal(task.Text, "Buy milk")
	is.Equal(task.Priority, entities.PriorityHigh)
	is.True(task.CreatedAt != "")
}

func TestTaskHandler_CreateTaskAcceptsLegacyPriority(t *testing.T) {
	is := is.New(t)
	e, h := newTestTaskHandler(t)

	rec := createTask(t, e, h, `{"text":"Buy milk","priority":"высокий"}`)
	is.Equal(rec.Code, http.StatusCreated)

	var task entities.Task
	is.NoErr(json.Unmarshal(rec.Body.Bytes(), &task))
	is.Equal(task.Priority, entities.PriorityHigh)
}

func TestTaskHandler_CreateTaskRejectsMissingText(t *testing.T) {
	is := is.New(t)
	e, h := newTestTaskHandler(t)

	rec := createTask(t, e, h, `{"priority":"high"}`)
	is.Equal(rec.Code, http.StatusBadRequest)
}

func TestTaskHandler_UpdateTaskStatus(t *testing.T) {
	is := is.New(t)
	e, h := newTestTaskHandler(t)

	rec := createTask(t, e, h, `{"text":"Buy milk","priority":"high"}`)
	is.Equal(rec.Code, http.StatusCreated)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/tasks/0/status", strings.NewReader(`{"completed":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("index")
	c.SetParamValues("0")

	is.NoErr(h.UpdateTaskStatus(c))
	is.Equal(rec.Code, http.StatusOK)

	var task entities.Task
	is.NoErr(json.Unmarshal(rec.Body.Bytes(), &task))
	is.True(task.Completed)
	is.True(task.CompletedAt != "")
}

func TestTaskHandler_ListTasksSorted(t *testing.T) {
	is := is.New(t)
	e, h := newTestTaskHandler(t)

	createTask(t, e, h, `{"text":"Low","priority":"low"}`)
	createTask(t, e, h, `{"text":"High","priority":"high"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks?sort_by=priority&descending=true", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	is.NoErr(h.ListTasks(c))
	is.Equal(rec.Code, http.StatusOK)

	var resp struct {
		Items []entities.Task `json:"items"`
		Count int             `json:"count"`
	}
	is.NoErr(json.Unmarshal(rec.Body.Bytes(), &resp))
	is.Equal(resp.Count, 2)
	is.Equal(resp.Items[0].Text, "High")
}

func TestTaskHandler_IndexMustBeNumeric(t *testing.T) {
	is := is.New(t)
	e, h := newTestTaskHandler(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/tasks/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("index")
	c.SetParamValues("abc")

	err := h.DeleteTask(c)
	he, ok := err.(*echo.HTTPError)
	is.True(ok)
	is.Equal(he.Code, http.StatusBadRequest)
}
