package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/daybot/core/internal/domain/entities"
)

// MessageResponse is the generic confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// ListResponse wraps a record list with its length so clients can
// re-index safely within the same round trip.
type ListResponse struct {
	Items interface{} `json:"items"`
	Count int         `json:"count"`
}

// indexParam reads the :index path parameter. Bounds are checked by the
// repositories; this only rejects non-numeric input.
func indexParam(c echo.Context) (int, error) {
	return intParam(c, "index")
}

func intParam(c echo.Context, name string) (int, error) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return value, nil
}

// priorityFrom maps a request label onto the canonical vocabulary.
// Unknown labels pass through unchanged so the storage layer rejects
// them with its own validation message.
func priorityFrom(label string) entities.Priority {
	if p, ok := entities.ParsePriority(label); ok {
		return p
	}
	return entities.Priority(label)
}

// sortParams reads the sort_by and descending query parameters.
func sortParams(c echo.Context) (entities.SortKey, bool, error) {
	label := c.QueryParam("sort_by")
	if label == "" {
		label = string(entities.SortByPriority)
	}
	key, ok := entities.ParseSortKey(label)
	if !ok {
		return "", false, echo.NewHTTPError(http.StatusBadRequest, "unknown sort key")
	}
	return key, c.QueryParam("descending") == "true", nil
}
