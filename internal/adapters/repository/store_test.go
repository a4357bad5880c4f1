package repository

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/daybot/core/internal/domain/entities"
)

func newTestStore(t *testing.T) *store[entities.Task] {
	t.Helper()
	s, err := newStore[entities.Task](filepath.Join(t.TempDir(), "data", "checklist.json"), entities.DefaultValidationRules())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestStore_SeedsEmptyFile(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "nested", "dir", "tasks.json")
	s, err := newStore[entities.Task](path, entities.DefaultValidationRules())
	is.NoErr(err)

	bs, err := os.ReadFile(path)
	is.NoErr(err)
	is.Equal(string(bs), "[]")

	items, err := s.load()
	is.NoErr(err)
	is.Equal(len(items), 0)
}

func TestStore_RoundTrip(t *testing.T) {
	is := is.New(t)
	s := newTestStore(t)

	tasks := []entities.Task{
		{Text: "first", Priority: entities.PriorityHigh, CreatedAt: "2024-03-17 09:00:00"},
		{Text: "second", Priority: entities.PriorityLow, Deadline: "2024-04-01", CreatedAt: "2024-03-17 10:00:00"},
		{Text: "third", Priority: entities.PriorityMedium, Completed: true, CompletedAt: "2024-03-17 11:00:00", CreatedAt: "2024-03-17 10:30:00"},
	}
	is.NoErr(s.save(tasks))

	loaded, err := s.load()
	is.NoErr(err)
	is.Equal(loaded, tasks)
}

func TestStore_LoadMalformedFile(t *testing.T) {
	is := is.New(t)
	s := newTestStore(t)

	is.NoErr(os.WriteFile(s.path, []byte("{not json"), 0o644))

	_, err := s.load()
	var storageErr *entities.StorageError
	is.True(errors.As(err, &storageErr))
}

func TestStore_ValidateText(t *testing.T) {
	s := newTestStore(t)

	cases := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"over limit", strings.Repeat("x", 501), true},
		{"at limit", strings.Repeat("x", 500), false},
		{"ok", "ok", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			err := s.validateText(tc.text)
			if tc.wantErr {
				var validationErr *entities.ValidationError
				is.True(errors.As(err, &validationErr))
			} else {
				is.NoErr(err)
			}
		})
	}
}

func TestStore_ValidatePriority(t *testing.T) {
	is := is.New(t)
	s := newTestStore(t)

	for _, p := range []entities.Priority{entities.PriorityLow, entities.PriorityMedium, entities.PriorityHigh} {
		is.NoErr(s.validatePriority(p))
	}

	err := s.validatePriority("urgent")
	var validationErr *entities.ValidationError
	is.True(errors.As(err, &validationErr))
}

func TestStore_ValidateDeadline(t *testing.T) {
	is := is.New(t)
	s := newTestStore(t)

	is.NoErr(s.validateDeadline(""))
	is.NoErr(s.validateDeadline("2099-01-01"))

	var validationErr *entities.ValidationError
	is.True(errors.As(s.validateDeadline("01.01.2099"), &validationErr))
	is.True(errors.As(s.validateDeadline("2099-13-01"), &validationErr))
}
