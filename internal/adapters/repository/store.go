package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/daybot/core/internal/domain/entities"
)

// store is the shared JSON-array file store every repository builds on.
// A file holds one UTF-8 encoded JSON array of flat records; every read
// loads the whole file and every write rewrites it from fresh in-memory
// content, so a failed save leaves the previous content intact.
//
// There is no locking: the intended caller is a single synchronous
// request-response loop. Two concurrent writers would race on the
// read-modify-write cycle and the second save would win.
type store[T any] struct {
	path  string
	rules entities.ValidationRules
}

// newStore ensures the parent directory and the backing file exist,
// seeding an empty array if the file is new.
func newStore[T any](path string, rules entities.ValidationRules) (*store[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, entities.NewStorageError("init", path, err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return nil, entities.NewStorageError("init", path, err)
		}
	} else if err != nil {
		return nil, entities.NewStorageError("init", path, err)
	}
	return &store[T]{path: path, rules: rules}, nil
}

// load reads the full backing file into an ordered record slice.
func (s *store[T]) load() ([]T, error) {
	bs, err := os.ReadFile(s.path)
	if err != nil {
		return nil, entities.NewStorageError("read", s.path, err)
	}
	var items []T
	if err := json.Unmarshal(bs, &items); err != nil {
		return nil, entities.NewStorageError("parse", s.path, err)
	}
	return items, nil
}

// save rewrites the backing file with the given records. Content is
// marshaled fully in memory first so no partial JSON is ever flushed.
func (s *store[T]) save(items []T) error {
	if items == nil {
		items = []T{}
	}
	bs, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return entities.NewStorageError("encode", s.path, err)
	}
	if err := os.WriteFile(s.path, bs, 0o644); err != nil {
		return entities.NewStorageError("write", s.path, err)
	}
	return nil
}

// validateText checks the shared text rule: length within the configured
// bounds after trimming.
func (s *store[T]) validateText(text string) error {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < s.rules.MinTextLength {
		return entities.NewValidationError("text is too short")
	}
	if len([]rune(trimmed)) > s.rules.MaxTextLength {
		return entities.NewValidationError("text must not exceed %d characters", s.rules.MaxTextLength)
	}
	return nil
}

// validatePriority checks membership in the allowed priority set.
func (s *store[T]) validatePriority(priority entities.Priority) error {
	for _, allowed := range s.rules.AllowedPriorities {
		if priority == allowed {
			return nil
		}
	}
	labels := make([]string, len(s.rules.AllowedPriorities))
	for i, p := range s.rules.AllowedPriorities {
		labels[i] = string(p)
	}
	return entities.NewValidationError("invalid priority, allowed: %s", strings.Join(labels, ", "))
}

// validateDeadline checks an optional YYYY-MM-DD date string.
func (s *store[T]) validateDeadline(deadline string) error {
	if deadline == "" {
		return nil
	}
	if _, err := time.Parse(entities.DeadlineLayout, deadline); err != nil {
		return entities.NewValidationError("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

// validateUpdate runs the shared field validators over a partial edit.
func (s *store[T]) validateUpdate(update entities.TaskUpdate) error {
	if update.Text != nil {
		if err := s.validateText(*update.Text); err != nil {
			return err
		}
	}
	if update.Priority != nil {
		if err := s.validatePriority(*update.Priority); err != nil {
			return err
		}
	}
	if update.Deadline != nil {
		if err := s.validateDeadline(*update.Deadline); err != nil {
			return err
		}
	}
	return nil
}

// applyUpdate copies the set fields of a partial edit onto the record.
func applyUpdate(task *entities.Task, update entities.TaskUpdate) {
	if update.Text != nil {
		task.Text = trimText(*update.Text)
	}
	if update.Priority != nil {
		task.Priority = *update.Priority
	}
	if update.Deadline != nil {
		task.Deadline = *update.Deadline
	}
}

// checkIndex gates index-addressed mutations before anything is touched,
// so callers get a domain error rather than an out-of-range fault.
func (s *store[T]) checkIndex(index, length int, what string) error {
	if index < 0 || index >= length {
		return entities.NewValidationError("invalid %s index", what)
	}
	return nil
}

// now stamps creation and completion times in the stored layout.
func now() string {
	return time.Now().Format(entities.TimestampLayout)
}

// trimText normalizes record text the same way validation measures it.
func trimText(text string) string {
	return strings.TrimSpace(text)
}
