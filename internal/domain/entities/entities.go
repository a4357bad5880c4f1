package entities

import (
	"fmt"
)

// Timestamp layouts used across the stored records. Created/completed
// stamps use the zero-padded wall-clock layout so lexicographic ordering
// matches chronological ordering; mood entries use RFC 3339.
const (
	TimestampLayout = "2006-01-02 15:04:05"
	DeadlineLayout  = "2006-01-02"
)

// ValidationError reports caller-supplied data that violates a storage
// rule. It is always raised before any mutation is applied.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NewValidationError creates a validation error with a formatted reason.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// StorageError reports a failure to read or write a backing file.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a storage error for the given operation and path.
func NewStorageError(op, path string, err error) *StorageError {
	return &StorageError{Op: op, Path: path, Err: err}
}

// Priority is the canonical priority vocabulary. Legacy localized labels
// are mapped to it at the boundaries (HTTP binding, data migration),
// never inside the storage layer.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// legacy labels written by earlier revisions of the data files
var legacyPriorities = map[string]Priority{
	"низкий":  PriorityLow,
	"средний": PriorityMedium,
	"высокий": PriorityHigh,
}

// ParsePriority maps a label to the canonical priority. It accepts the
// canonical identifiers and the legacy localized labels identically.
func ParsePriority(label string) (Priority, bool) {
	switch Priority(label) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(label), true
	}
	if p, ok := legacyPriorities[label]; ok {
		return p, true
	}
	return "", false
}

// Rank returns the sort rank of a priority. Unknown labels rank below
// every known priority.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// SortKey selects the ordering criterion for task-like records.
type SortKey string

const (
	SortByPriority SortKey = "priority"
	SortByStatus   SortKey = "status"
	SortByDate     SortKey = "date"
	SortByDeadline SortKey = "deadline"
)

// ParseSortKey validates a sort key label.
func ParseSortKey(label string) (SortKey, bool) {
	switch SortKey(label) {
	case SortByPriority, SortByStatus, SortByDate, SortByDeadline:
		return SortKey(label), true
	}
	return "", false
}

// ValidationRules holds the static write-gating policy. It is supplied
// at repository construction; the storage layer never reads it from the
// environment.
type ValidationRules struct {
	MinTextLength     int
	MaxTextLength     int
	AllowedPriorities []Priority
}

// DefaultValidationRules returns the rules used by every repository
// unless configuration overrides them.
func DefaultValidationRules() ValidationRules {
	return ValidationRules{
		MinTextLength:     1,
		MaxTextLength:     500,
		AllowedPriorities: []Priority{PriorityLow, PriorityMedium, PriorityHigh},
	}
}

// TaskUpdate carries an in-place edit of a task-like record. Nil fields
// keep the current values; a pointer to an empty Deadline clears it.
type TaskUpdate struct {
	Text     *string
	Priority *Priority
	Deadline *string
}

// Task represents one checklist item. CompletedAt carries omitempty so
// toggling a task back to incomplete removes the field from the stored
// record instead of nulling it.
type Task struct {
	Text        string   `json:"text"`
	Priority    Priority `json:"priority"`
	Deadline    string   `json:"deadline,omitempty"`
	Completed   bool     `json:"completed"`
	CompletedAt string   `json:"completed_at,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

// SortFields exposes the fields the shared multi-key sort operates on.
type SortFields struct {
	Priority    Priority
	Completed   bool
	CompletedAt string
	CreatedAt   string
	Deadline    string
}

// SortFields returns the task's sortable fields.
func (t Task) SortFields() SortFields {
	return SortFields{
		Priority:    t.Priority,
		Completed:   t.Completed,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		Deadline:    t.Deadline,
	}
}

// Subtask is one step towards a goal.
type Subtask struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Goal is a task with long-horizon bookkeeping: a manual progress
// percentage and an ordered list of subtasks.
type Goal struct {
	Task
	Progress int       `json:"progress"`
	Subtasks []Subtask `json:"subtasks"`
}

// ScheduleEntry is one line of the daily schedule.
type ScheduleEntry struct {
	Time      string `json:"time"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// MoodEntry records a single mood measurement on a 1-5 scale.
type MoodEntry struct {
	Value     int    `json:"value"`
	Comment   string `json:"comment,omitempty"`
	Timestamp string `json:"timestamp"`
}
