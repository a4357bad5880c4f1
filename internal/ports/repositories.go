package ports

import (
	"github.com/daybot/core/internal/domain/entities"
)

// Repositories own read/write access to one entity kind's backing file.
// All operations are synchronous whole-file read-modify-write cycles;
// indices address positions in the current on-disk sequence and are only
// valid within a single request-response cycle.

// TaskRepository defines the interface for checklist persistence.
type TaskRepository interface {
	GetTasks() ([]entities.Task, error)
	AddTask(text string, priority entities.Priority, deadline string) (entities.Task, error)
	UpdateTaskStatus(index int, completed bool) (entities.Task, error)
	UpdateTask(index int, update entities.TaskUpdate) (entities.Task, error)
	DeleteTask(index int) (entities.Task, error)
	GetSortedTasks(key entities.SortKey, descending bool) ([]entities.Task, error)
}

// GoalRepository defines the interface for goal persistence.
type GoalRepository interface {
	GetGoals() ([]entities.Goal, error)
	AddGoal(text string, priority entities.Priority, deadline string) (entities.Goal, error)
	UpdateGoalStatus(index int, completed bool) (entities.Goal, error)
	UpdateGoal(index int, update entities.TaskUpdate) (entities.Goal, error)
	UpdateGoalProgress(index int, progress int) (entities.Goal, error)
	AddSubtask(index int, text string) (entities.Goal, error)
	UpdateSubtaskStatus(index, subIndex int, completed bool) (entities.Goal, error)
	DeleteGoal(index int) (entities.Goal, error)
	GetSortedGoals(key entities.SortKey, descending bool) ([]entities.Goal, error)
}

// ScheduleRepository defines the interface for daily schedule persistence.
// The persisted collection stays sorted by time after every mutation that
// adds or edits a time.
type ScheduleRepository interface {
	GetSchedule() ([]entities.ScheduleEntry, error)
	AddEntry(timeOfDay, text string) (entities.ScheduleEntry, error)
	UpdateEntryTime(index int, timeOfDay string) (entities.ScheduleEntry, error)
	UpdateEntryText(index int, text string) (entities.ScheduleEntry, error)
	DeleteEntry(index int) (entities.ScheduleEntry, error)
	GetSortedSchedule() ([]entities.ScheduleEntry, error)
}

// MoodRepository defines the interface for mood history persistence.
type MoodRepository interface {
	GetMoods() ([]entities.MoodEntry, error)
	AddMood(value int, comment string) (entities.MoodEntry, error)
	GetRecent(days int) ([]entities.MoodEntry, error)
}
