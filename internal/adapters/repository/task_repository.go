package repository

import (
	"github.com/daybot/core/internal/domain/entities"
	"github.com/daybot/core/internal/ports"
)

// TaskRepositoryImpl persists the checklist as a JSON array file.
type TaskRepositoryImpl struct {
	*store[entities.Task]
}

// NewTaskRepository creates a task repository backed by the given file.
func NewTaskRepository(path string, rules entities.ValidationRules) (ports.TaskRepository, error) {
	s, err := newStore[entities.Task](path, rules)
	if err != nil {
		return nil, err
	}
	return &TaskRepositoryImpl{store: s}, nil
}

// GetTasks returns all tasks in file order.
func (r *TaskRepositoryImpl) GetTasks() ([]entities.Task, error) {
	return r.load()
}

// AddTask validates the fields, stamps the creation time and appends the
// task. Validation runs fully before anything is written.
func (r *TaskRepositoryImpl) AddTask(text string, priority entities.Priority, deadline string) (entities.Task, error) {
	if err := r.validateText(text); err != nil {
		return entities.Task{}, err
	}
	if err := r.validatePriority(priority); err != nil {
		return entities.Task{}, err
	}
	if err := r.validateDeadline(deadline); err != nil {
		return entities.Task{}, err
	}

	tasks, err := r.load()
	if err != nil {
		return entities.Task{}, err
	}

	task := entities.Task{
		Text:      trimText(text),
		Priority:  priority,
		Deadline:  deadline,
		Completed: false,
		CreatedAt: now(),
	}
	tasks = append(tasks, task)
	if err := r.save(tasks); err != nil {
		return entities.Task{}, err
	}
	return task, nil
}

// UpdateTaskStatus toggles completion. Completing stamps completed_at;
// un-completing removes the field entirely.
func (r *TaskRepositoryImpl) UpdateTaskStatus(index int, completed bool) (entities.Task, error) {
	tasks, err := r.load()
	if err != nil {
		return entities.Task{}, err
	}
	if err := r.checkIndex(index, len(tasks), "task"); err != nil {
		return entities.Task{}, err
	}

	tasks[index].Completed = completed
	if completed {
		tasks[index].CompletedAt = now()
	} else {
		tasks[index].CompletedAt = ""
	}

	if err := r.save(tasks); err != nil {
		return entities.Task{}, err
	}
	return tasks[index], nil
}

// UpdateTask edits the set fields of the task at the given position.
// Validation runs fully before anything is written.
func (r *TaskRepositoryImpl) UpdateTask(index int, update entities.TaskUpdate) (entities.Task, error) {
	if err := r.validateUpdate(update); err != nil {
		return entities.Task{}, err
	}

	tasks, err := r.load()
	if err != nil {
		return entities.Task{}, err
	}
	if err := r.checkIndex(index, len(tasks), "task"); err != nil {
		return entities.Task{}, err
	}

	applyUpdate(&tasks[index], update)
	if err := r.save(tasks); err != nil {
		return entities.Task{}, err
	}
	return tasks[index], nil
}

// DeleteTask removes the task at the given position and returns it.
func (r *TaskRepositoryImpl) DeleteTask(index int) (entities.Task, error) {
	tasks, err := r.load()
	if err != nil {
		return entities.Task{}, err
	}
	if err := r.checkIndex(index, len(tasks), "task"); err != nil {
		return entities.Task{}, err
	}

	deleted := tasks[index]
	tasks = append(tasks[:index], tasks[index+1:]...)
	if err := r.save(tasks); err != nil {
		return entities.Task{}, err
	}
	return deleted, nil
}

// GetSortedTasks returns the tasks ordered by the given key.
func (r *TaskRepositoryImpl) GetSortedTasks(key entities.SortKey, descending bool) ([]entities.Task, error) {
	tasks, err := r.load()
	if err != nil {
		return nil, err
	}
	return sortItems(tasks, key, descending), nil
}
