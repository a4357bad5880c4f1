package services

import (
	"fmt"

	"github.com/daybot/core/internal/domain/entities"
	"github.com/daybot/core/internal/infrastructure/logger"
	"github.com/daybot/core/internal/ports"
)

// TaskService handles checklist operations
type TaskService struct {
	taskRepo ports.TaskRepository
	logger   *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

// AddTask creates a new checklist task
func (s *TaskService) AddTask(text string, priority entities.Priority, deadline string) (entities.Task, error) {
	task, err := s.taskRepo.AddTask(text, priority, deadline)
	if err != nil {
		return entities.Task{}, fmt.Errorf("failed to add task: %w", err)
	}

	s.logger.Info("Task added", "text", task.Text, "priority", task.Priority)

	return task, nil
}

// GetTasks returns all tasks in file order
func (s *TaskService) GetTasks() ([]entities.Task, error) {
	tasks, err := s.taskRepo.GetTasks()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// GetSortedTasks returns tasks ordered by the given key
func (s *TaskService) GetSortedTasks(key entities.SortKey, descending bool) ([]entities.Task, error) {
	tasks, err := s.taskRepo.GetSortedTasks(key, descending)
	if err != nil {
		return nil, fmt.Errorf("failed to list sorted tasks: %w", err)
	}

	return tasks, nil
}

// UpdateTaskStatus toggles a task's completion flag
func (s *TaskService) UpdateTaskStatus(index int, completed bool) (entities.Task, error) {
	task, err := s.taskRepo.UpdateTaskStatus(index, completed)
	if err != nil {
		return entities.Task{}, fmt.Errorf("failed to update task status: %w", err)
	}

	s.logger.Info("Task status updated", "index", index, "completed", completed)

	return task, nil
}

// UpdateTask edits the set fields of a task
func (s *TaskService) UpdateTask(index int, update entities.TaskUpdate) (entities.Task, error) {
	task, err := s.taskRepo.UpdateTask(index, update)
	if err != nil {
		return entities.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info("Task updated", "index", index)

	return task, nil
}

// DeleteTask removes a task by position
func (s *TaskService) DeleteTask(index int) (entities.Task, error) {
	task, err := s.taskRepo.DeleteTask(index)
	if err != nil {
		return entities.Task{}, fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info("Task deleted", "index", index, "text", task.Text)

	return task, nil
}
