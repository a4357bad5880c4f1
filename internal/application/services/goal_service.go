package services

import (
	"fmt"

	"github.com/daybot/core/internal/domain/entities"
	"github.com/daybot/core/internal/infrastructure/logger"
	"github.com/daybot/core/internal/ports"
)

// GoalService handles goal operations
type GoalService struct {
	goalRepo ports.GoalRepository
	logger   *logger.Logger
}

// NewGoalService creates a new goal service
func NewGoalService(goalRepo ports.GoalRepository, logger *logger.Logger) *GoalService {
	return &GoalService{
		goalRepo: goalRepo,
		logger:   logger,
	}
}

// AddGoal creates a new goal with zero progress and no subtasks
func (s *GoalService) AddGoal(text string, priority entities.Priority, deadline string) (entities.Goal, error) {
	goal, err := s.goalRepo.AddGoal(text, priority, deadline)
	if err != nil {
		return entities.Goal{}, fmt.Errorf("failed to add goal: %w", err)
	}

	s.logger.Info("Goal added", "text", goal.Text, "priority", goal.Priority)

	return goal, nil
}

// GetGoals returns all goals in file order
func (s *GoalService) GetGoals() ([]entities.Goal, error) {
	goals, err := s.goalRepo.GetGoals()
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	return goals, nil
}

// GetSortedGoals returns goals ordered by the given key
func (s *GoalService) GetSortedGoals(key entities.SortKey, descending bool) ([]entities.Goal, error) {
	goals, err := s.goalRepo.GetSortedGoals(key, descending)
	if err != nil {
		return nil, fmt.Errorf("failed to list sorted goals: %w", err)
	}

	return goals, nil
}

// UpdateGoalStatus toggles a goal's completion flag
func (s *GoalService) UpdateGoalStatus(index int, completed bool) (entities.Goal, error) {
	goal, err := s.goalRepo.UpdateGoalStatus(index, completed)
	if err != nil {
		return entities.Goal{}, fmt.Errorf("failed to update goal status: %w", err)
	}

	s.logger.Info("Goal status updated", "index", index, "completed", completed)

	return goal, nil
}

// UpdateGoal edits the set task fields of a goal
func (s *GoalService) UpdateGoal(index int, update entities.TaskUpdate) (entities.Goal, error) {
	goal, err := s.goalRepo.UpdateGoal(index, update)
	if err != nil {
		return entities.Goal{}, fmt.Errorf("failed to update goal: %w", err)
	}

	s.logger.Info("Goal updated", "index", index)

	return goal, nil
}

// UpdateGoalProgress sets a goal's manual progress percentage
func (s *GoalService) UpdateGoalProgress(index, progress int) (entities.Goal, error) {
	goal, err := s.goalRepo.UpdateGoalProgress(index, progress)
	if err != nil {
		return entities.Goal{}, fmt.Errorf("failed to update goal progress: %w", err)
	}

	s.logger.Info("Goal progress updated", "index", index, "progress", progress)

	return goal, nil
}

// AddSubtask appends a step to a goal
func (s *GoalService) AddSubtask(index int, text string) (entities.Goal, error) {
	goal, err := s.goalRepo.AddSubtask(index, text)
	if err != nil {
		return entities.Goal{}, fmt.Errorf("failed to add subtask: %w", err)
	}

	s.logger.Info("Subtask added", "goal_index", index)

	return goal, nil
}

// UpdateSubtaskStatus toggles one subtask of a goal
func (s *GoalService) UpdateSubtaskStatus(index, subIndex int, completed bool) (entities.Goal, error) {
	goal, err := s.goalRepo.UpdateSubtaskStatus(index, subIndex, completed)
	if err != nil {
		return entities.Goal{}, fmt.Errorf("failed to update subtask status: %w", err)
	}

	s.logger.Info("Subtask status updated", "goal_index", index, "subtask_index", subIndex, "completed", completed)

	return goal, nil
}

// DeleteGoal removes a goal by position
func (s *GoalService) DeleteGoal(index int) (entities.Goal, error) {
	goal, err := s.goalRepo.DeleteGoal(index)
	if err != nil {
		return entities.Goal{}, fmt.Errorf("failed to delete goal: %w", err)
	}

	s.logger.Info("Goal deleted", "index", index, "text", goal.Text)

	return goal, nil
}
