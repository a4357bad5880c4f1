package repository

import (
	"github.com/daybot/core/internal/domain/entities"
	"github.com/daybot/core/internal/ports"
)

// GoalRepositoryImpl persists goals as a JSON array file. Goals carry
// the task fields plus a progress percentage and a subtask list.
type GoalRepositoryImpl struct {
	*store[entities.Goal]
}

// NewGoalRepository creates a goal repository backed by the given file.
func NewGoalRepository(path string, rules entities.ValidationRules) (ports.GoalRepository, error) {
	s, err := newStore[entities.Goal](path, rules)
	if err != nil {
		return nil, err
	}
	return &GoalRepositoryImpl{store: s}, nil
}

// GetGoals returns all goals in file order.
func (r *GoalRepositoryImpl) GetGoals() ([]entities.Goal, error) {
	return r.load()
}

// AddGoal validates the fields and appends a goal seeded with zero
// progress and an empty subtask list.
func (r *GoalRepositoryImpl) AddGoal(text string, priority entities.Priority, deadline string) (entities.Goal, error) {
	if err := r.validateText(text); err != nil {
		return entities.Goal{}, err
	}
	if err := r.validatePriority(priority); err != nil {
		return entities.Goal{}, err
	}
	if err := r.validateDeadline(deadline); err != nil {
		return entities.Goal{}, err
	}

	goals, err := r.load()
	if err != nil {
		return entities.Goal{}, err
	}

	goal := entities.Goal{
		Task: entities.Task{
			Text:      trimText(text),
			Priority:  priority,
			Deadline:  deadline,
			Completed: false,
			CreatedAt: now(),
		},
		Progress: 0,
		Subtasks: []entities.Subtask{},
	}
	goals = append(goals, goal)
	if err := r.save(goals); err != nil {
		return entities.Goal{}, err
	}
	return goal, nil
}

// UpdateGoalStatus toggles completion, stamping or removing completed_at.
func (r *GoalRepositoryImpl) UpdateGoalStatus(index int, completed bool) (entities.Goal, error) {
	goals, err := r.load()
	if err != nil {
		return entities.Goal{}, err
	}
	if err := r.checkIndex(index, len(goals), "goal"); err != nil {
		return entities.Goal{}, err
	}

	goals[index].Completed = completed
	if completed {
		goals[index].CompletedAt = now()
	} else {
		goals[index].CompletedAt = ""
	}

	if err := r.save(goals); err != nil {
		return entities.Goal{}, err
	}
	return goals[index], nil
}

// UpdateGoal edits the set task fields of the goal at the given
// position. Progress and subtasks are edited through their own
// operations.
func (r *GoalRepositoryImpl) UpdateGoal(index int, update entities.TaskUpdate) (entities.Goal, error) {
	if err := r.validateUpdate(update); err != nil {
		return entities.Goal{}, err
	}

	goals, err := r.load()
	if err != nil {
		return entities.Goal{}, err
	}
	if err := r.checkIndex(index, len(goals), "goal"); err != nil {
		return entities.Goal{}, err
	}

	applyUpdate(&goals[index].Task, update)
	if err := r.save(goals); err != nil {
		return entities.Goal{}, err
	}
	return goals[index], nil
}

// UpdateGoalProgress sets the manual progress percentage.
func (r *GoalRepositoryImpl) UpdateGoalProgress(index int, progress int) (entities.Goal, error) {
	if progress < 0 || progress > 100 {
		return entities.Goal{}, entities.NewValidationError("progress must be between 0 and 100")
	}

	goals, err := r.load()
	if err != nil {
		return entities.Goal{}, err
	}
	if err := r.checkIndex(index, len(goals), "goal"); err != nil {
		return entities.Goal{}, err
	}

	goals[index].Progress = progress
	if err := r.save(goals); err != nil {
		return entities.Goal{}, err
	}
	return goals[index], nil
}

// AddSubtask appends a step to the goal's subtask list.
func (r *GoalRepositoryImpl) AddSubtask(index int, text string) (entities.Goal, error) {
	if err := r.validateText(text); err != nil {
		return entities.Goal{}, err
	}

	goals, err := r.load()
	if err != nil {
		return entities.Goal{}, err
	}
	if err := r.checkIndex(index, len(goals), "goal"); err != nil {
		return entities.Goal{}, err
	}

	goals[index].Subtasks = append(goals[index].Subtasks, entities.Subtask{Text: trimText(text)})
	if err := r.save(goals); err != nil {
		return entities.Goal{}, err
	}
	return goals[index], nil
}

// UpdateSubtaskStatus toggles one subtask of a goal.
func (r *GoalRepositoryImpl) UpdateSubtaskStatus(index, subIndex int, completed bool) (entities.Goal, error) {
	goals, err := r.load()
	if err != nil {
		return entities.Goal{}, err
	}
	if err := r.checkIndex(index, len(goals), "goal"); err != nil {
		return entities.Goal{}, err
	}
	if err := r.checkIndex(subIndex, len(goals[index].Subtasks), "subtask"); err != nil {
		return entities.Goal{}, err
	}

	goals[index].Subtasks[subIndex].Completed = completed
	if err := r.save(goals); err != nil {
		return entities.Goal{}, err
	}
	return goals[index], nil
}

// DeleteGoal removes the goal at the given position and returns it.
func (r *GoalRepositoryImpl) DeleteGoal(index int) (entities.Goal, error) {
	goals, err := r.load()
	if err != nil {
		return entities.Goal{}, err
	}
	if err := r.checkIndex(index, len(goals), "goal"); err != nil {
		return entities.Goal{}, err
	}

	deleted := goals[index]
	goals = append(goals[:index], goals[index+1:]...)
	if err := r.save(goals); err != nil {
		return entities.Goal{}, err
	}
	return deleted, nil
}

// GetSortedGoals returns the goals ordered by the given key.
func (r *GoalRepositoryImpl) GetSortedGoals(key entities.SortKey, descending bool) ([]entities.Goal, error) {
	goals, err := r.load()
	if err != nil {
		return nil, err
	}
	return sortItems(goals, key, descending), nil
}
