package services

import (
	"fmt"

	"github.com/daybot/core/internal/domain/entities"
	"github.com/daybot/core/internal/infrastructure/logger"
	"github.com/daybot/core/internal/ports"
)

// ScheduleService handles daily schedule operations
type ScheduleService struct {
	scheduleRepo ports.ScheduleRepository
	logger       *logger.Logger
}

// NewScheduleService creates a new schedule service
func NewScheduleService(scheduleRepo ports.ScheduleRepository, logger *logger.Logger) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// AddEntry adds a schedule line at the given time of day
func (s *ScheduleService) AddEntry(timeOfDay, text string) (entities.ScheduleEntry, error) {
	entry, err := s.scheduleRepo.AddEntry(timeOfDay, text)
	if err != nil {
		return entities.ScheduleEntry{}, fmt.Errorf("failed to add schedule entry: %w", err)
	}

	s.logger.Info("Schedule entry added", "time", entry.Time, "text", entry.Text)

	return entry, nil
}

// GetSchedule returns all entries in file order
func (s *ScheduleService) GetSchedule() ([]entities.ScheduleEntry, error) {
	schedule, err := s.scheduleRepo.GetSchedule()
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule: %w", err)
	}

	return schedule, nil
}

// GetSortedSchedule returns entries ordered by time of day
func (s *ScheduleService) GetSortedSchedule() ([]entities.ScheduleEntry, error) {
	schedule, err := s.scheduleRepo.GetSortedSchedule()
	if err != nil {
		return nil, fmt.Errorf("failed to list sorted schedule: %w", err)
	}

	return schedule, nil
}

// UpdateEntryTime moves an entry to a new time of day
func (s *ScheduleService) UpdateEntryTime(index int, timeOfDay string) (entities.ScheduleEntry, error) {
	entry, err := s.scheduleRepo.UpdateEntryTime(index, timeOfDay)
	if err != nil {
		return entities.ScheduleEntry{}, fmt.Errorf("failed to update schedule entry time: %w", err)
	}

	s.logger.Info("Schedule entry time updated", "index", index, "time", timeOfDay)

	return entry, nil
}

// UpdateEntryText changes an entry's text
func (s *ScheduleService) UpdateEntryText(index int, text string) (entities.ScheduleEntry, error) {
	entry, err := s.scheduleRepo.UpdateEntryText(index, text)
	if err != nil {
		return entities.ScheduleEntry{}, fmt.Errorf("failed to update schedule entry text: %w", err)
	}

	s.logger.Info("Schedule entry text updated", "index", index)

	return entry, nil
}

// DeleteEntry removes an entry and returns it for confirmation messages
func (s *ScheduleService) DeleteEntry(index int) (entities.ScheduleEntry, error) {
	entry, err := s.scheduleRepo.DeleteEntry(index)
	if err != nil {
		return entities.ScheduleEntry{}, fmt.Errorf("failed to delete schedule entry: %w", err)
	}

	s.logger.Info("Schedule entry deleted", "index", index, "time", entry.Time)

	return entry, nil
}
