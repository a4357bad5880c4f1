package services

import (
	"fmt"

	"github.com/daybot/core/internal/domain/entities"
	"github.com/daybot/core/internal/infrastructure/logger"
	"github.com/daybot/core/internal/ports"
)

// MoodSummary aggregates a window of mood entries.
type MoodSummary struct {
	Days    int         `json:"days"`
	Count   int         `json:"count"`
	Average float64     `json:"average"`
	ByValue map[int]int `json:"by_value"`
}

// MoodService handles mood tracking operations
type MoodService struct {
	moodRepo ports.MoodRepository
	logger   *logger.Logger
}

// NewMoodService creates a new mood service
func NewMoodService(moodRepo ports.MoodRepository, logger *logger.Logger) *MoodService {
	return &MoodService{
		moodRepo: moodRepo,
		logger:   logger,
	}
}

// AddMood records a measurement on the 1-5 scale
func (s *MoodService) AddMood(value int, comment string) (entities.MoodEntry, error) {
	entry, err := s.moodRepo.AddMood(value, comment)
	if err != nil {
		return entities.MoodEntry{}, fmt.Errorf("failed to add mood entry: %w", err)
	}

	s.logger.Info("Mood recorded", "value", value)

	return entry, nil
}

// GetRecent returns the entries of the trailing days-long window
func (s *MoodService) GetRecent(days int) ([]entities.MoodEntry, error) {
	moods, err := s.moodRepo.GetRecent(days)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent moods: %w", err)
	}

	return moods, nil
}

// Summarize aggregates the trailing window into counts and an average
func (s *MoodService) Summarize(days int) (MoodSummary, error) {
	moods, err := s.moodRepo.GetRecent(days)
	if err != nil {
		return MoodSummary{}, fmt.Errorf("failed to summarize moods: %w", err)
	}

	summary := MoodSummary{Days: days, Count: len(moods), ByValue: map[int]int{}}
	total := 0
	for _, m := range moods {
		total += m.Value
		summary.ByValue[m.Value]++
	}
	if summary.Count > 0 {
		summary.Average = float64(total) / float64(summary.Count)
	}

	return summary, nil
}
