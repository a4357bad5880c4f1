package repository

import (
	"time"

	"github.com/daybot/core/internal/domain/entities"
	"github.com/daybot/core/internal/ports"
)

// MoodRepositoryImpl persists mood measurements as a JSON array file in
// natural append order.
type MoodRepositoryImpl struct {
	*store[entities.MoodEntry]
}

// NewMoodRepository creates a mood repository backed by the given file.
func NewMoodRepository(path string, rules entities.ValidationRules) (ports.MoodRepository, error) {
	s, err := newStore[entities.MoodEntry](path, rules)
	if err != nil {
		return nil, err
	}
	return &MoodRepositoryImpl{store: s}, nil
}

// GetMoods returns all entries in file order.
func (r *MoodRepositoryImpl) GetMoods() ([]entities.MoodEntry, error) {
	return r.load()
}

// AddMood records a measurement. Value must be within 1-5; a non-empty
// comment is held to the shared text rule.
func (r *MoodRepositoryImpl) AddMood(value int, comment string) (entities.MoodEntry, error) {
	if value < 1 || value > 5 {
		return entities.MoodEntry{}, entities.NewValidationError("mood value must be between 1 and 5")
	}
	if comment != "" {
		if err := r.validateText(comment); err != nil {
			return entities.MoodEntry{}, err
		}
		comment = trimText(comment)
	}

	moods, err := r.load()
	if err != nil {
		return entities.MoodEntry{}, err
	}

	entry := entities.MoodEntry{
		Value:     value,
		Comment:   comment,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	moods = append(moods, entry)
	if err := r.save(moods); err != nil {
		return entities.MoodEntry{}, err
	}
	return entry, nil
}

// GetRecent returns entries whose timestamp falls inside the trailing
// days-long window from now (half-open: timestamp > now-days). Order is
// the natural append order; entries with unreadable timestamps are
// skipped.
func (r *MoodRepositoryImpl) GetRecent(days int) ([]entities.MoodEntry, error) {
	if days < 0 {
		return nil, entities.NewValidationError("days must not be negative")
	}

	moods, err := r.load()
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	recent := make([]entities.MoodEntry, 0, len(moods))
	for _, m := range moods {
		ts, err := time.Parse(time.RFC3339, m.Timestamp)
		if err != nil {
			continue
		}
		if ts.After(cutoff) {
			recent = append(recent, m)
		}
	}
	return recent, nil
}
