package repository

import (
	"regexp"
	"sort"
	"time"

	"github.com/daybot/core/internal/domain/entities"
	"github.com/daybot/core/internal/ports"
)

// strict 24-hour clock, single-digit hours allowed
var timePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

const timeOfDayLayout = "15:04"

// ScheduleRepositoryImpl persists the daily schedule as a JSON array
// file. Unlike the task and goal repositories it does not preserve
// insertion order: the collection is re-sorted by time after every
// mutation that adds or edits a time.
type ScheduleRepositoryImpl struct {
	*store[entities.ScheduleEntry]
}

// NewScheduleRepository creates a schedule repository backed by the given file.
func NewScheduleRepository(path string, rules entities.ValidationRules) (ports.ScheduleRepository, error) {
	s, err := newStore[entities.ScheduleEntry](path, rules)
	if err != nil {
		return nil, err
	}
	return &ScheduleRepositoryImpl{store: s}, nil
}

// GetSchedule returns all entries in file order.
func (r *ScheduleRepositoryImpl) GetSchedule() ([]entities.ScheduleEntry, error) {
	return r.load()
}

// AddEntry validates time and text, stamps the creation time and
// persists the collection re-sorted by time of day.
func (r *ScheduleRepositoryImpl) AddEntry(timeOfDay, text string) (entities.ScheduleEntry, error) {
	if err := r.validateTime(timeOfDay); err != nil {
		return entities.ScheduleEntry{}, err
	}
	if err := r.validateText(text); err != nil {
		return entities.ScheduleEntry{}, err
	}

	schedule, err := r.load()
	if err != nil {
		return entities.ScheduleEntry{}, err
	}

	entry := entities.ScheduleEntry{
		Time:      timeOfDay,
		Text:      trimText(text),
		CreatedAt: now(),
	}
	schedule = append(schedule, entry)
	sortByTime(schedule)
	if err := r.save(schedule); err != nil {
		return entities.ScheduleEntry{}, err
	}
	return entry, nil
}

// UpdateEntryTime changes an entry's time and re-sorts the collection.
func (r *ScheduleRepositoryImpl) UpdateEntryTime(index int, timeOfDay string) (entities.ScheduleEntry, error) {
	if err := r.validateTime(timeOfDay); err != nil {
		return entities.ScheduleEntry{}, err
	}

	schedule, err := r.load()
	if err != nil {
		return entities.ScheduleEntry{}, err
	}
	if err := r.checkIndex(index, len(schedule), "schedule entry"); err != nil {
		return entities.ScheduleEntry{}, err
	}

	schedule[index].Time = timeOfDay
	updated := schedule[index]
	sortByTime(schedule)
	if err := r.save(schedule); err != nil {
		return entities.ScheduleEntry{}, err
	}
	return updated, nil
}

// UpdateEntryText changes an entry's text in place.
func (r *ScheduleRepositoryImpl) UpdateEntryText(index int, text string) (entities.ScheduleEntry, error) {
	if err := r.validateText(text); err != nil {
		return entities.ScheduleEntry{}, err
	}

	schedule, err := r.load()
	if err != nil {
		return entities.ScheduleEntry{}, err
	}
	if err := r.checkIndex(index, len(schedule), "schedule entry"); err != nil {
		return entities.ScheduleEntry{}, err
	}

	schedule[index].Text = trimText(text)
	if err := r.save(schedule); err != nil {
		return entities.ScheduleEntry{}, err
	}
	return schedule[index], nil
}

// DeleteEntry removes the entry at the given position and returns it so
// callers can confirm what was removed.
func (r *ScheduleRepositoryImpl) DeleteEntry(index int) (entities.ScheduleEntry, error) {
	schedule, err := r.load()
	if err != nil {
		return entities.ScheduleEntry{}, err
	}
	if err := r.checkIndex(index, len(schedule), "schedule entry"); err != nil {
		return entities.ScheduleEntry{}, err
	}

	deleted := schedule[index]
	schedule = append(schedule[:index], schedule[index+1:]...)
	if err := r.save(schedule); err != nil {
		return entities.ScheduleEntry{}, err
	}
	return deleted, nil
}

// GetSortedSchedule returns entries ordered by parsed time of day,
// independent of on-disk order.
func (r *ScheduleRepositoryImpl) GetSortedSchedule() ([]entities.ScheduleEntry, error) {
	schedule, err := r.load()
	if err != nil {
		return nil, err
	}
	out := make([]entities.ScheduleEntry, len(schedule))
	copy(out, schedule)
	sortByTime(out)
	return out, nil
}

func (r *ScheduleRepositoryImpl) validateTime(timeOfDay string) error {
	if !timePattern.MatchString(timeOfDay) {
		return entities.NewValidationError("invalid time format, use HH:MM")
	}
	return nil
}

// sortByTime orders entries by parsed time of day so single-digit hours
// like "7:30" land before "19:00". Entries that fail to parse keep their
// position at the front.
func sortByTime(schedule []entities.ScheduleEntry) {
	sort.SliceStable(schedule, func(i, j int) bool {
		return parseTimeOfDay(schedule[i].Time).Before(parseTimeOfDay(schedule[j].Time))
	})
}

func parseTimeOfDay(value string) time.Time {
	t, err := time.Parse(timeOfDayLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
