package repository

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/daybot/core/internal/domain/entities"
	"github.com/daybot/core/internal/ports"
)

func newTestMoodRepo(t *testing.T) (ports.MoodRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mood.json")
	repo, err := NewMoodRepository(path, entities.DefaultValidationRules())
	if err != nil {
		t.Fatal(err)
	}
	return repo, path
}

func TestMoodRepository_AddBounds(t *testing.T) {
	is := is.New(t)
	repo, _ := newTestMoodRepo(t)

	var validationErr *entities.ValidationError
	_, err := repo.AddMood(0, "")
	is.True(errors.As(err, &validationErr))
	_, err = repo.AddMood(6, "")
	is.True(errors.As(err, &validationErr))

	entry, err := repo.AddMood(3, "steady")
	is.NoErr(err)
	is.Equal(entry.Value, 3)
	is.Equal(entry.Comment, "steady")

	_, err = time.Parse(time.RFC3339, entry.Timestamp)
	is.NoErr(err)
}

func TestMoodRepository_CommentRule(t *testing.T) {
	is := is.New(t)
	repo, _ := newTestMoodRepo(t)

	// empty comment is allowed, an over-long one is not
	_, err := repo.AddMood(4, "")
	is.NoErr(err)

	long := make([]byte, 501)
	for i := range long {
		long[i] = 'x'
	}
	var validationErr *entities.ValidationError
	_, err = repo.AddMood(4, string(long))
	is.True(errors.As(err, &validationErr))
}

func TestMoodRepository_GetRecentWindow(t *testing.T) {
	is := is.New(t)
	repo, path := newTestMoodRepo(t)

	yesterday := entities.MoodEntry{
		Value:     2,
		Timestamp: time.Now().AddDate(0, 0, -1).Format(time.RFC3339),
	}
	lastMonth := entities.MoodEntry{
		Value:     5,
		Timestamp: time.Now().AddDate(0, -1, 0).Format(time.RFC3339),
	}
	bs, err := json.Marshal([]entities.MoodEntry{yesterday, lastMonth})
	is.NoErr(err)
	is.NoErr(os.WriteFile(path, bs, 0o644))

	recent, err := repo.GetRecent(7)
	is.NoErr(err)
	is.Equal(len(recent), 1)
	is.Equal(recent[0].Value, 2)

	// a zero-day window excludes everything already stored
	recent, err = repo.GetRecent(0)
	is.NoErr(err)
	is.Equal(len(recent), 0)

	var validationErr *entities.ValidationError
	_, err = repo.GetRecent(-1)
	is.True(errors.As(err, &validationErr))
}

func TestMoodRepository_SkipsUnreadableTimestamps(t *testing.T) {
	is := is.New(t)
	repo, path := newTestMoodRepo(t)

	// legacy records used the wall-clock layout instead of RFC 3339
	legacy := `[{"value":4,"timestamp":"2024-03-17 15:40:00"}]`
	is.NoErr(os.WriteFile(path, []byte(legacy), 0o644))

	recent, err := repo.GetRecent(36500)
	is.NoErr(err)
	is.Equal(len(recent), 0)

	all, err := repo.GetMoods()
	is.NoErr(err)
	is.Equal(len(all), 1)
}
