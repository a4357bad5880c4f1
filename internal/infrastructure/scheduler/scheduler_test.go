package scheduler

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		label  string
		hour   int
		minute int
		ok     bool
	}{
		{"06:00", 6, 0, true},
		{"21:30", 21, 30, true},
		{"9:05", 9, 5, true},
		{"24:00", 0, 0, false},
		{"12:60", 0, 0, false},
		{"noon", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tc := range cases {
		hour, minute, err := parseClock(tc.label)
		if tc.ok {
			if err != nil {
				t.Errorf("parseClock(%q) failed: %v", tc.label, err)
				continue
			}
			if hour != tc.hour || minute != tc.minute {
				t.Errorf("parseClock(%q) = %d:%d, want %d:%d", tc.label, hour, minute, tc.hour, tc.minute)
			}
		} else if err == nil {
			t.Errorf("parseClock(%q) accepted invalid input", tc.label)
		}
	}
}

func TestParseWeekday(t *testing.T) {
	is := is.New(t)

	day, err := parseWeekday("Sunday")
	is.NoErr(err)
	is.Equal(day, time.Sunday)

	day, err = parseWeekday("monday")
	is.NoErr(err)
	is.Equal(day, time.Monday)

	_, err = parseWeekday("Someday")
	is.True(err != nil)
}

func TestJobDueAt(t *testing.T) {
	is := is.New(t)

	daily := job{name: "daily", hour: 21, minute: 30}
	is.True(daily.dueAt(time.Date(2024, 3, 4, 21, 30, 0, 0, time.UTC)))
	is.True(!daily.dueAt(time.Date(2024, 3, 4, 21, 31, 0, 0, time.UTC)))
	is.True(!daily.dueAt(time.Date(2024, 3, 4, 20, 30, 0, 0, time.UTC)))

	sunday := time.Sunday
	weekly := job{name: "weekly", hour: 21, minute: 0, weekday: &sunday}
	is.True(weekly.dueAt(time.Date(2024, 3, 3, 21, 0, 0, 0, time.UTC)))  // a Sunday
	is.True(!weekly.dueAt(time.Date(2024, 3, 4, 21, 0, 0, 0, time.UTC))) // the Monday after
}
