package entities

import (
	"encoding/json"
	"testing"

	"github.com/matryer/is"
)

func TestParsePriority(t *testing.T) {
	is := is.New(t)

	for _, label := range []string{"low", "medium", "high"} {
		p, ok := ParsePriority(label)
		is.True(ok)
		is.Equal(string(p), label)
	}

	t.Run("accepts legacy localized labels", func(t *testing.T) {
		is := is.New(t)
		p, ok := ParsePriority("высокий")
		is.True(ok)
		is.Equal(p, PriorityHigh)
		p, ok = ParsePriority("низкий")
		is.True(ok)
		is.Equal(p, PriorityLow)
	})

	t.Run("rejects unknown labels", func(t *testing.T) {
		is := is.New(t)
		_, ok := ParsePriority("urgent")
		is.True(!ok)
	})
}

func TestPriorityRank(t *testing.T) {
	is := is.New(t)
	is.True(PriorityHigh.Rank() > PriorityMedium.Rank())
	is.True(PriorityMedium.Rank() > PriorityLow.Rank())
	is.Equal(Priority("urgent").Rank(), 0)
}

func TestTaskMarshalOmitsEmptyCompletedAt(t *testing.T) {
	is := is.New(t)

	task := Task{Text: "Buy milk", Priority: PriorityLow, CreatedAt: "2024-03-17 10:00:00"}
	bs, err := json.Marshal(task)
	is.NoErr(err)

	var raw map[string]interface{}
	is.NoErr(json.Unmarshal(bs, &raw))
	_, present := raw["completed_at"]
	is.True(!present)
	_, present = raw["deadline"]
	is.True(!present)
}

func TestGoalMarshalFlattensTaskFields(t *testing.T) {
	is := is.New(t)

	goal := Goal{
		Task:     Task{Text: "Learn Go", Priority: PriorityHigh, CreatedAt: "2024-03-17 10:00:00"},
		Subtasks: []Subtask{},
	}
	bs, err := json.Marshal(goal)
	is.NoErr(err)

	var raw map[string]interface{}
	is.NoErr(json.Unmarshal(bs, &raw))
	is.Equal(raw["text"], "Learn Go")
	is.Equal(raw["progress"], float64(0))

	// an empty subtask list must persist as [], not null
	subtasks, ok := raw["subtasks"].([]interface{})
	is.True(ok)
	is.Equal(len(subtasks), 0)
}
