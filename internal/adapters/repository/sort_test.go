package repository

import (
	"testing"

	"github.com/matryer/is"

	"github.com/daybot/core/internal/domain/entities"
)

func task(text string, p entities.Priority) entities.Task {
	return entities.Task{Text: text, Priority: p, CreatedAt: "2024-03-17 10:00:00"}
}

func texts(tasks []entities.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Text
	}
	return out
}

func TestSortItems_Priority(t *testing.T) {
	is := is.New(t)

	tasks := []entities.Task{
		task("b", entities.PriorityMedium),
		task("a", entities.PriorityHigh),
		task("c", entities.PriorityLow),
	}

	asc := sortItems(tasks, entities.SortByPriority, false)
	is.Equal(texts(asc), []string{"c", "b", "a"})

	desc := sortItems(tasks, entities.SortByPriority, true)
	is.Equal(texts(desc), []string{"a", "b", "c"})

	// input order untouched
	is.Equal(texts(tasks), []string{"b", "a", "c"})
}

func TestSortItems_StableOnEqualKeys(t *testing.T) {
	is := is.New(t)

	tasks := []entities.Task{
		task("first", entities.PriorityMedium),
		task("second", entities.PriorityMedium),
		task("third", entities.PriorityMedium),
	}

	sorted := sortItems(tasks, entities.SortByPriority, false)
	is.Equal(texts(sorted), []string{"first", "second", "third"})

	sorted = sortItems(tasks, entities.SortByPriority, true)
	is.Equal(texts(sorted), []string{"first", "second", "third"})
}

func TestSortItems_Status(t *testing.T) {
	is := is.New(t)

	done := task("done", entities.PriorityMedium)
	done.Completed = true
	done.CompletedAt = "2024-03-17 12:00:00"
	doneEarlier := task("done earlier", entities.PriorityMedium)
	doneEarlier.Completed = true
	doneEarlier.CompletedAt = "2024-03-17 11:00:00"
	open := task("open", entities.PriorityMedium)

	sorted := sortItems([]entities.Task{done, doneEarlier, open}, entities.SortByStatus, false)
	is.Equal(texts(sorted), []string{"open", "done earlier", "done"})
}

func TestSortItems_Date(t *testing.T) {
	is := is.New(t)

	older := entities.Task{Text: "older", CreatedAt: "2024-03-16 09:00:00"}
	newer := entities.Task{Text: "newer", CreatedAt: "2024-03-17 09:00:00"}

	sorted := sortItems([]entities.Task{newer, older}, entities.SortByDate, false)
	is.Equal(texts(sorted), []string{"older", "newer"})

	sorted = sortItems([]entities.Task{older, newer}, entities.SortByDate, true)
	is.Equal(texts(sorted), []string{"newer", "older"})
}

func TestSortItems_DeadlineMissingSortsLast(t *testing.T) {
	is := is.New(t)

	soon := task("soon", entities.PriorityMedium)
	soon.Deadline = "2024-04-01"
	later := task("later", entities.PriorityMedium)
	later.Deadline = "2024-05-01"
	none := task("none", entities.PriorityMedium)

	asc := sortItems([]entities.Task{none, later, soon}, entities.SortByDeadline, false)
	is.Equal(texts(asc), []string{"soon", "later", "none"})

	// records without a deadline stay last in either direction
	desc := sortItems([]entities.Task{none, later, soon}, entities.SortByDeadline, true)
	is.Equal(texts(desc), []string{"later", "soon", "none"})
}
