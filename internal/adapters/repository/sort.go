package repository

import (
	"sort"
	"strings"

	"github.com/daybot/core/internal/domain/entities"
)

// sortable is satisfied by every task-like record the shared sort
// operates on.
type sortable interface {
	SortFields() entities.SortFields
}

// sortItems returns a new slice ordered by the given key. The sort is
// stable: records with equal keys keep their original relative order.
//
// One direction convention applies to every key: descending=false means
// ascending. Records without a deadline always sort last under the
// deadline key, in either direction.
func sortItems[T sortable](items []T, key entities.SortKey, descending bool) []T {
	out := make([]T, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].SortFields(), out[j].SortFields()

		if key == entities.SortByDeadline {
			switch {
			case a.Deadline == "" && b.Deadline == "":
				return false
			case a.Deadline == "":
				return false
			case b.Deadline == "":
				return true
			}
		}

		c := compareFields(a, b, key)
		if descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

func compareFields(a, b entities.SortFields, key entities.SortKey) int {
	switch key {
	case entities.SortByPriority:
		return a.Priority.Rank() - b.Priority.Rank()
	case entities.SortByStatus:
		if a.Completed != b.Completed {
			if b.Completed {
				return -1
			}
			return 1
		}
		return strings.Compare(a.CompletedAt, b.CompletedAt)
	case entities.SortByDate:
		// zero-padded timestamps, lexicographic order is chronological
		return strings.Compare(a.CreatedAt, b.CreatedAt)
	case entities.SortByDeadline:
		return strings.Compare(a.Deadline, b.Deadline)
	}
	return 0
}
