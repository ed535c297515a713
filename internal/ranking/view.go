package ranking

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	StatusAll       = "all"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

const (
	OrderSmart        = "smart"
	OrderDate         = "date"
	OrderAlphabetical = "alphabetical"
)

// View is a client display transform over an already-ranked task list:
// status filter, then text search, then reorder. It has no persistence
// effect and never recomputes scores.
type View struct {
	Status string
	Query  string
	Order  string
}

func ValidStatus(s string) bool {
	return s == StatusAll || s == StatusActive || s == StatusCompleted
}

func ValidOrder(o string) bool {
	return o == OrderSmart || o == OrderDate || o == OrderAlphabetical
}

// Apply filters and reorders tasks. OrderSmart preserves the input order,
// which is expected to be Rank output. The input slice is not modified.
func (v View) Apply(tasks []ScoredTask) []ScoredTask {
	query := strings.ToLower(v.Query)

	out := make([]ScoredTask, 0, len(tasks))
	for _, t := range tasks {
		if v.Status == StatusActive && t.Completed {
			continue
		}
		if v.Status == StatusCompleted && !t.Completed {
			continue
		}
		if query != "" && !matchesQuery(t, query) {
			continue
		}
		out = append(out, t)
	}

	switch v.Order {
	case OrderDate:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].Deadline, out[j].Deadline
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.Before(*b)
		})
	case OrderAlphabetical:
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Title, out[j].Title) < 0
		})
	}

	return out
}

// matchesQuery reports whether any of title, description or category
// contains the lowercased query.
func matchesQuery(t ScoredTask, query string) bool {
	return strings.Contains(strings.ToLower(t.Title), query) ||
		strings.Contains(strings.ToLower(t.Description), query) ||
		strings.Contains(strings.ToLower(t.Category), query)
}
