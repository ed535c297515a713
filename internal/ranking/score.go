package ranking

import (
	"sort"
	"time"

	"taskify/backend/internal/models"
)

// Scoring weights. Bands are deliberately non-overlapping: an overdue task
// outranks any non-overdue one (max non-overdue is 1000+300 = 1300 < 2000),
// and a completed task sinks below every incomplete one (no positive
// combination reaches 5000).
const (
	priorityHighWeight   = 1000
	priorityMediumWeight = 500
	overdueWeight        = 2000
	deadlineSoonWeight   = 300
	deadlineNearWeight   = 100
	completedPenalty     = 5000

	deadlineSoonDays = 2
	deadlineNearDays = 7
)

// ScoredTask is a task annotated with its transient urgency score. The score
// is computed at read time and never persisted.
type ScoredTask struct {
	models.Task
	Score int `json:"score"`
}

// Score computes the urgency score of a task at the given instant.
func Score(t models.Task, now time.Time) int {
	score := 0

	switch t.Priority {
	case models.PriorityHigh:
		score += priorityHighWeight
	case models.PriorityMedium:
		score += priorityMediumWeight
	}

	if t.Deadline != nil {
		daysUntil := t.Deadline.Sub(now).Hours() / 24
		switch {
		case daysUntil < 0:
			score += overdueWeight
		case daysUntil < deadlineSoonDays:
			score += deadlineSoonWeight
		case daysUntil < deadlineNearDays:
			score += deadlineNearWeight
		}
	}

	if t.Completed {
		score -= completedPenalty
	}

	return score
}

// Rank scores every task and returns a new slice ordered by descending score.
// The sort is stable: tasks with equal scores keep their input order. The
// input slice is not modified.
func Rank(tasks []models.Task, now time.Time) []ScoredTask {
	scored := make([]ScoredTask, 0, len(tasks))
	for _, t := range tasks {
		scored = append(scored, ScoredTask{Task: t, Score: Score(t, now)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
