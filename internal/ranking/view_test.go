package ranking_test

import (
	"testing"
	"time"

	"taskify/backend/internal/models"
	"taskify/backend/internal/ranking"
)

func scored(title, description, category string, deadline *time.Time, completed bool) ranking.ScoredTask {
	return ranking.ScoredTask{
		Task: models.Task{
			Title:       title,
			Description: description,
			Category:    category,
			Deadline:    deadline,
			Completed:   completed,
		},
	}
}

func TestView_StatusFilter(t *testing.T) {
	tasks := []ranking.ScoredTask{
		scored("a", "", "General", nil, false),
		scored("b", "", "General", nil, true),
		scored("c", "", "General", nil, false),
	}

	tests := []struct {
		status string
		want   int
	}{
		{ranking.StatusAll, 3},
		{ranking.StatusActive, 2},
		{ranking.StatusCompleted, 1},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			view := ranking.View{Status: tt.status, Order: ranking.OrderSmart}
			if got := view.Apply(tasks); len(got) != tt.want {
				t.Errorf("status %q: got %d tasks, want %d", tt.status, len(got), tt.want)
			}
		})
	}
}

func TestView_QueryMatchesAnyField(t *testing.T) {
	tasks := []ranking.ScoredTask{
		scored("Groceries", "", "Home", nil, false),
		scored("Report", "quarterly numbers", "Work", nil, false),
	}

	view := ranking.View{Status: ranking.StatusAll, Query: "home", Order: ranking.OrderSmart}
	got := view.Apply(tasks)

	if len(got) != 1 || got[0].Title != "Groceries" {
		t.Fatalf("query %q should match category of Groceries, got %d results", "home", len(got))
	}

	view.Query = "NUMBERS"
	got = view.Apply(tasks)
	if len(got) != 1 || got[0].Title != "Report" {
		t.Fatalf("case-insensitive description match failed, got %d results", len(got))
	}
}

func TestView_SmartPreservesOrder(t *testing.T) {
	tasks := []ranking.ScoredTask{
		scored("z", "", "General", nil, false),
		scored("a", "", "General", nil, false),
		scored("m", "", "General", nil, false),
	}

	view := ranking.View{Status: ranking.StatusAll, Order: ranking.OrderSmart}
	got := view.Apply(tasks)

	for i := range tasks {
		if got[i].Title != tasks[i].Title {
			t.Fatalf("smart order reordered tasks at position %d", i)
		}
	}
}

func TestView_DateOrder(t *testing.T) {
	day := 24 * time.Hour
	base := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	in := func(d time.Duration) *time.Time {
		t := base.Add(d)
		return &t
	}

	tasks := []ranking.ScoredTask{
		scored("no deadline one", "", "General", nil, false),
		scored("later", "", "General", in(5*day), false),
		scored("no deadline two", "", "General", nil, false),
		scored("sooner", "", "General", in(1*day), false),
	}

	view := ranking.View{Status: ranking.StatusAll, Order: ranking.OrderDate}
	got := view.Apply(tasks)

	wantTitles := []string{"sooner", "later", "no deadline one", "no deadline two"}
	for i, want := range wantTitles {
		if got[i].Title != want {
			t.Errorf("position %d: got %q, want %q", i, got[i].Title, want)
		}
	}
}

func TestView_AlphabeticalOrder(t *testing.T) {
	tasks := []ranking.ScoredTask{
		scored("banana", "", "General", nil, false),
		scored("Apple", "", "General", nil, false),
		scored("cherry", "", "General", nil, false),
	}

	view := ranking.View{Status: ranking.StatusAll, Order: ranking.OrderAlphabetical}
	got := view.Apply(tasks)

	wantTitles := []string{"Apple", "banana", "cherry"}
	for i, want := range wantTitles {
		if got[i].Title != want {
			t.Errorf("position %d: got %q, want %q", i, got[i].Title, want)
		}
	}
}

func TestView_ComposesFilterThenSort(t *testing.T) {
	day := 24 * time.Hour
	base := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	in := func(d time.Duration) *time.Time {
		t := base.Add(d)
		return &t
	}

	tasks := []ranking.ScoredTask{
		scored("clean garage", "", "Home", in(3*day), false),
		scored("fix sink", "", "Home", in(1*day), true),
		scored("buy milk", "", "Home", in(2*day), false),
		scored("ship release", "", "Work", in(1*day), false),
	}

	view := ranking.View{Status: ranking.StatusActive, Query: "home", Order: ranking.OrderDate}
	got := view.Apply(tasks)

	wantTitles := []string{"buy milk", "clean garage"}
	if len(got) != len(wantTitles) {
		t.Fatalf("got %d tasks, want %d", len(got), len(wantTitles))
	}
	for i, want := range wantTitles {
		if got[i].Title != want {
			t.Errorf("position %d: got %q, want %q", i, got[i].Title, want)
		}
	}
}

func TestView_DoesNotMutateInput(t *testing.T) {
	tasks := []ranking.ScoredTask{
		scored("b", "", "General", nil, false),
		scored("a", "", "General", nil, false),
	}

	view := ranking.View{Status: ranking.StatusAll, Order: ranking.OrderAlphabetical}
	view.Apply(tasks)

	if tasks[0].Title != "b" || tasks[1].Title != "a" {
		t.Error("input slice was reordered")
	}
}
