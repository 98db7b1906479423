package task

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/suhan647/task-planner/pkg/dategrid"
)

// Category classifies a task on the board.
type Category string

const (
	CategoryToDo       Category = "todo"
	CategoryInProgress Category = "in-progress"
	CategoryReview     Category = "review"
	CategoryCompleted  Category = "completed"
)

// Categories lists all valid categories in display order.
var Categories = []Category{
	CategoryToDo,
	CategoryInProgress,
	CategoryReview,
	CategoryCompleted,
}

// IsValidCategory checks if a category string is valid.
func IsValidCategory(c Category) bool {
	switch c {
	case CategoryToDo, CategoryInProgress, CategoryReview, CategoryCompleted:
		return true
	default:
		return false
	}
}

// Task is a titled, categorized, date-ranged work item placed on the
// calendar. StartDate and EndDate are day-granular (midnight UTC) and
// StartDate <= EndDate holds for every task observable through the Store.
type Task struct {
	ID        string
	Title     string
	Category  Category
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
}

// New constructs a Task with a fresh id and creation timestamp. Dates are
// normalized to day granularity; an inverted range is swapped so the
// invariant holds from birth.
func New(title string, category Category, start, end time.Time) Task {
	start = dategrid.Normalize(start)
	end = dategrid.Normalize(end)
	if start.After(end) {
		start, end = end, start
	}
	return Task{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		Category:  category,
		StartDate: start,
		EndDate:   end,
		CreatedAt: time.Now().UTC(),
	}
}

// Duration returns the inclusive day count of the task's range.
func (t Task) Duration() int {
	return dategrid.DayCount(t.StartDate, t.EndDate)
}

// Shifted returns a copy of the task moved so it starts on the given day,
// preserving duration.
func (t Task) Shifted(start time.Time) Task {
	days := t.Duration()
	t.StartDate = dategrid.Normalize(start)
	t.EndDate = t.StartDate.AddDate(0, 0, days-1)
	return t
}

// Validate checks the task's own invariants.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if t.StartDate.After(t.EndDate) {
		return ErrInvalidRange
	}
	return nil
}
