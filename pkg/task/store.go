package task

import (
	"strings"
	"time"

	"github.com/suhan647/task-planner/pkg/dategrid"
)

// Criteria holds the active filter and search state. An empty category set
// means no category filter; FrameNone means no time-frame filter; a blank
// search string means no text filter.
type Criteria struct {
	Categories map[Category]bool
	Frame      dategrid.TimeFrame
	Search     string
}

// FilterChange is a partial update merged into the existing criteria by
// SetFilters. Nil fields leave the current value untouched.
type FilterChange struct {
	Categories map[Category]bool
	Frame      *dategrid.TimeFrame
}

// Store owns the in-memory task collection and the active filter criteria.
// All mutation goes through it; every mutation re-validates the
// start <= end invariant before committing.
type Store struct {
	tasks    []Task
	criteria Criteria
	now      func() time.Time // injectable for time-frame filtering tests
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		criteria: Criteria{Categories: make(map[Category]bool)},
		now:      time.Now,
	}
}

// SetNow overrides the clock used for time-frame filtering.
func (s *Store) SetNow(now func() time.Time) {
	s.now = now
}

// Add appends a task to the collection.
func (s *Store) Add(t Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	for _, existing := range s.tasks {
		if existing.ID == t.ID {
			return ErrDuplicateID
		}
	}
	s.tasks = append(s.tasks, t)
	return nil
}

// Update replaces the stored task with the same id. A violating range is
// rejected with ErrInvalidRange and the prior state retained; an unknown id
// is reported as ErrNotFound, never silently swallowed.
func (s *Store) Update(t Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	for i, existing := range s.tasks {
		if existing.ID == t.ID {
			t.CreatedAt = existing.CreatedAt // immutable once set
			s.tasks[i] = t
			return nil
		}
	}
	return ErrNotFound
}

// Remove deletes a task by id.
func (s *Store) Remove(id string) error {
	for i, existing := range s.tasks {
		if existing.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id string) (Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// All returns copies of every task in insertion order, ignoring filters.
func (s *Store) All() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of stored tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Replace swaps the whole collection, e.g. after a reload from disk.
// Records violating the range invariant are skipped rather than stored.
func (s *Store) Replace(tasks []Task) {
	s.tasks = s.tasks[:0]
	for _, t := range tasks {
		if t.Validate() != nil {
			continue
		}
		s.tasks = append(s.tasks, t)
	}
}

// SetFilters merges a partial change into the current criteria.
func (s *Store) SetFilters(change FilterChange) {
	if change.Categories != nil {
		s.criteria.Categories = change.Categories
	}
	if change.Frame != nil {
		s.criteria.Frame = *change.Frame
	}
}

// ToggleCategory flips a category's membership in the filter set.
func (s *Store) ToggleCategory(c Category) {
	if s.criteria.Categories == nil {
		s.criteria.Categories = make(map[Category]bool)
	}
	if s.criteria.Categories[c] {
		delete(s.criteria.Categories, c)
	} else {
		s.criteria.Categories[c] = true
	}
}

// SetFrame selects a time-frame bound. Selecting the active frame again
// clears it.
func (s *Store) SetFrame(f dategrid.TimeFrame) {
	if s.criteria.Frame == f {
		s.criteria.Frame = dategrid.FrameNone
		return
	}
	s.criteria.Frame = f
}

// SetSearch replaces the free-text search string.
func (s *Store) SetSearch(text string) {
	s.criteria.Search = text
}

// ClearFilters resets categories, time frame and search.
func (s *Store) ClearFilters() {
	s.criteria = Criteria{Categories: make(map[Category]bool)}
}

// Criteria returns a copy of the active criteria.
func (s *Store) Criteria() Criteria {
	c := Criteria{
		Categories: make(map[Category]bool, len(s.criteria.Categories)),
		Frame:      s.criteria.Frame,
		Search:     s.criteria.Search,
	}
	for k, v := range s.criteria.Categories {
		c.Categories[k] = v
	}
	return c
}

// Query returns the filtered, search-matched task list in insertion order.
// The three predicates compose by logical AND: text search first, then
// category membership, then time-frame overlap. Each applies only when its
// criterion is set.
func (s *Store) Query() []Task {
	search := strings.ToLower(strings.TrimSpace(s.criteria.Search))
	now := s.now()

	var out []Task
	for _, t := range s.tasks {
		if search != "" && !matchesSearch(t, search) {
			continue
		}
		if len(s.criteria.Categories) > 0 && !s.criteria.Categories[t.Category] {
			continue
		}
		if !dategrid.InTimeFrame(t.StartDate, t.EndDate, s.criteria.Frame, now) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// matchesSearch checks a case-insensitive substring match against title and
// category. The needle must already be lowercased and trimmed.
func matchesSearch(t Task, needle string) bool {
	return strings.Contains(strings.ToLower(t.Title), needle) ||
		strings.Contains(strings.ToLower(string(t.Category)), needle)
}
