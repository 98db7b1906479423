package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suhan647/task-planner/pkg/dategrid"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTask(title string, c Category, start, end time.Time) Task {
	return New(title, c, start, end)
}

func TestAddAndQuery(t *testing.T) {
	s := NewStore()

	a := newTask("Write report", CategoryToDo, day(2024, time.March, 10), day(2024, time.March, 12))
	b := newTask("Review PR", CategoryReview, day(2024, time.March, 11), day(2024, time.March, 11))
	require.NoError(t, s.Add(a))
	require.NoError(t, s.Add(b))

	got := s.Query()
	require.Len(t, got, 2)
	// Insertion order, no implicit sort.
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, b.ID, got[1].ID)
}

func TestAddRejectsEmptyTitle(t *testing.T) {
	s := NewStore()
	tk := newTask("ok", CategoryToDo, day(2024, time.March, 10), day(2024, time.March, 10))
	tk.Title = "   "
	assert.ErrorIs(t, s.Add(tk), ErrEmptyTitle)
	assert.Zero(t, s.Len())
}

func TestAddRejectsDuplicateID(t *testing.T) {
	s := NewStore()
	tk := newTask("one", CategoryToDo, day(2024, time.March, 10), day(2024, time.March, 10))
	require.NoError(t, s.Add(tk))
	tk.Title = "two"
	assert.ErrorIs(t, s.Add(tk), ErrDuplicateID)
}

func TestUpdateRejectsInvalidRange(t *testing.T) {
	s := NewStore()
	tk := newTask("stable", CategoryToDo, day(2024, time.March, 10), day(2024, time.March, 12))
	require.NoError(t, s.Add(tk))

	bad := tk
	bad.StartDate = day(2024, time.March, 20)
	assert.ErrorIs(t, s.Update(bad), ErrInvalidRange)

	// Prior state retained.
	got, ok := s.Get(tk.ID)
	require.True(t, ok)
	assert.Equal(t, day(2024, time.March, 10), got.StartDate)
}

func TestUpdateNotFound(t *testing.T) {
	s := NewStore()
	tk := newTask("ghost", CategoryToDo, day(2024, time.March, 10), day(2024, time.March, 10))
	assert.ErrorIs(t, s.Update(tk), ErrNotFound)
}

func TestUpdateKeepsCreatedAt(t *testing.T) {
	s := NewStore()
	tk := newTask("pin", CategoryToDo, day(2024, time.March, 10), day(2024, time.March, 10))
	require.NoError(t, s.Add(tk))

	mod := tk
	mod.CreatedAt = time.Time{}
	mod.Title = "pinned"
	require.NoError(t, s.Update(mod))

	got, ok := s.Get(tk.ID)
	require.True(t, ok)
	assert.Equal(t, tk.CreatedAt, got.CreatedAt)
	assert.Equal(t, "pinned", got.Title)
}

func TestRemove(t *testing.T) {
	s := NewStore()
	tk := newTask("gone", CategoryToDo, day(2024, time.March, 10), day(2024, time.March, 10))
	require.NoError(t, s.Add(tk))

	require.NoError(t, s.Remove(tk.ID))
	assert.Empty(t, s.Query())
	assert.ErrorIs(t, s.Remove(tk.ID), ErrNotFound)
}

func TestInvariantHeldUnderAllMutations(t *testing.T) {
	s := NewStore()
	tk := newTask("inv", CategoryToDo, day(2024, time.March, 12), day(2024, time.March, 10))
	// New swaps an inverted range rather than storing it.
	assert.True(t, !tk.StartDate.After(tk.EndDate))
	require.NoError(t, s.Add(tk))

	for _, stored := range s.All() {
		assert.True(t, !stored.StartDate.After(stored.EndDate))
	}
}

func TestReplaceSkipsInvalidRecords(t *testing.T) {
	s := NewStore()
	good := newTask("good", CategoryToDo, day(2024, time.March, 10), day(2024, time.March, 10))
	bad := good
	bad.ID = "other"
	bad.StartDate = day(2024, time.March, 20)
	bad.EndDate = day(2024, time.March, 10)

	s.Replace([]Task{good, bad})
	require.Equal(t, 1, s.Len())
	_, ok := s.Get(good.ID)
	assert.True(t, ok)
}

func TestSearchMatchesTitleAndCategory(t *testing.T) {
	s := NewStore()
	a := newTask("Quarterly Report", CategoryToDo, day(2024, time.March, 10), day(2024, time.March, 10))
	b := newTask("Standup", CategoryInProgress, day(2024, time.March, 10), day(2024, time.March, 10))
	require.NoError(t, s.Add(a))
	require.NoError(t, s.Add(b))

	s.SetSearch("report")
	got := s.Query()
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)

	// Category text is searchable too.
	s.SetSearch("progress")
	got = s.Query()
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)

	// Blank search after trim applies no filter.
	s.SetSearch("   ")
	assert.Len(t, s.Query(), 2)
}

func TestToggleCategory(t *testing.T) {
	s := NewStore()
	s.ToggleCategory(CategoryToDo)
	assert.True(t, s.Criteria().Categories[CategoryToDo])
	s.ToggleCategory(CategoryToDo)
	assert.Empty(t, s.Criteria().Categories)
}

func TestSetFrameTogglesOff(t *testing.T) {
	s := NewStore()
	s.SetFrame(dategrid.FrameWeek)
	assert.Equal(t, dategrid.FrameWeek, s.Criteria().Frame)
	// Selecting the active value again clears it.
	s.SetFrame(dategrid.FrameWeek)
	assert.Equal(t, dategrid.FrameNone, s.Criteria().Frame)
}

func TestFilterComposition(t *testing.T) {
	now := day(2024, time.March, 10)
	s := NewStore()
	s.SetNow(func() time.Time { return now })

	// Five tasks; exactly one satisfies category=todo AND next-7-day overlap
	// AND "report" in title or category.
	match := newTask("Ship weekly report", CategoryToDo, day(2024, time.March, 12), day(2024, time.March, 13))
	wrongCategory := newTask("Report polish", CategoryReview, day(2024, time.March, 12), day(2024, time.March, 13))
	outsideWindow := newTask("Annual report", CategoryToDo, day(2024, time.April, 20), day(2024, time.April, 22))
	wrongText := newTask("Fix login bug", CategoryToDo, day(2024, time.March, 12), day(2024, time.March, 13))
	inThePast := newTask("Old report", CategoryToDo, day(2024, time.February, 1), day(2024, time.February, 2))

	for _, tk := range []Task{match, wrongCategory, outsideWindow, wrongText, inThePast} {
		require.NoError(t, s.Add(tk))
	}

	s.SetSearch("report")
	s.SetFilters(FilterChange{Categories: map[Category]bool{CategoryToDo: true}})
	frame := dategrid.FrameWeek
	s.SetFilters(FilterChange{Frame: &frame})

	got := s.Query()
	require.Len(t, got, 1)
	assert.Equal(t, match.ID, got[0].ID)
}

func TestClearFilters(t *testing.T) {
	s := NewStore()
	tk := newTask("visible", CategoryCompleted, day(2000, time.January, 1), day(2000, time.January, 1))
	require.NoError(t, s.Add(tk))

	s.SetSearch("nomatch")
	s.ToggleCategory(CategoryToDo)
	s.SetFrame(dategrid.FrameWeek)
	assert.Empty(t, s.Query())

	s.ClearFilters()
	assert.Len(t, s.Query(), 1)
}

func TestNewNormalizesAndIdentifies(t *testing.T) {
	tk := New(" padded ", CategoryToDo,
		time.Date(2024, time.March, 10, 18, 30, 0, 0, time.UTC),
		time.Date(2024, time.March, 10, 2, 0, 0, 0, time.UTC))
	assert.NotEmpty(t, tk.ID)
	assert.Equal(t, "padded", tk.Title)
	assert.Equal(t, day(2024, time.March, 10), tk.StartDate)
	assert.Equal(t, day(2024, time.March, 10), tk.EndDate)
	assert.False(t, tk.CreatedAt.IsZero())
}

func TestShiftedPreservesDuration(t *testing.T) {
	tk := newTask("move me", CategoryToDo, day(2024, time.March, 10), day(2024, time.March, 12))
	moved := tk.Shifted(day(2024, time.March, 15))
	assert.Equal(t, day(2024, time.March, 15), moved.StartDate)
	assert.Equal(t, day(2024, time.March, 17), moved.EndDate)
	assert.Equal(t, tk.Duration(), moved.Duration())
}
