package storage

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suhan647/task-planner/pkg/task"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	a := task.New("Write report", task.CategoryToDo, day(2024, time.March, 10), day(2024, time.March, 12))
	b := task.New("Review PR", task.CategoryReview, day(2024, time.March, 15), day(2024, time.March, 15))
	require.NoError(t, s.Save([]task.Task{a, b}))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, a.Title, got[0].Title)
	assert.Equal(t, a.Category, got[0].Category)
	assert.Equal(t, a.StartDate, got[0].StartDate)
	assert.Equal(t, a.EndDate, got[0].EndDate)
	assert.Equal(t, b.StartDate, got[1].StartDate)
	// Ordering is preserved.
	assert.Equal(t, b.ID, got[1].ID)
}

func TestLoadMissingFile(t *testing.T) {
	s := setupTestStore(t)
	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

// A corrupt file must never stop the app from starting: Load degrades to an
// empty list with a nil error.
func TestLoadCorruptFile(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{{{not yaml"), 0644))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)

	// The file stays as-is until the next save replaces it.
	require.NoError(t, s.Save(nil))
	got, err = s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadSkipsBrokenRecords(t *testing.T) {
	s := setupTestStore(t)
	content := `updated: "2024-03-10T00:00:00Z"
tasks:
  - id: ok
    title: Fine
    category: todo
    start: "2024-03-10"
    end: "2024-03-11"
  - id: bad-date
    title: Broken
    category: todo
    start: "not-a-date"
    end: "2024-03-11"
  - id: inverted
    title: Backwards
    category: todo
    start: "2024-03-12"
    end: "2024-03-10"
`
	require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0644))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].ID)
}

func TestClear(t *testing.T) {
	s := setupTestStore(t)
	tk := task.New("soon gone", task.CategoryToDo, day(2024, time.March, 10), day(2024, time.March, 10))
	require.NoError(t, s.Save([]task.Task{tk}))

	require.NoError(t, s.Clear())
	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)

	// Clearing an already-empty store is fine.
	assert.NoError(t, s.Clear())
}

func TestDeleteExcludedFromRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	a := task.New("keep", task.CategoryToDo, day(2024, time.March, 10), day(2024, time.March, 10))
	b := task.New("delete", task.CategoryToDo, day(2024, time.March, 11), day(2024, time.March, 11))
	require.NoError(t, s.Save([]task.Task{a, b}))

	// Remove b and save again; the round trip must exclude it.
	require.NoError(t, s.Save([]task.Task{a}))
	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)
}

func TestCreatedAtSurvivesRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	tk := task.New("timestamped", task.CategoryToDo, day(2024, time.March, 10), day(2024, time.March, 10))
	require.NoError(t, s.Save([]task.Task{tk}))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, tk.CreatedAt.Truncate(time.Second).UTC(), got[0].CreatedAt.Truncate(time.Second).UTC())
}
