// Package grid maps date-ranged tasks onto the month grid's cells,
// producing the day-spanning segments the renderer draws.
package grid

import (
	"time"

	"github.com/suhan647/task-planner/pkg/dategrid"
	"github.com/suhan647/task-planner/pkg/task"
)

// Segment is one task-day intersecting the visible month. A multi-day task
// yields one segment per visible day; the segment touching the task's true
// start date is flagged FirstDay (title + start handle) and the one touching
// the end date LastDay (end handle). A one-day task is both.
type Segment struct {
	TaskID    string
	Title     string
	Category  task.Category
	Date      time.Time
	CellIndex int
	FirstDay  bool
	LastDay   bool
	Preview   bool // true while the segment reflects live gesture dates
}

// BuildSegments computes, per task, the ordered cells it occupies
// intersected with the visible range. Tasks may start before or end after
// the visible cells; only the intersecting portion is produced. When preview
// is non-nil it replaces the stored task with the same id, so an active
// move/resize renders its live dates without touching the store.
func BuildSegments(cells []dategrid.Cell, tasks []task.Task, preview *task.Task) []Segment {
	if len(cells) == 0 {
		return nil
	}

	index := make(map[time.Time]int, len(cells))
	for i, c := range cells {
		index[c.Date] = i
	}
	first := cells[0].Date
	last := cells[len(cells)-1].Date

	var segs []Segment
	for _, t := range tasks {
		isPreview := false
		if preview != nil && preview.ID == t.ID {
			t = *preview
			isPreview = true
		}
		segs = append(segs, taskSegments(t, first, last, index, isPreview)...)
	}
	return segs
}

func taskSegments(t task.Task, first, last time.Time, index map[time.Time]int, isPreview bool) []Segment {
	start := t.StartDate
	end := t.EndDate

	// Clip to the visible range.
	visStart := start
	if visStart.Before(first) {
		visStart = first
	}
	visEnd := end
	if visEnd.After(last) {
		visEnd = last
	}
	if visStart.After(visEnd) {
		return nil
	}

	var segs []Segment
	for _, d := range dategrid.DaysBetween(visStart, visEnd) {
		ci, ok := index[d]
		if !ok {
			continue
		}
		segs = append(segs, Segment{
			TaskID:    t.ID,
			Title:     t.Title,
			Category:  t.Category,
			Date:      d,
			CellIndex: ci,
			FirstDay:  d.Equal(start),
			LastDay:   d.Equal(end),
			Preview:   isPreview,
		})
	}
	return segs
}

// SegmentsByCell buckets segments per cell index, preserving task order
// within each cell.
func SegmentsByCell(segs []Segment, numCells int) [][]Segment {
	byCell := make([][]Segment, numCells)
	for _, s := range segs {
		if s.CellIndex < 0 || s.CellIndex >= numCells {
			continue
		}
		byCell[s.CellIndex] = append(byCell[s.CellIndex], s)
	}
	return byCell
}
