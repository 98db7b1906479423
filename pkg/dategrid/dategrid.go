package dategrid

import "time"

// Cell represents one day tile in the month grid.
type Cell struct {
	Date    time.Time
	InMonth bool // false for leading/trailing filler days
	Today   bool
}

// TimeFrame is a relative date window used as a filter bound.
type TimeFrame string

const (
	FrameNone       TimeFrame = ""
	FrameWeek       TimeFrame = "week"
	FrameTwoWeeks   TimeFrame = "two-weeks"
	FrameThreeWeeks TimeFrame = "three-weeks"
)

// Days returns the window length of the frame in days, 0 for FrameNone.
func (f TimeFrame) Days() int {
	switch f {
	case FrameWeek:
		return 7
	case FrameTwoWeeks:
		return 14
	case FrameThreeWeeks:
		return 21
	default:
		return 0
	}
}

// Normalize truncates a time to midnight UTC. All calendar math in this
// package operates on normalized days; the time-of-day component is
// deliberately discarded.
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Normalize(a).Equal(Normalize(b))
}

// MonthCells returns every day tile for the month containing ref, padded on
// both sides to full Sunday-through-Saturday weeks. The result length is
// always a multiple of 7.
func MonthCells(ref, now time.Time) []Cell {
	ref = Normalize(ref)
	now = Normalize(now)

	firstOfMonth := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	first := firstOfMonth.AddDate(0, 0, -int(firstOfMonth.Weekday()))
	last := lastOfMonth.AddDate(0, 0, int(time.Saturday-lastOfMonth.Weekday()))

	var cells []Cell
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		cells = append(cells, Cell{
			Date:    d,
			InMonth: d.Month() == ref.Month(),
			Today:   d.Equal(now),
		})
	}
	return cells
}

// DaysBetween enumerates every day from start through end inclusive.
// Callers must not invoke it with start > end; an inverted range returns nil.
func DaysBetween(start, end time.Time) []time.Time {
	start = Normalize(start)
	end = Normalize(end)
	if start.After(end) {
		return nil
	}

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DayCount returns the inclusive number of days between start and end,
// 0 for an inverted range.
func DayCount(start, end time.Time) int {
	start = Normalize(start)
	end = Normalize(end)
	if start.After(end) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// DayDelta returns the signed whole-day distance from a to b.
func DayDelta(a, b time.Time) int {
	a = Normalize(a)
	b = Normalize(b)
	return int(b.Sub(a).Hours() / 24)
}

// InTimeFrame reports whether the [start, end] interval overlaps the window
// [now, now+frame days], inclusive on both bounds. Overlap, not containment:
// a task that starts before now and ends after the cutoff still matches.
// A FrameNone window matches everything.
func InTimeFrame(start, end time.Time, frame TimeFrame, now time.Time) bool {
	days := frame.Days()
	if days == 0 {
		return true
	}

	start = Normalize(start)
	end = Normalize(end)
	windowStart := Normalize(now)
	windowEnd := windowStart.AddDate(0, 0, days)

	return !end.Before(windowStart) && !start.After(windowEnd)
}
