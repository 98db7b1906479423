// Package gesture implements the pointer-interaction state machine that
// classifies one continuous press-move-release sequence as exactly one of
// three gestures: date-range selection, whole-task move, or edge resize.
// Only one gesture may be active process-wide; the guards here enforce that,
// not any caller convention.
package gesture

import (
	"errors"
	"time"

	"github.com/suhan647/task-planner/pkg/dategrid"
	"github.com/suhan647/task-planner/pkg/task"
)

// Gesture errors.
var (
	ErrGestureActive = errors.New("another gesture is already active")
)

// Kind identifies the active gesture.
type Kind int

const (
	KindNone Kind = iota
	KindSelecting
	KindMoving
	KindResizing
)

func (k Kind) String() string {
	switch k {
	case KindSelecting:
		return "selecting"
	case KindMoving:
		return "moving"
	case KindResizing:
		return "resizing"
	default:
		return "none"
	}
}

// Edge names the task boundary grabbed by a resize.
type Edge int

const (
	EdgeStart Edge = iota
	EdgeEnd
)

// CommitKind tags the result emitted on release.
type CommitKind int

const (
	CommitSelection CommitKind = iota
	CommitMove
	CommitResize
)

// Commit is the result of a completed gesture, applied to the task store by
// the caller. Selection carries the chosen date range; move and resize carry
// the updated task.
type Commit struct {
	Kind  CommitKind
	Start time.Time // selection range, min-ordered
	End   time.Time
	Task  task.Task // updated task for move/resize
}

// state is the tagged variant behind the controller. Each gesture kind uses
// exactly the fields it needs.
type state struct {
	kind Kind

	// selecting
	anchor  time.Time
	current time.Time

	// moving
	moving       task.Task
	anchorOffset int // days between the pointer's date and the task start
	target       time.Time
	hasTarget    bool

	// resizing
	resizing task.Task // snapshot of the original dates
	edge     Edge
	preview  task.Task
}

// Controller is the single authoritative gesture state machine. Components
// that need to know whether an interaction is in progress query it instead
// of consulting ambient flags.
type Controller struct {
	s state
}

// NewController returns an idle controller.
func NewController() *Controller {
	return &Controller{}
}

// Kind returns the active gesture kind.
func (c *Controller) Kind() Kind {
	return c.s.kind
}

// Active reports whether any gesture is in progress.
func (c *Controller) Active() bool {
	return c.s.kind != KindNone
}

// StartSelect begins a date-range selection anchored at the pressed cell's
// date. Fails if any gesture is already active.
func (c *Controller) StartSelect(date time.Time) error {
	if c.s.kind != KindNone {
		return ErrGestureActive
	}
	date = dategrid.Normalize(date)
	c.s = state{kind: KindSelecting, anchor: date, current: date}
	return nil
}

// UpdateSelect extends the selection to the entered cell's date.
func (c *Controller) UpdateSelect(date time.Time) {
	if c.s.kind != KindSelecting {
		return
	}
	c.s.current = dategrid.Normalize(date)
}

// SelectionRange returns the min/max-ordered selection while selecting.
func (c *Controller) SelectionRange() (start, end time.Time, ok bool) {
	if c.s.kind != KindSelecting {
		return time.Time{}, time.Time{}, false
	}
	start, end = c.s.anchor, c.s.current
	if start.After(end) {
		start, end = end, start
	}
	return start, end, true
}

// StartMove begins dragging a whole task. pointerDate is the date of the
// cell under the pointer at press time; the offset to the task's start is
// recorded so the task does not jump under the cursor.
func (c *Controller) StartMove(t task.Task, pointerDate time.Time) error {
	if c.s.kind != KindNone {
		return ErrGestureActive
	}
	c.s = state{
		kind:         KindMoving,
		moving:       t,
		anchorOffset: dategrid.DayDelta(t.StartDate, dategrid.Normalize(pointerDate)),
	}
	return nil
}

// UpdateMove recomputes the candidate target from the cell currently under
// the pointer. Live preview only; no store mutation happens until release.
func (c *Controller) UpdateMove(pointerDate time.Time) {
	if c.s.kind != KindMoving {
		return
	}
	c.s.target = dategrid.Normalize(pointerDate).AddDate(0, 0, -c.s.anchorOffset)
	c.s.hasTarget = true
}

// StartResize begins dragging one edge of a task. The caller routes handle
// presses here before the task-body move initiator ever sees them; that
// priority is what keeps move and resize mutually exclusive at the source.
func (c *Controller) StartResize(t task.Task, edge Edge) error {
	if c.s.kind != KindNone {
		return ErrGestureActive
	}
	c.s = state{kind: KindResizing, resizing: t, edge: edge, preview: t}
	return nil
}

// UpdateResize applies a whole-day delta to the grabbed edge, clamped so the
// edge never crosses the opposite, fixed edge. The minimum task duration is
// one day. The preview only changes when the resolved day delta changes, so
// renderers see updates on day-boundary crossings rather than every tick.
func (c *Controller) UpdateResize(dayDelta int) {
	if c.s.kind != KindResizing {
		return
	}
	orig := c.s.resizing
	next := orig
	switch c.s.edge {
	case EdgeStart:
		d := orig.StartDate.AddDate(0, 0, dayDelta)
		if d.After(orig.EndDate) {
			d = orig.EndDate
		}
		next.StartDate = d
	case EdgeEnd:
		d := orig.EndDate.AddDate(0, 0, dayDelta)
		if d.Before(orig.StartDate) {
			d = orig.StartDate
		}
		next.EndDate = d
	}
	c.s.preview = next
}

// Preview returns the live task preview during a move or resize. Renderers
// substitute it for the stored task with the same id so feedback is
// immediate without mutating the store.
func (c *Controller) Preview() (task.Task, bool) {
	switch c.s.kind {
	case KindMoving:
		if !c.s.hasTarget {
			return c.s.moving, true
		}
		return c.s.moving.Shifted(c.s.target), true
	case KindResizing:
		return c.s.preview, true
	default:
		return task.Task{}, false
	}
}

// Release ends the gesture on pointer-up and returns the commit to apply.
// A selection always commits, even when anchor == current (single-day
// ranges are valid). A move without any resolved target is abandoned, which
// is a normal cancellation, not an error. The controller returns to idle
// either way.
func (c *Controller) Release() (Commit, bool) {
	defer c.reset()

	switch c.s.kind {
	case KindSelecting:
		start, end, _ := c.SelectionRange()
		return Commit{Kind: CommitSelection, Start: start, End: end}, true

	case KindMoving:
		if !c.s.hasTarget {
			return Commit{}, false
		}
		moved := c.s.moving.Shifted(c.s.target)
		return Commit{Kind: CommitMove, Task: moved, Start: moved.StartDate, End: moved.EndDate}, true

	case KindResizing:
		p := c.s.preview
		return Commit{Kind: CommitResize, Task: p, Start: p.StartDate, End: p.EndDate}, true

	default:
		return Commit{}, false
	}
}

// Cancel abandons the active gesture with zero side effects.
func (c *Controller) Cancel() {
	c.reset()
}

func (c *Controller) reset() {
	c.s = state{}
}

// DayDelta converts a horizontal column delta to a whole-day delta by
// dividing by the width of one day cell and rounding to the nearest integer.
func DayDelta(columns, cellWidth int) int {
	if cellWidth <= 0 {
		return 0
	}
	if columns >= 0 {
		return (columns + cellWidth/2) / cellWidth
	}
	return -((-columns + cellWidth/2) / cellWidth)
}
