package tui

// Geometry describes the month grid's screen layout and resolves pointer
// coordinates to cells. One terminal column is the unit of horizontal
// distance; one row the unit of vertical distance.
type Geometry struct {
	GridTop    int // first screen row of the grid body (below the weekday header)
	Weeks      int
	CellWidth  int
	CellHeight int
}

// Pointer-to-cell fallback radius: how far outside the grid rectangle a
// pointer may land and still snap to the nearest cell.
const (
	nearRadiusX = 3
	nearRadiusY = 1
)

// NewGeometry computes cell dimensions for a terminal of the given size.
// gridTop is the first row of the grid body; bottomRows is the chrome below
// the grid (footer).
func NewGeometry(width, height, gridTop, bottomRows, weeks int) Geometry {
	if weeks < 1 {
		weeks = 1
	}
	cw := width / 7
	if cw < 4 {
		cw = 4
	}
	ch := (height - gridTop - bottomRows) / weeks
	if ch < 2 {
		ch = 2
	}
	return Geometry{GridTop: gridTop, Weeks: weeks, CellWidth: cw, CellHeight: ch}
}

// gridWidth and gridHeight are the grid body extents in screen units.
func (g Geometry) gridWidth() int  { return g.CellWidth * 7 }
func (g Geometry) gridHeight() int { return g.CellHeight * g.Weeks }

// CellIndexAt resolves a pointer position to the cell whose rectangle
// contains it. ok is false outside the grid.
func (g Geometry) CellIndexAt(x, y int) (int, bool) {
	if x < 0 || x >= g.gridWidth() {
		return 0, false
	}
	row := y - g.GridTop
	if row < 0 || row >= g.gridHeight() {
		return 0, false
	}
	return (row/g.CellHeight)*7 + x/g.CellWidth, true
}

// NearestCell resolves a pointer to a cell, preferring exact containment and
// falling back to the nearest cell within a bounded radius of the grid.
// Outside the radius resolution fails for this tick: not an error, simply no
// target.
func (g Geometry) NearestCell(x, y int) (int, bool) {
	if i, ok := g.CellIndexAt(x, y); ok {
		return i, true
	}

	cx := clamp(x, 0, g.gridWidth()-1)
	cy := clamp(y, g.GridTop, g.GridTop+g.gridHeight()-1)
	if abs(x-cx) > nearRadiusX || abs(y-cy) > nearRadiusY {
		return 0, false
	}
	return g.CellIndexAt(cx, cy)
}

// InnerPos returns the pointer's row and column within its containing cell.
func (g Geometry) InnerPos(x, y int) (row, col int) {
	return (y - g.GridTop) % g.CellHeight, x % g.CellWidth
}

// SegmentRow maps a row within a cell to the segment slot it displays.
// Row 0 is the day-number line; slots start below it. ok is false on the
// day-number line.
func (g Geometry) SegmentRow(rowInCell int) (int, bool) {
	if rowInCell < 1 {
		return 0, false
	}
	return rowInCell - 1, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
