package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 70x27 terminal, grid starting at row 3 with one footer row and five
// weeks: 10-column, 4-row cells.
func testGeometry() Geometry {
	return NewGeometry(70, 27, 3, 1, 5)
}

func TestGeometryCellDimensions(t *testing.T) {
	g := testGeometry()
	assert.Equal(t, 10, g.CellWidth)
	assert.Equal(t, 4, g.CellHeight)
}

func TestCellIndexAt(t *testing.T) {
	g := testGeometry()

	i, ok := g.CellIndexAt(0, 3)
	require.True(t, ok)
	assert.Equal(t, 0, i)

	// Last column of the first cell.
	i, ok = g.CellIndexAt(9, 6)
	require.True(t, ok)
	assert.Equal(t, 0, i)

	// Second column of cells.
	i, ok = g.CellIndexAt(10, 3)
	require.True(t, ok)
	assert.Equal(t, 1, i)

	// Second week.
	i, ok = g.CellIndexAt(25, 7)
	require.True(t, ok)
	assert.Equal(t, 9, i)

	// Above the grid.
	_, ok = g.CellIndexAt(5, 2)
	assert.False(t, ok)

	// Right of the grid.
	_, ok = g.CellIndexAt(70, 5)
	assert.False(t, ok)
}

func TestNearestCellSnapsWithinRadius(t *testing.T) {
	g := testGeometry()

	// Just right of the last column snaps to the last cell in the row.
	i, ok := g.NearestCell(71, 5)
	require.True(t, ok)
	assert.Equal(t, 6, i)

	// One row above the grid snaps to the first week.
	i, ok = g.NearestCell(5, 2)
	require.True(t, ok)
	assert.Equal(t, 0, i)

	// Well outside the radius fails: no target this tick.
	_, ok = g.NearestCell(90, 5)
	assert.False(t, ok)
	_, ok = g.NearestCell(5, 40)
	assert.False(t, ok)
}

func TestInnerPos(t *testing.T) {
	g := testGeometry()

	row, col := g.InnerPos(13, 5)
	assert.Equal(t, 2, row)
	assert.Equal(t, 3, col)
}

func TestSegmentRow(t *testing.T) {
	g := testGeometry()

	_, ok := g.SegmentRow(0) // day-number line
	assert.False(t, ok)

	slot, ok := g.SegmentRow(1)
	require.True(t, ok)
	assert.Equal(t, 0, slot)

	slot, ok = g.SegmentRow(3)
	require.True(t, ok)
	assert.Equal(t, 2, slot)
}
