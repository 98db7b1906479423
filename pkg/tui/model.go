package tui

import (
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/suhan647/task-planner/pkg/dategrid"
	"github.com/suhan647/task-planner/pkg/gesture"
	"github.com/suhan647/task-planner/pkg/grid"
	"github.com/suhan647/task-planner/pkg/storage"
	"github.com/suhan647/task-planner/pkg/task"
)

// FileChangedMsg is sent when the file watcher detects changes.
type FileChangedMsg struct{}

// SaveDoneMsg is sent when a background save completes.
type SaveDoneMsg struct {
	Err error
}

// Model is the Bubble Tea model for the calendar TUI.
type Model struct {
	tasks    *task.Store
	adapter  *storage.Store
	gestures *gesture.Controller
	keys     KeyMap
	now      func() time.Time

	width  int
	height int

	refDate time.Time // first day of the displayed month
	cells   []dategrid.Cell

	// Pointer session bookkeeping for the active press.
	pressX    int
	pressCell int
	dragMoved bool // the pointer resolved to a new cell/day since press

	// Modal state
	form     formState
	showHelp bool

	// Search state
	isSearching bool

	// Status message
	statusMsg     string
	statusTimeout time.Time

	// Cached glamour renderer for the help modal (expensive to create)
	glamourRenderer *glamour.TermRenderer
	glamourWidth    int
}

// NewModel creates a new TUI model showing the month containing now.
func NewModel(tasks *task.Store, adapter *storage.Store) Model {
	m := Model{
		tasks:    tasks,
		adapter:  adapter,
		gestures: gesture.NewController(),
		keys:     DefaultKeyMap(),
		now:      time.Now,
	}
	m.form = newFormState()
	m.setMonth(m.now())
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.getGlamourRenderer(helpWidth(msg.Width))
		return m, tea.ClearScreen

	case FileChangedMsg:
		m.reload()
		return m, nil

	case SaveDoneMsg:
		if msg.Err != nil {
			m.setStatus("Save failed: " + msg.Err.Error())
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Form modal captures all input.
	if m.form.active {
		return m.handleFormKeys(msg)
	}

	// Help modal
	if m.showHelp {
		switch msg.String() {
		case "esc", "enter", "?", "q":
			m.showHelp = false
		}
		return m, nil
	}

	// Search input mode
	if m.isSearching {
		return m.handleSearchInput(msg)
	}

	// An active gesture can be abandoned from the keyboard.
	if m.gestures.Active() && msg.Type == tea.KeyEsc {
		m.gestures.Cancel()
		m.setStatus("Cancelled")
		return m, nil
	}

	// If a search filter is active (not typing), esc clears it.
	if m.tasks.Criteria().Search != "" && msg.Type == tea.KeyEsc {
		m.tasks.SetSearch("")
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.PrevMonth):
		m.setMonth(m.refDate.AddDate(0, -1, 0))

	case key.Matches(msg, m.keys.NextMonth):
		m.setMonth(m.refDate.AddDate(0, 1, 0))

	case key.Matches(msg, m.keys.Today):
		m.setMonth(m.now())

	case key.Matches(msg, m.keys.NewTask):
		today := dategrid.Normalize(m.now())
		m.openCreateForm(today, today)

	case key.Matches(msg, m.keys.Search):
		m.isSearching = true
		m.tasks.SetSearch("")

	case key.Matches(msg, m.keys.ClearFilters):
		m.tasks.ClearFilters()
		m.setStatus("Filters cleared")

	case key.Matches(msg, m.keys.FilterToDo):
		m.tasks.ToggleCategory(task.CategoryToDo)
	case key.Matches(msg, m.keys.FilterInProg):
		m.tasks.ToggleCategory(task.CategoryInProgress)
	case key.Matches(msg, m.keys.FilterReview):
		m.tasks.ToggleCategory(task.CategoryReview)
	case key.Matches(msg, m.keys.FilterDone):
		m.tasks.ToggleCategory(task.CategoryCompleted)

	case key.Matches(msg, m.keys.FrameWeek):
		m.tasks.SetFrame(dategrid.FrameWeek)
	case key.Matches(msg, m.keys.FrameTwo):
		m.tasks.SetFrame(dategrid.FrameTwoWeeks)
	case key.Matches(msg, m.keys.FrameThree):
		m.tasks.SetFrame(dategrid.FrameThreeWeeks)

	case key.Matches(msg, m.keys.Reload):
		m.reload()
		m.setStatus("Reloaded")

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	}

	return m, nil
}

// handleSearchInput handles key messages while typing in the search bar.
// The task list is live-filtered per keystroke.
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.isSearching = false
		m.tasks.SetSearch("")
		return m, nil

	case tea.KeyEnter, tea.KeyTab:
		// Exit search input but keep the filter active.
		m.isSearching = false
		return m, nil

	case tea.KeyBackspace:
		q := m.tasks.Criteria().Search
		if len(q) > 0 {
			_, size := utf8.DecodeLastRuneInString(q)
			m.tasks.SetSearch(q[:len(q)-size])
		}
		return m, nil

	default:
		if msg.Type == tea.KeyRunes {
			m.tasks.SetSearch(m.tasks.Criteria().Search + string(msg.Runes))
		}
		return m, nil
	}
}

func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if !m.gestures.Active() && !m.form.active {
				m.setMonth(m.refDate.AddDate(0, -1, 0))
			}
		case tea.MouseButtonWheelDown:
			if !m.gestures.Active() && !m.form.active {
				m.setMonth(m.refDate.AddDate(0, 1, 0))
			}
		case tea.MouseButtonLeft:
			return m.handlePress(msg.X, msg.Y)
		}

	case tea.MouseActionMotion:
		m.handleMotion(msg.X, msg.Y)

	case tea.MouseActionRelease:
		return m.handleRelease(msg.X, msg.Y)
	}

	return m, nil
}

// hitKind classifies what sits under a pointer press.
type hitKind int

const (
	hitNone hitKind = iota
	hitCell
	hitBody
	hitStartHandle
	hitEndHandle
)

type hit struct {
	kind hitKind
	cell int
	seg  grid.Segment
}

// hitTest resolves a press position to a cell, task segment body, or edge
// handle. Edge handles occupy the first column of a first-day segment and
// the last column of a last-day segment, so a press there is captured by
// the handle and never reaches the body initiator.
func (m *Model) hitTest(x, y int) hit {
	geo := m.geometry()
	ci, ok := geo.CellIndexAt(x, y)
	if !ok {
		return hit{kind: hitNone}
	}

	row, col := geo.InnerPos(x, y)
	slot, ok := geo.SegmentRow(row)
	if !ok {
		return hit{kind: hitCell, cell: ci}
	}

	segs := m.cellSegments(ci)
	if slot >= len(segs) || slot >= geo.CellHeight-1 {
		return hit{kind: hitCell, cell: ci}
	}

	seg := segs[slot]
	switch {
	case seg.FirstDay && col == 0:
		return hit{kind: hitStartHandle, cell: ci, seg: seg}
	case seg.LastDay && col == geo.CellWidth-1:
		return hit{kind: hitEndHandle, cell: ci, seg: seg}
	default:
		return hit{kind: hitBody, cell: ci, seg: seg}
	}
}

func (m Model) handlePress(x, y int) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.form.active {
		return m, nil
	}

	h := m.hitTest(x, y)
	if h.kind == hitNone {
		return m, nil
	}

	m.pressX = x
	m.pressCell = h.cell
	m.dragMoved = false

	switch h.kind {
	case hitStartHandle, hitEndHandle:
		t, ok := m.tasks.Get(h.seg.TaskID)
		if !ok {
			return m, nil
		}
		edge := gesture.EdgeStart
		if h.kind == hitEndHandle {
			edge = gesture.EdgeEnd
		}
		if err := m.gestures.StartResize(t, edge); err != nil {
			return m, nil
		}

	case hitBody:
		t, ok := m.tasks.Get(h.seg.TaskID)
		if !ok {
			return m, nil
		}
		if err := m.gestures.StartMove(t, m.cells[h.cell].Date); err != nil {
			return m, nil
		}

	case hitCell:
		if err := m.gestures.StartSelect(m.cells[h.cell].Date); err != nil {
			return m, nil
		}
	}

	return m, nil
}

// handleMotion feeds pointer movement into the active gesture. A failed
// cell resolution suppresses the preview update for this tick; it is part
// of normal interaction flow, never an error.
func (m *Model) handleMotion(x, y int) {
	if !m.gestures.Active() {
		return
	}
	geo := m.geometry()

	switch m.gestures.Kind() {
	case gesture.KindSelecting:
		ci, ok := geo.NearestCell(x, y)
		if !ok {
			return
		}
		m.gestures.UpdateSelect(m.cells[ci].Date)
		if ci != m.pressCell {
			m.dragMoved = true
		}

	case gesture.KindMoving:
		ci, ok := geo.NearestCell(x, y)
		if !ok {
			return
		}
		m.gestures.UpdateMove(m.cells[ci].Date)
		if ci != m.pressCell {
			m.dragMoved = true
		}

	case gesture.KindResizing:
		delta := gesture.DayDelta(x-m.pressX, geo.CellWidth)
		m.gestures.UpdateResize(delta)
		if delta != 0 {
			m.dragMoved = true
		}
	}
}

func (m Model) handleRelease(_, _ int) (tea.Model, tea.Cmd) {
	if !m.gestures.Active() {
		return m, nil
	}

	// A press-and-release on a task body without crossing a cell is a
	// click: open the edit form instead of committing a no-op move.
	if m.gestures.Kind() == gesture.KindMoving && !m.dragMoved {
		preview, _ := m.gestures.Preview()
		m.gestures.Cancel()
		m.openEditForm(preview)
		return m, nil
	}

	commit, ok := m.gestures.Release()
	if !ok {
		return m, nil
	}

	switch commit.Kind {
	case gesture.CommitSelection:
		m.openCreateForm(commit.Start, commit.End)
		return m, nil

	case gesture.CommitMove, gesture.CommitResize:
		if err := m.tasks.Update(commit.Task); err != nil {
			m.setStatus("Error: " + err.Error())
			return m, nil
		}
		return m, m.saveCmd()
	}

	return m, nil
}

// setMonth switches the displayed month to the one containing ref.
func (m *Model) setMonth(ref time.Time) {
	ref = dategrid.Normalize(ref)
	m.refDate = time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	m.cells = dategrid.MonthCells(m.refDate, m.now())
}

// geometry computes the grid layout for the current terminal size.
func (m Model) geometry() Geometry {
	return NewGeometry(m.width, m.height, m.gridTop(), 1, len(m.cells)/7)
}

// gridTop is the first screen row of the grid body: header, filter bar,
// optional search bar, then the weekday header.
func (m Model) gridTop() int {
	top := 3
	if m.searchActive() {
		top++
	}
	return top
}

func (m Model) searchActive() bool {
	return m.isSearching || m.tasks.Criteria().Search != ""
}

// visibleSegments lays the filtered tasks out on the current month,
// substituting the live gesture preview for the task being moved/resized.
func (m Model) visibleSegments() []grid.Segment {
	var preview *task.Task
	if p, ok := m.gestures.Preview(); ok {
		preview = &p
	}
	return grid.BuildSegments(m.cells, m.tasks.Query(), preview)
}

func (m Model) cellSegments(cellIndex int) []grid.Segment {
	byCell := grid.SegmentsByCell(m.visibleSegments(), len(m.cells))
	if cellIndex < 0 || cellIndex >= len(byCell) {
		return nil
	}
	return byCell[cellIndex]
}

// saveCmd persists the current collection in the background. Failure is
// logged as a status message; the app keeps running on in-memory state.
func (m Model) saveCmd() tea.Cmd {
	snapshot := m.tasks.All()
	adapter := m.adapter
	return func() tea.Msg {
		return SaveDoneMsg{Err: adapter.Save(snapshot)}
	}
}

func (m *Model) reload() {
	loaded, err := m.adapter.Load()
	if err != nil {
		m.setStatus("Load error: " + err.Error())
		return
	}
	m.tasks.Replace(loaded)
}

// getGlamourRenderer returns a cached glamour renderer, creating one if
// needed or if the width changed.
func (m *Model) getGlamourRenderer(width int) *glamour.TermRenderer {
	if m.glamourRenderer != nil && m.glamourWidth == width {
		return m.glamourRenderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	m.glamourRenderer = r
	m.glamourWidth = width
	return r
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTimeout = m.now().Add(3 * time.Second)
}

func helpWidth(termWidth int) int {
	w := termWidth - 10
	if w > 70 {
		w = 70
	}
	if w < 30 {
		w = 30
	}
	return w
}
