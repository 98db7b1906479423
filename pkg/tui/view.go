package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/suhan647/task-planner/pkg/dategrid"
	"github.com/suhan647/task-planner/pkg/gesture"
	"github.com/suhan647/task-planner/pkg/grid"
	"github.com/suhan647/task-planner/pkg/task"
)

const minWidth = 40
const minHeight = 12

var weekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// View implements tea.Model.
func (m Model) View() string {
	w := m.width
	h := m.height
	if w < minWidth {
		w = minWidth
	}
	if h < minHeight {
		h = minHeight
	}

	if m.showHelp {
		return placeOverlay(m.renderHelpModal(), w, h)
	}

	if m.form.active {
		return placeOverlay(m.renderFormModal(), w, h)
	}

	var b strings.Builder

	b.WriteString(m.renderHeader(w))
	b.WriteString("\n")

	b.WriteString(m.renderFilterBar(w))
	b.WriteString("\n")

	if m.searchActive() {
		b.WriteString(m.renderSearchBar(w))
		b.WriteString("\n")
	}

	geo := m.geometry()

	b.WriteString(m.renderWeekdayRow(geo))
	b.WriteString("\n")

	b.WriteString(m.renderGrid(geo))

	b.WriteString(m.renderFooter(w))

	return b.String()
}

func (m Model) renderHeader(width int) string {
	title := HeaderStyle.Render("Task Planner")
	month := MonthTitleStyle.Render("◀ " + m.refDate.Format("January 2006") + " ▶")

	shown := len(m.tasks.Query())
	total := m.tasks.Len()
	counts := HeaderCountStyle.Render(fmt.Sprintf("%d/%d tasks", shown, total))

	status := ""
	if m.statusMsg != "" && m.now().Before(m.statusTimeout) {
		status = "  " + StatusStyle.Render(m.statusMsg)
	}

	gap := width - lipgloss.Width(title) - lipgloss.Width(month) - lipgloss.Width(counts) - lipgloss.Width(status)
	if gap < 2 {
		gap = 2
	}
	left := gap / 2
	right := gap - left

	return title + strings.Repeat(" ", left) + month + strings.Repeat(" ", right) + status + counts
}

func (m Model) renderFilterBar(width int) string {
	crit := m.tasks.Criteria()

	var chips []string
	for i, c := range task.Categories {
		label := fmt.Sprintf("%d %s", i+1, c)
		if crit.Categories[c] {
			chips = append(chips, FilterOnStyle.Render(label))
		} else {
			chips = append(chips, FilterOffStyle.Render(label))
		}
	}

	frames := []struct {
		key   string
		label string
		frame dategrid.TimeFrame
	}{
		{"w", "1wk", dategrid.FrameWeek},
		{"e", "2wk", dategrid.FrameTwoWeeks},
		{"r", "3wk", dategrid.FrameThreeWeeks},
	}
	for _, f := range frames {
		label := f.key + " " + f.label
		if crit.Frame == f.frame {
			chips = append(chips, FilterOnStyle.Render(label))
		} else {
			chips = append(chips, FilterOffStyle.Render(label))
		}
	}

	line := strings.Join(chips, " ")
	if lipgloss.Width(line) < width {
		line += strings.Repeat(" ", width-lipgloss.Width(line))
	}
	return line
}

func (m Model) renderSearchBar(width int) string {
	query := m.tasks.Criteria().Search

	prefix := SearchBarStyle.Render(" / ")
	text := SearchBarStyle.Render(query)
	cursor := ""
	if m.isSearching {
		cursor = SearchBarStyle.Render("█")
	}

	countStr := ""
	if query != "" {
		countStr = SearchCountStyle.Render(fmt.Sprintf(" %d matches", len(m.tasks.Query())))
	}

	left := prefix + text + cursor
	padWidth := width - lipgloss.Width(left) - lipgloss.Width(countStr)
	if padWidth < 1 {
		padWidth = 1
	}

	return left + strings.Repeat(" ", padWidth) + countStr
}

func (m Model) renderWeekdayRow(geo Geometry) string {
	var b strings.Builder
	for _, name := range weekdayNames {
		b.WriteString(WeekdayStyle.Render(padTruncate(" "+name, geo.CellWidth)))
	}
	return b.String()
}

func (m Model) renderGrid(geo Geometry) string {
	byCell := grid.SegmentsByCell(m.visibleSegments(), len(m.cells))
	selStart, selEnd, selecting := m.gestures.SelectionRange()

	var b strings.Builder
	for week := 0; week < geo.Weeks; week++ {
		for row := 0; row < geo.CellHeight; row++ {
			for col := 0; col < 7; col++ {
				i := week*7 + col
				selected := selecting && !m.cells[i].Date.Before(selStart) && !m.cells[i].Date.After(selEnd)
				b.WriteString(m.renderCellLine(geo, m.cells[i], byCell[i], row, selected))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderCellLine renders one screen line of one cell, exactly CellWidth
// columns wide. Row 0 is the day number; the rows below it are segment
// slots, the last of which collapses into a "+N more" marker on overflow.
func (m Model) renderCellLine(geo Geometry, cell dategrid.Cell, segs []grid.Segment, row int, selected bool) string {
	if row == 0 {
		num := fmt.Sprintf(" %2d", cell.Date.Day())
		rest := padTruncate("", geo.CellWidth-len(num))

		var numStyle lipgloss.Style
		switch {
		case cell.Today:
			numStyle = TodayNumStyle
		case cell.InMonth:
			numStyle = DayNumStyle
		default:
			numStyle = FillerDayNumStyle
		}
		if selected {
			return SelectionCellStyle.Render(numStyle.Background(ColorSelectionBg).Render(num) + rest)
		}
		return numStyle.Render(num) + rest
	}

	slot := row - 1
	maxSlots := geo.CellHeight - 1

	if len(segs) > maxSlots && slot == maxSlots-1 {
		more := fmt.Sprintf(" +%d more", len(segs)-(maxSlots-1))
		return FooterStyle.Render(padTruncate(more, geo.CellWidth))
	}

	if slot < len(segs) && slot < maxSlots {
		return renderSegmentLine(segs[slot], geo.CellWidth)
	}

	blank := strings.Repeat(" ", geo.CellWidth)
	if selected {
		return SelectionCellStyle.Render(blank)
	}
	return blank
}

// renderSegmentLine renders one task bar slice. The first column of a
// first-day slice and the last column of a last-day slice carry the resize
// handles, matching the hit-test layout exactly.
func renderSegmentLine(seg grid.Segment, width int) string {
	left := " "
	if seg.FirstDay {
		left = IconStartHandle
	}
	right := " "
	if seg.LastDay {
		right = IconEndHandle
	}

	body := IconContinues
	if seg.FirstDay {
		body = seg.Title
	}
	inner := padTruncate(body, width-2)

	style := SegmentStyle(seg.Category)
	if seg.Preview {
		style = PreviewSegmentStyle
	}
	return style.Render(left + inner + right)
}

func (m Model) renderFooter(width int) string {
	help := m.keys.ShortHelp()
	if m.isSearching {
		help = "type to search  enter keep filter  esc clear"
	} else if m.gestures.Active() {
		switch m.gestures.Kind() {
		case gesture.KindSelecting:
			help = "drag to extend range  release to create  esc cancel"
		case gesture.KindMoving:
			help = "drag to a new day  release to move  esc cancel"
		case gesture.KindResizing:
			help = "drag to resize  release to apply  esc cancel"
		}
	} else if m.tasks.Criteria().Search != "" {
		help = "esc clear search filter"
	}
	return FooterStyle.Render(padTruncate(help, width))
}

func (m Model) renderHelpModal() string {
	body := HelpMarkdown()
	if r := m.glamourRenderer; r != nil {
		if rendered, err := r.Render(body); err == nil {
			body = strings.TrimRight(rendered, "\n ")
		}
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("Press esc or ? to close"))
	return ModalStyle.Render(b.String())
}

func (m Model) renderFormModal() string {
	var b strings.Builder

	title := "New Task"
	if m.form.mode == formEdit {
		title = "Edit Task"
	}
	b.WriteString(ModalTitleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(ModalLabelStyle.Render("Dates"))
	b.WriteString(formatRange(m.form.start, m.form.end))
	b.WriteString("\n\n")

	b.WriteString(ModalLabelStyle.Render("Title"))
	b.WriteString(m.form.titleInput.View())
	b.WriteString("\n\n")

	b.WriteString(ModalLabelStyle.Render("Category"))
	var picks []string
	for i, c := range task.Categories {
		if i == m.form.categoryIdx {
			picks = append(picks, SegmentStyle(c).Render(" "+string(c)+" "))
		} else {
			picks = append(picks, FilterOffStyle.Render(string(c)))
		}
	}
	b.WriteString(strings.Join(picks, " "))
	b.WriteString("\n")

	if m.form.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(m.form.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hint := "enter save  ←→ category  esc cancel"
	if m.form.mode == formEdit {
		hint += "  ctrl+d delete"
	}
	b.WriteString(FooterStyle.Render(hint))

	return ModalStyle.Render(b.String())
}

// formatRange renders a date range compactly, collapsing a single-day range
// to one date.
func formatRange(start, end time.Time) string {
	if dategrid.SameDay(start, end) {
		return start.Format("Mon, Jan 2 2006")
	}
	if start.Year() == end.Year() {
		return start.Format("Jan 2") + " – " + end.Format("Jan 2 2006")
	}
	return start.Format("Jan 2 2006") + " – " + end.Format("Jan 2 2006")
}

// padTruncate pads s with spaces, or truncates it, to exactly width cells.
func padTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) > width {
		if width == 1 {
			return IconContinues
		}
		return string(runes[:width-1]) + IconContinues
	}
	return s + strings.Repeat(" ", width-len(runes))
}

func placeOverlay(modal string, width, height int) string {
	modalLines := strings.Split(modal, "\n")

	topPadding := (height - len(modalLines)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	leftPadding := (width - lipgloss.Width(modalLines[0])) / 2
	if leftPadding < 0 {
		leftPadding = 0
	}

	var result strings.Builder
	for i := 0; i < topPadding; i++ {
		result.WriteString("\n")
	}

	for _, line := range modalLines {
		result.WriteString(strings.Repeat(" ", leftPadding))
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}
