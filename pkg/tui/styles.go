package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/suhan647/task-planner/pkg/task"
)

// Color palette
var (
	ColorPurple      = lipgloss.Color("#7D56F4")
	ColorGreen       = lipgloss.Color("#25A065")
	ColorBlue        = lipgloss.Color("#4285F4")
	ColorRed         = lipgloss.Color("#E05252")
	ColorYellow      = lipgloss.Color("#E5C07B")
	ColorGray        = lipgloss.Color("#626262")
	ColorGrayDim     = lipgloss.Color("#404040")
	ColorWhite       = lipgloss.Color("#FFFFFF")
	ColorOffWhite    = lipgloss.Color("#D0D0D0")
	ColorMagenta     = lipgloss.Color("#C678DD")
	ColorCyan        = lipgloss.Color("#56B6C2")
	ColorOrange      = lipgloss.Color("#D19A66")
	ColorSelectionBg = lipgloss.Color("#2D3B4D")
	ColorPreviewBg   = lipgloss.Color("#3E2F1F")
)

// Header and footer styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)

	HeaderCountStyle = lipgloss.NewStyle().
				Foreground(ColorGray)

	MonthTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)
)

// Grid styles
var (
	WeekdayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorGray)

	DayNumStyle = lipgloss.NewStyle().
			Foreground(ColorOffWhite)

	FillerDayNumStyle = lipgloss.NewStyle().
				Foreground(ColorGrayDim)

	TodayNumStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Background(ColorPurple)

	SelectionCellStyle = lipgloss.NewStyle().
				Background(ColorSelectionBg)
)

// Task segment styles, one per category.
var categoryStyles = map[task.Category]lipgloss.Style{
	task.CategoryToDo:       lipgloss.NewStyle().Foreground(ColorWhite).Background(ColorBlue),
	task.CategoryInProgress: lipgloss.NewStyle().Foreground(ColorWhite).Background(ColorOrange),
	task.CategoryReview:     lipgloss.NewStyle().Foreground(ColorWhite).Background(ColorMagenta),
	task.CategoryCompleted:  lipgloss.NewStyle().Foreground(ColorWhite).Background(ColorGreen),
}

// SegmentStyle returns the bar style for a category.
func SegmentStyle(c task.Category) lipgloss.Style {
	if s, ok := categoryStyles[c]; ok {
		return s
	}
	return lipgloss.NewStyle().Foreground(ColorWhite).Background(ColorGray)
}

// PreviewSegmentStyle is used while a segment reflects live gesture dates.
var PreviewSegmentStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorPreviewBg)

// Filter bar styles
var (
	FilterOnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Background(ColorPurple).
			Padding(0, 1)

	FilterOffStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Padding(0, 1)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPurple).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)

	ModalLabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Width(10)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)
)

// Search styles
var (
	SearchBarStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)

	SearchCountStyle = lipgloss.NewStyle().
				Foreground(ColorGray)
)

// Segment edge affordances
const (
	IconStartHandle = "◀"
	IconEndHandle   = "▶"
	IconContinues   = "…"
)
