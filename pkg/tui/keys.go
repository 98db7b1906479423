package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the TUI.
type KeyMap struct {
	PrevMonth    key.Binding
	NextMonth    key.Binding
	Today        key.Binding
	NewTask      key.Binding
	Search       key.Binding
	ClearFilters key.Binding
	FilterToDo   key.Binding
	FilterInProg key.Binding
	FilterReview key.Binding
	FilterDone   key.Binding
	FrameWeek    key.Binding
	FrameTwo     key.Binding
	FrameThree   key.Binding
	Reload       key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevMonth: key.NewBinding(
			key.WithKeys("left", "h", "["),
			key.WithHelp("←/h", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("right", "l", "]"),
			key.WithHelp("→/l", "next month"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "jump to today"),
		),
		NewTask: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new task today"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),
		FilterToDo: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "toggle todo"),
		),
		FilterInProg: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "toggle in-progress"),
		),
		FilterReview: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "toggle review"),
		),
		FilterDone: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "toggle completed"),
		),
		FrameWeek: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "filter next week"),
		),
		FrameTwo: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "filter next 2 weeks"),
		),
		FrameThree: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "filter next 3 weeks"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the footer help text.
func (k KeyMap) ShortHelp() string {
	return "drag empty create  drag task move  drag ◀▶ resize  ←→ month  / search  1-4 w/e/r filter  ? help"
}

// HelpMarkdown returns the help modal body.
func HelpMarkdown() string {
	return `# Task Planner

## Mouse

- **Drag across empty cells** to select a date range and create a task
- **Click a task** to edit its title and category
- **Drag a task** to move it; its duration is preserved
- **Drag the ◀ / ▶ edge handles** to resize a task's start or end
- **Wheel** scrolls between months

## Keys

| Key | Action |
| --- | ------ |
| ←/h, →/l | previous / next month |
| t | jump to today |
| n | new task on today |
| / | live search (esc clears) |
| 1-4 | toggle category filter |
| w / e / r | next 1 / 2 / 3 weeks (again to clear) |
| c | clear all filters |
| R | reload from disk |
| q | quit |

Dragging can always be abandoned with esc; nothing is saved until a
gesture commits.
`
}
