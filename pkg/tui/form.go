package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/suhan647/task-planner/pkg/task"
)

type formMode int

const (
	formCreate formMode = iota
	formEdit
)

// formState holds the create/edit modal. The date range comes from the
// gesture that opened the form and is not editable here; title and category
// are.
type formState struct {
	active      bool
	mode        formMode
	titleInput  textinput.Model
	categoryIdx int
	start       time.Time
	end         time.Time
	taskID      string
	errMsg      string
}

func newFormState() formState {
	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 120
	ti.Width = 40
	return formState{titleInput: ti}
}

// openCreateForm opens the modal for a new task on the given date range.
func (m *Model) openCreateForm(start, end time.Time) {
	m.form = newFormState()
	m.form.active = true
	m.form.mode = formCreate
	m.form.start = start
	m.form.end = end
	m.form.titleInput.Focus()
}

// openEditForm opens the modal pre-filled with an existing task.
func (m *Model) openEditForm(t task.Task) {
	m.form = newFormState()
	m.form.active = true
	m.form.mode = formEdit
	m.form.start = t.StartDate
	m.form.end = t.EndDate
	m.form.taskID = t.ID
	m.form.titleInput.SetValue(t.Title)
	m.form.titleInput.Focus()
	for i, c := range task.Categories {
		if c == t.Category {
			m.form.categoryIdx = i
		}
	}
}

func (m *Model) closeForm() {
	m.form = newFormState()
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeForm()
		return m, nil

	case tea.KeyEnter:
		return m.submitForm()

	case tea.KeyLeft:
		m.form.categoryIdx--
		if m.form.categoryIdx < 0 {
			m.form.categoryIdx = len(task.Categories) - 1
		}
		return m, nil

	case tea.KeyRight:
		m.form.categoryIdx = (m.form.categoryIdx + 1) % len(task.Categories)
		return m, nil

	case tea.KeyCtrlD:
		if m.form.mode == formEdit {
			return m.deleteFormTask()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.form.titleInput, cmd = m.form.titleInput.Update(msg)
	return m, cmd
}

// submitForm validates and applies the form. A validation failure keeps the
// modal open with an inline error so the input is not lost.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	category := task.Categories[m.form.categoryIdx]

	switch m.form.mode {
	case formCreate:
		t := task.New(m.form.titleInput.Value(), category, m.form.start, m.form.end)
		if err := m.tasks.Add(t); err != nil {
			if errors.Is(err, task.ErrEmptyTitle) {
				m.form.errMsg = "Title must not be empty"
				return m, nil
			}
			m.form.errMsg = err.Error()
			return m, nil
		}
		m.closeForm()
		m.setStatus("Created " + t.Title)
		return m, m.saveCmd()

	case formEdit:
		t, ok := m.tasks.Get(m.form.taskID)
		if !ok {
			m.closeForm()
			m.setStatus("Error: " + task.ErrNotFound.Error())
			return m, nil
		}
		t.Title = m.form.titleInput.Value()
		t.Category = category
		if err := m.tasks.Update(t); err != nil {
			if errors.Is(err, task.ErrEmptyTitle) {
				m.form.errMsg = "Title must not be empty"
				return m, nil
			}
			m.form.errMsg = err.Error()
			return m, nil
		}
		m.closeForm()
		m.setStatus("Updated " + t.Title)
		return m, m.saveCmd()
	}

	return m, nil
}

func (m Model) deleteFormTask() (tea.Model, tea.Cmd) {
	id := m.form.taskID
	m.closeForm()
	if err := m.tasks.Remove(id); err != nil {
		m.setStatus("Error: " + err.Error())
		return m, nil
	}
	m.setStatus("Deleted")
	return m, m.saveCmd()
}
