package tui

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"apptrack/internal/client"
	"apptrack/internal/export"
)

// Update is the event loop: each key press or network completion runs to
// completion before the next is processed.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.state = m.state.ClearExpiredNotice(time.Time(msg))
		return m, tick()

	case stateMsg:
		m.state = client.State(msg)
		if !m.state.FormVisible {
			m.clampCursor()
		}
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.state = m.ctrl.Notify(m.state, "Export failed", client.NoticeError)
		} else {
			m.state = m.ctrl.Notify(m.state, "Exported to "+msg.filename, client.NoticeSuccess)
		}
		return m, nil

	case tea.KeyMsg:
		if m.state.FormVisible {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.state.Visible()

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(visible)-1 {
			m.cursor++
		}

	case "left", "h":
		m.cycleFilter(-1)

	case "right", "l", "tab":
		m.cycleFilter(1)

	case "a":
		m.state = m.ctrl.StartCompose(m.state)
		m.loadForm()

	case "e", "enter":
		if m.cursor < len(visible) {
			m.state = m.ctrl.StartEdit(m.state, visible[m.cursor].ID)
			m.loadForm()
		}

	case "d":
		if m.cursor < len(visible) {
			return m, m.deleteCmd(visible[m.cursor].ID)
		}

	case "r":
		return m, m.refreshCmd()

	case "x":
		if len(m.state.Records) > 0 {
			return m, m.exportCmd()
		}
	}

	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = m.ctrl.Cancel(m.state)
		return m, nil

	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "tab", "down":
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil

	case "shift+tab", "up":
		m.setFocus((m.focus - 1 + fieldCount) % fieldCount)
		return m, nil

	case "left":
		switch m.focus {
		case fieldType:
			m.cycleType(-1)
			return m, nil
		case fieldStatus:
			m.cycleStatus(-1)
			return m, nil
		}

	case "right":
		switch m.focus {
		case fieldType:
			m.cycleType(1)
			return m, nil
		case fieldStatus:
			m.cycleStatus(1)
			return m, nil
		}

	case "enter":
		// Ignore repeat presses while a submit is still in flight.
		if m.state.Busy {
			return m, nil
		}
		m.syncForm()
		m.state.Busy = true
		return m, m.submitCmd()
	}

	// Everything else edits the focused text input.
	if slot := textFields[m.focus]; slot >= 0 {
		var cmd tea.Cmd
		m.inputs[slot], cmd = m.inputs[slot].Update(msg)
		m.syncForm()
		return m, cmd
	}
	return m, nil
}

func (m *Model) setFocus(focus int) {
	if slot := textFields[m.focus]; slot >= 0 {
		m.inputs[slot].Blur()
	}
	m.focus = focus
	if slot := textFields[m.focus]; slot >= 0 {
		m.inputs[slot].Focus()
	}
}

func (m *Model) clampCursor() {
	if n := len(m.state.Visible()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// exportCmd writes the current snapshot to a dated workbook in the working
// directory. The transform sees only the in-memory list.
func (m Model) exportCmd() tea.Cmd {
	records := m.state.Records
	return func() tea.Msg {
		name := export.Filename(time.Now())
		f, err := export.Workbook(records)
		if err != nil {
			return exportedMsg{err: err}
		}
		defer f.Close()
		out, err := os.Create(name)
		if err != nil {
			return exportedMsg{err: err}
		}
		defer out.Close()
		if err := f.Write(out); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{filename: name}
	}
}
