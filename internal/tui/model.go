// Package tui is the interactive form/list front end over the client state
// controller. All state transitions flow through controller reducers; the
// bubbletea loop serializes user actions and network completions.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"apptrack/internal/client"
	"apptrack/internal/tracker"
)

// Form field order. Company through role are text inputs; type and status
// cycle through their enums with the arrow keys.
const (
	fieldCompany = iota
	fieldRole
	fieldType
	fieldStatus
	fieldLocation
	fieldSalary
	fieldLink
	fieldNotes
	fieldCount
)

// textFields maps form field index to text input slot; -1 marks enum fields.
var textFields = [fieldCount]int{0, 1, -1, -1, 2, 3, 4, 5}

var fieldLabels = [fieldCount]string{
	"Company *", "Role *", "Type", "Status", "Location", "Salary", "Link", "Notes",
}

// stateMsg carries the next client state out of a controller reducer that
// ran off the interaction loop.
type stateMsg client.State

// exportedMsg reports the outcome of a spreadsheet export.
type exportedMsg struct {
	filename string
	err      error
}

// tickMsg drives notice expiry.
type tickMsg time.Time

// Model is the bubbletea model for the tracker UI.
type Model struct {
	ctrl  *client.Controller
	state client.State

	inputs []textinput.Model
	focus  int

	cursor   int
	width    int
	height   int
	quitting bool
}

// New builds the UI over the given controller.
func New(ctrl *client.Controller) Model {
	inputs := make([]textinput.Model, 6)
	placeholders := []string{"Google", "Software Engineer", "San Francisco, CA", "$120k - $150k", "https://careers.example.com/...", "Interview tips, contacts, referral info..."}
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 256
		ti.Width = 44
		inputs[i] = ti
	}

	return Model{
		ctrl:   ctrl,
		state:  client.NewState(),
		inputs: inputs,
	}
}

// Init fetches the list on mount and starts the notice ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) refreshCmd() tea.Cmd {
	ctrl, s := m.ctrl, m.state
	return func() tea.Msg {
		return stateMsg(ctrl.Refresh(context.Background(), s))
	}
}

func (m Model) submitCmd() tea.Cmd {
	ctrl, s := m.ctrl, m.state
	return func() tea.Msg {
		return stateMsg(ctrl.Submit(context.Background(), s))
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	ctrl, s := m.ctrl, m.state
	return func() tea.Msg {
		return stateMsg(ctrl.Delete(context.Background(), s, id))
	}
}

// syncForm copies the text inputs and the cycled enums back into the draft.
func (m *Model) syncForm() {
	f := &m.state.Form
	f.Company = m.inputs[0].Value()
	f.Role = m.inputs[1].Value()
	f.Location = m.inputs[2].Value()
	f.Salary = m.inputs[3].Value()
	f.Link = m.inputs[4].Value()
	f.Notes = m.inputs[5].Value()
}

// loadForm fills the text inputs from the draft when the form opens.
func (m *Model) loadForm() {
	f := m.state.Form
	values := []string{f.Company, f.Role, f.Location, f.Salary, f.Link, f.Notes}
	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
		m.inputs[i].Blur()
	}
	m.focus = fieldCompany
	m.inputs[0].Focus()
}

// cycleType steps the draft's type through the enum.
func (m *Model) cycleType(delta int) {
	m.state.Form.Type = cycle(tracker.Types, m.state.Form.Type, delta)
}

// cycleStatus steps the draft's status through the enum.
func (m *Model) cycleStatus(delta int) {
	m.state.Form.Status = cycle(tracker.Statuses, m.state.Form.Status, delta)
}

func cycle[T comparable](values []T, current T, delta int) T {
	for i, v := range values {
		if v == current {
			return values[((i+delta)%len(values)+len(values))%len(values)]
		}
	}
	return values[0]
}

// filters returns the filter pill labels: All plus every status.
func filters() []string {
	out := []string{client.FilterAll}
	for _, s := range tracker.Statuses {
		out = append(out, string(s))
	}
	return out
}

// cycleFilter moves the active filter one step through the pill row.
func (m *Model) cycleFilter(delta int) {
	fs := filters()
	for i, f := range fs {
		if f == m.state.Filter {
			next := ((i+delta)%len(fs) + len(fs)) % len(fs)
			m.state = m.ctrl.SetFilter(m.state, fs[next])
			m.cursor = 0
			return
		}
	}
}
