package tui

import (
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"apptrack/internal/client"
	"apptrack/internal/tracker"
)

func testModel() Model {
	ctrl := client.NewController(client.New("http://127.0.0.1:0"))
	return New(ctrl)
}

func press(m Model, key tea.KeyMsg) Model {
	next, _ := m.Update(key)
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFormOpensAndCancels(t *testing.T) {
	m := testModel()

	m = press(m, runes("a"))
	if !m.state.FormVisible {
		t.Fatal("form not visible after add")
	}
	if m.state.EditID != "" {
		t.Errorf("EditID = %q when composing fresh", m.state.EditID)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state.FormVisible {
		t.Fatal("form still visible after cancel")
	}
	if m.state.Form.Company != "" {
		t.Errorf("draft survived cancel: %+v", m.state.Form)
	}
}

func TestEditPrefillsDraft(t *testing.T) {
	m := testModel()
	m.state.Records = []tracker.Record{{
		ID:      "rec-1",
		Company: "Acme",
		Role:    "Engineer",
		Type:    tracker.TypeJob,
		Status:  tracker.StatusApplied,
	}}

	m = press(m, runes("e"))
	if !m.state.FormVisible {
		t.Fatal("form not visible after edit")
	}
	if m.state.EditID != "rec-1" {
		t.Errorf("EditID = %q, want rec-1", m.state.EditID)
	}
	if m.state.Form.Company != "Acme" || m.state.Form.Status != tracker.StatusApplied {
		t.Errorf("draft not pre-filled: %+v", m.state.Form)
	}
	if m.inputs[0].Value() != "Acme" {
		t.Errorf("company input = %q, want Acme", m.inputs[0].Value())
	}
}

func TestEnumFieldsCycle(t *testing.T) {
	m := testModel()
	m = press(m, runes("a"))

	// Move focus to the type field, then step it.
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != fieldType {
		t.Fatalf("focus = %d, want %d", m.focus, fieldType)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.state.Form.Type != tracker.TypeInternship {
		t.Errorf("type = %q after cycling, want Internship", m.state.Form.Type)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.state.Form.Type != tracker.TypeJob {
		t.Errorf("type = %q after wrapping, want Job", m.state.Form.Type)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.state.Form.Status != tracker.StatusWithdrawn {
		t.Errorf("status = %q after cycling back from Saved, want Withdrawn", m.state.Form.Status)
	}
}

func TestEnterIgnoredWhileSubmitInFlight(t *testing.T) {
	m := testModel()
	m = press(m, runes("a"))
	m.inputs[0].SetValue("Acme")
	m.inputs[1].SetValue("Engineer")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("first enter did not dispatch a submit")
	}
	if !m.state.Busy {
		t.Fatal("state not marked busy after submit")
	}

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if cmd != nil {
		t.Error("second enter dispatched another submit while one is in flight")
	}
}

func TestFilterCycles(t *testing.T) {
	m := testModel()

	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.state.Filter != string(tracker.StatusSaved) {
		t.Errorf("filter = %q, want Saved", m.state.Filter)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	m = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.state.Filter != string(tracker.StatusWithdrawn) {
		t.Errorf("filter = %q after wrapping back, want Withdrawn", m.state.Filter)
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	if got := truncate("señor development rôle", 10); got != "señor dev…" {
		t.Errorf("truncate = %q, want %q", got, "señor dev…")
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q, want unchanged", got)
	}
	if !utf8.ValidString(truncate("日本語のメモです", 5)) {
		t.Error("truncated text is not valid UTF-8")
	}
}

func TestNoticeClearsOnTick(t *testing.T) {
	m := testModel()
	now := time.Now()
	m.state.Notice = &client.Notice{Text: "saved", ExpiresAt: now.Add(-time.Second)}

	next, _ := m.Update(tickMsg(now))
	m = next.(Model)
	if m.state.Notice != nil {
		t.Error("expired notice not cleared by tick")
	}
}
