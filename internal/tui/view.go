package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"apptrack/internal/client"
	"apptrack/internal/tracker"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F8FAFC"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CBD5E1")).Bold(true)

	connectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	disconnectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))

	pillStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#94A3B8"))
	activePillStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Background(lipgloss.Color("#3B82F6")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	selectedRowStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(lipgloss.Color("#3B82F6")).
				PaddingLeft(1)
	rowStyle = lipgloss.NewStyle().PaddingLeft(2)

	formBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#334155")).
			Padding(1, 2)

	successToastStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Background(lipgloss.Color("#059669")).
				Foreground(lipgloss.Color("#FFFFFF"))
	errorToastStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Background(lipgloss.Color("#DC2626")).
			Foreground(lipgloss.Color("#FFFFFF"))
)

// statusColor is the on-screen accent per status, matching the export
// palette.
var statusColor = map[tracker.Status]string{
	tracker.StatusSaved:       "#6B7280",
	tracker.StatusApplied:     "#2563EB",
	tracker.StatusPhoneScreen: "#7C3AED",
	tracker.StatusInterview:   "#D97706",
	tracker.StatusOffer:       "#059669",
	tracker.StatusRejected:    "#DC2626",
	tracker.StatusWithdrawn:   "#9CA3AF",
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.viewStats())
	b.WriteString("\n")

	if m.state.FormVisible {
		b.WriteString(m.viewForm())
	} else {
		b.WriteString(m.viewFilters())
		b.WriteString("\n\n")
		b.WriteString(m.viewList())
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("a add · e edit · d delete · r refresh · x export · ←/→ filter · q quit"))
	}

	if n := m.state.Notice; n != nil {
		style := successToastStyle
		if n.Kind == client.NoticeError {
			style = errorToastStyle
		}
		b.WriteString("\n\n")
		b.WriteString(style.Render(n.Text))
	}

	b.WriteString("\n")
	return b.String()
}

func (m Model) viewHeader() string {
	conn := disconnectedStyle.Render("● disconnected")
	if m.state.Connected {
		conn = connectedStyle.Render("● connected")
	}
	return titleStyle.Render("Application Tracker") + "  " +
		subtitleStyle.Render("track your job and internship applications") + "  " + conn
}

func (m Model) viewStats() string {
	st := m.state.Stats()
	return subtitleStyle.Render(fmt.Sprintf(
		"Total %d · Active %d · Interviews %d · Offers %d",
		st.Total, st.Active, st.Interviews, st.Offers,
	))
}

func (m Model) viewFilters() string {
	var pills []string
	for _, f := range filters() {
		if f == m.state.Filter {
			pills = append(pills, activePillStyle.Render(f))
		} else {
			pills = append(pills, pillStyle.Render(f))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, pills...)
}

func (m Model) viewList() string {
	visible := m.state.Visible()
	if len(visible) == 0 {
		if m.state.Filter == client.FilterAll {
			return dimStyle.Render("No applications yet. Press a to add one.")
		}
		return dimStyle.Render(fmt.Sprintf("No %s applications.", strings.ToLower(m.state.Filter)))
	}

	var rows []string
	for i, r := range visible {
		status := lipgloss.NewStyle().
			Foreground(lipgloss.Color(statusColor[r.Status])).
			Bold(true).
			Render(string(r.Status))

		line := fmt.Sprintf("%s — %s  %s  %s", titleStyle.Render(r.Company), r.Role, status, dimStyle.Render(string(r.Type)))
		var details []string
		if r.Location != "" {
			details = append(details, r.Location)
		}
		if r.Salary != "" {
			details = append(details, r.Salary)
		}
		if r.Notes != "" {
			details = append(details, truncate(r.Notes, 40))
		}
		if len(details) > 0 {
			line += "\n" + dimStyle.Render(strings.Join(details, " · "))
		}

		if i == m.cursor {
			rows = append(rows, selectedRowStyle.Render(line))
		} else {
			rows = append(rows, rowStyle.Render(line))
		}
	}
	return strings.Join(rows, "\n")
}

func (m Model) viewForm() string {
	heading := "New Application"
	if m.state.EditID != "" {
		heading = "Edit Application"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(heading))
	b.WriteString("\n\n")

	for field := 0; field < fieldCount; field++ {
		label := fieldLabels[field]
		if field == m.focus {
			label = "› " + label
		} else {
			label = "  " + label
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString("\n")

		if slot := textFields[field]; slot >= 0 {
			b.WriteString("  " + m.inputs[slot].View())
		} else {
			value := string(m.state.Form.Type)
			if field == fieldStatus {
				value = string(m.state.Form.Status)
			}
			b.WriteString("  " + subtitleStyle.Render("◂ "+value+" ▸"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("tab next field · ←/→ change selection · enter save · esc cancel"))

	return formBoxStyle.Render(b.String())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
