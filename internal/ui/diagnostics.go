package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/booksearch/internal/logtail"
)

// toggleDiagnostics opens or closes the log tail overlay.
func (m Model) toggleDiagnostics() (tea.Model, tea.Cmd) {
	m.showDiagnostics = !m.showDiagnostics
	if !m.showDiagnostics {
		return m, nil
	}
	m.refreshDiagnostics()
	return m, tea.Batch(readLogTailCmd(m.logPath), diagTickCmd())
}

func (m Model) handleDiagnosticsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.showDiagnostics = false
	case key.Matches(msg, m.keys.Up):
		m.diagViewport.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		m.diagViewport.ScrollDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.diagViewport.HalfPageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.diagViewport.HalfPageDown()
	case key.Matches(msg, m.keys.Top):
		m.diagViewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.diagViewport.GotoBottom()
	}
	return m, nil
}

// handleLogTail stores freshly read log lines. The view stays pinned to the
// bottom unless the user scrolled up.
func (m *Model) handleLogTail(msg logTailMsg) {
	if msg.err != nil {
		m.diagLines = []string{"log unavailable: " + msg.err.Error()}
	} else {
		m.diagLines = msg.lines
	}
	m.refreshDiagnostics()
}

func (m *Model) refreshDiagnostics() {
	if !m.ready {
		return
	}
	follow := m.diagViewport.AtBottom() || m.diagViewport.TotalLineCount() == 0
	m.diagViewport.Width = max(10, m.width-4)
	m.diagViewport.Height = max(3, m.height-4)
	m.diagViewport.SetContent(m.formatLogLines(m.diagViewport.Width))
	if follow {
		m.diagViewport.GotoBottom()
	}
}

func (m Model) formatLogLines(width int) string {
	styles := m.theme.Styles()
	if len(m.diagLines) == 0 {
		return styles.FaintText.Render("No log entries yet (" + m.logPath + ")")
	}
	out := make([]string, 0, len(m.diagLines))
	for _, raw := range m.diagLines {
		entry := logtail.Parse(raw)
		if entry.Level == "" {
			out = append(out, truncate(entry.Raw, width))
			continue
		}
		parts := []string{
			styles.FaintText.Render(entry.Time),
			styles.LevelStyle(entry.Level).Bold(true).Render(padRight(entry.Level, 5)),
			styles.Text.Render(entry.Message),
		}
		if entry.Attrs != "" {
			parts = append(parts, styles.MutedText.Render(entry.Attrs))
		}
		out = append(out, lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(parts, " ")))
	}
	return strings.Join(out, "\n")
}

func (m Model) renderDiagnostics() string {
	styles := m.theme.Styles()
	title := styles.Text.Bold(true).Render("Diagnostics") + "  " + styles.FaintText.Render(m.logPath)
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Header.Width(m.width).Render(title),
		lipgloss.NewStyle().Padding(0, 1).Render(m.diagViewport.View()),
		styles.Footer.Width(m.width).Render(m.help.ShortHelpView([]key.Binding{m.keys.Close, m.keys.PageDown, m.keys.Bottom, m.keys.Diagnostics})),
	)
}
