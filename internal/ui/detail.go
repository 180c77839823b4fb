package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/booksearch/internal/view"
)

// handleDetailKey processes keyboard input while the detail modal is open.
func (m Model) handleDetailKey(msg tea.KeyMsg, detail view.Detail) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.projector.CloseDetail()
		m.detailKey = ""
		return m, nil
	case key.Matches(msg, m.keys.Open):
		return m, openRecordCmd(m.projector, detail.Key)
	case key.Matches(msg, m.keys.Copy):
		return m, copyRecordCmd(m.projector, detail.Key)
	case key.Matches(msg, m.keys.Up):
		m.detailViewport.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		m.detailViewport.ScrollDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.detailViewport.HalfPageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.detailViewport.HalfPageDown()
	}
	return m, nil
}

func (m Model) detailWidth() int {
	return max(30, min(DetailMaxWidth, m.width-4))
}

// refreshDetail re-renders the modal body into its viewport. The scroll
// position is kept unless a different book was selected.
func (m *Model) refreshDetail() {
	if m.projector == nil || !m.ready {
		return
	}
	frame := m.projector.Frame()
	if frame.Detail == nil {
		return
	}
	width := m.detailWidth() - 6 // border and padding
	height := max(3, m.height-8)

	m.detailViewport.Width = width
	m.detailViewport.Height = height
	m.detailViewport.SetContent(m.detailBody(*frame.Detail, width))
	if m.detailKey != frame.Detail.Key {
		m.detailKey = frame.Detail.Key
		m.detailViewport.GotoTop()
	}
}

// detailBody lays out cover art beside the book fields, or stacks them on
// narrow terminals.
func (m Model) detailBody(d view.Detail, width int) string {
	styles := m.theme.Styles()
	art := m.coverBlock(d)

	infoWidth := width - CoverColumns - 2
	stacked := infoWidth < 30
	if stacked {
		infoWidth = width
	}
	info := m.detailInfo(d, infoWidth)

	if stacked {
		return lipgloss.JoinVertical(lipgloss.Left, art, "", info)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		art,
		styles.Text.Render("  "),
		info)
}

// coverBlock returns the rendered cover, or a placeholder sized like one.
func (m Model) coverBlock(d view.Detail) string {
	styles := m.theme.Styles()
	placeholder := lipgloss.NewStyle().
		Width(CoverColumns).
		Height(CoverRows).
		Align(lipgloss.Center, lipgloss.Center).
		Background(lipgloss.Color(m.theme.SurfaceAlt))

	if !d.HasCover {
		return placeholder.Render(styles.FaintText.Render("no cover"))
	}
	if art, ok := m.coverArt[d.CoverID]; ok {
		return art
	}
	if m.covers == nil || m.coverFailed[d.CoverID] {
		return placeholder.Render(styles.FaintText.Render("cover unavailable"))
	}
	return placeholder.Render(styles.MutedText.Render("loading cover..."))
}

// detailInfo renders the text fields. Absent fields are skipped.
func (m Model) detailInfo(d view.Detail, width int) string {
	styles := m.theme.Styles()
	wrap := lipgloss.NewStyle().Width(width)

	label := func(s string) string {
		return styles.AccentText.Bold(true).Render(s)
	}

	sections := []string{wrap.Render(styles.Text.Bold(true).Render(d.Title))}
	if len(d.Authors) > 0 {
		sections = append(sections, label("Author(s)")+"\n"+wrap.Render(styles.Text.Render(strings.Join(d.Authors, ", "))))
	}
	if d.HasYear {
		sections = append(sections, label("First published")+" "+styles.Text.Render(strconv.Itoa(d.Year)))
	}
	if len(d.Publishers) > 0 {
		sections = append(sections, label("Publisher(s)")+"\n"+wrap.Render(styles.Text.Render(strings.Join(d.Publishers, ", "))))
	}
	if len(d.Languages) > 0 {
		sections = append(sections, label("Language(s)")+"\n"+wrap.Render(styles.Text.Render(strings.Join(d.Languages, ", "))))
	}
	if len(d.Subjects) > 0 {
		sections = append(sections, label("Subjects")+"\n"+m.renderChips(d.Subjects, width))
	}
	sections = append(sections, styles.FaintText.Render(strings.Repeat("─", max(1, min(width, 40)))))
	sections = append(sections, label("View on Open Library")+"\n"+wrap.Render(styles.InfoText.Underline(true).Render(d.RecordURL)))

	return strings.Join(sections, "\n\n")
}

// renderChips flows subject tags across lines of at most width cells.
func (m Model) renderChips(values []string, width int) string {
	chip := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.SelectionBg)).
		Foreground(lipgloss.Color(m.theme.SelectionText)).
		Padding(0, 1)

	var lines []string
	var line []string
	lineWidth := 0
	for _, v := range values {
		rendered := chip.Render(truncate(v, max(4, width-2)))
		w := lipgloss.Width(rendered)
		if lineWidth > 0 && lineWidth+1+w > width {
			lines = append(lines, strings.Join(line, " "))
			line, lineWidth = nil, 0
		}
		if lineWidth > 0 {
			lineWidth++
		}
		line = append(line, rendered)
		lineWidth += w
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, " "))
	}
	return strings.Join(lines, "\n")
}

// renderDetail renders the modal over the screen.
func (m Model) renderDetail(d view.Detail) string {
	styles := m.theme.Styles()

	title := styles.Text.Bold(true).Render("Book Details")
	footer := m.help.ShortHelpView(m.keys.detailHelp())
	if m.status != "" {
		style := styles.SuccessText
		if m.statusErr {
			style = styles.DangerText
		}
		footer = style.Render(m.status)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		m.detailViewport.View(),
		"",
		footer,
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		styles.Modal.Width(m.detailWidth()-2).Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
