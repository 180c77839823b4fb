package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/five82/booksearch/internal/view"
)

// handleGridKey processes keyboard input while the grid has focus.
func (m Model) handleGridKey(msg tea.KeyMsg, frame view.Frame) (tea.Model, tea.Cmd) {
	count := len(frame.Cards)
	if count == 0 {
		m.setFocus(focusInput)
		return m, nil
	}
	cols := m.gridColumns()

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Left):
		m.cursor--
	case key.Matches(msg, m.keys.Right):
		m.cursor++
	case key.Matches(msg, m.keys.Up):
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor+cols < count {
			m.cursor += cols
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = count - 1
	case key.Matches(msg, m.keys.Select):
		return m.selectCard()
	}
	m.cursor = clamp(m.cursor, 0, count-1)
	return m, nil
}

// selectCard opens the detail modal for the card under the cursor.
func (m Model) selectCard() (tea.Model, tea.Cmd) {
	snap := m.controller.Snapshot()
	if m.cursor < 0 || m.cursor >= len(snap.Results) {
		return m, nil
	}
	book := snap.Results[m.cursor]
	m.projector.SelectCard(book)
	m.detailKey = ""
	m.refreshDetail()

	if m.covers == nil || book.CoverID == nil || *book.CoverID <= 0 {
		return m, nil
	}
	id := *book.CoverID
	if _, ok := m.coverArt[id]; ok || m.coverFailed[id] {
		return m, nil
	}
	return m, coverCmd(m.ctx, m.covers, id)
}

// gridColumns returns how many cards fit side by side.
func (m Model) gridColumns() int {
	if m.prefs.GridColumns > 0 {
		return m.prefs.GridColumns
	}
	return max(1, (m.width+CardGap)/(CardWidth+CardGap))
}

// renderMain renders the search screen.
func (m Model) renderMain(frame view.Frame) string {
	header := m.renderHeader(frame)
	input := m.renderInput()
	footer := m.renderFooter()

	avail := m.height - lipgloss.Height(header) - lipgloss.Height(input) - lipgloss.Height(footer)
	content := lipgloss.NewStyle().
		Width(m.width).
		Height(max(0, avail)).
		MaxHeight(max(0, avail)).
		Render(m.renderContent(frame, avail))

	return lipgloss.JoinVertical(lipgloss.Left, header, input, content, footer)
}

// renderHeader renders the title bar with the result summary.
func (m Model) renderHeader(frame view.Frame) string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("booksearch", styles.Logo)}
	switch frame.Mode {
	case view.ModeLoading:
		parts = append(parts, bg.Render("Searching...", styles.WarningText))
	case view.ModeEmpty:
		parts = append(parts, bg.Render(ResultSummary(frame), styles.MutedText))
	case view.ModeGrid:
		parts = append(parts, bg.Render(ResultSummary(frame), styles.SuccessText))
		if frame.NumFound > len(frame.Cards) {
			parts = append(parts, bg.Render(humanize.Comma(int64(frame.NumFound))+" matches on Open Library", styles.FaintText))
		}
	default:
		parts = append(parts, bg.Render("Open Library title search", styles.FaintText))
	}
	parts = append(parts, bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
}

// ResultSummary is the heading shown above finished results.
func ResultSummary(frame view.Frame) string {
	if len(frame.Cards) == 0 {
		return "No books found"
	}
	return fmt.Sprintf("Found %d books", len(frame.Cards))
}

// renderInput renders the search box.
func (m Model) renderInput() string {
	border := lipgloss.Color(m.theme.Border)
	if m.focus == focusInput {
		border = lipgloss.Color(m.theme.BorderFocus)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(max(10, m.width-2)).
		Render(m.input.View())
}

// renderFooter shows the transient status line, or key hints when idle.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	if m.status != "" {
		style := styles.SuccessText
		if m.statusErr {
			style = styles.DangerText
		}
		return styles.Footer.Width(m.width).Render(style.Render(m.status))
	}
	bindings := m.keys.ShortHelp()
	if m.focus == focusGrid {
		bindings = m.keys.gridHelp()
	}
	return styles.Footer.Width(m.width).Render(m.help.ShortHelpView(bindings))
}

// renderContent renders the area below the input for the current mode.
func (m Model) renderContent(frame view.Frame, height int) string {
	styles := m.theme.Styles()
	switch frame.Mode {
	case view.ModeWelcome:
		return m.centered(height,
			styles.Text.Bold(true).Render("Start your book discovery journey")+"\n\n"+
				styles.MutedText.Render("Enter a book title in the search box above to begin exploring"))
	case view.ModeLoading:
		return m.centered(height, m.spinner.View()+" "+styles.MutedText.Render("Searching Open Library..."))
	case view.ModeEmpty:
		return m.centered(height,
			styles.Text.Bold(true).Render("No books found")+"\n\n"+
				styles.MutedText.Render("Try a different title"))
	default:
		return m.renderGrid(frame.Cards, height)
	}
}

func (m Model) centered(height int, content string) string {
	return lipgloss.Place(m.width, max(1, height), lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Align(lipgloss.Center).Render(content))
}

// renderGrid lays cards out in rows, scrolled so the cursor row is visible.
func (m Model) renderGrid(cards []view.Card, height int) string {
	cols := m.gridColumns()
	rows := (len(cards) + cols - 1) / cols
	visible := max(1, height/CardHeight)

	cursorRow := m.cursor / cols
	first := 0
	if cursorRow >= visible {
		first = cursorRow - visible + 1
	}
	last := min(rows, first+visible)

	gap := strings.Repeat(" ", CardGap)
	lines := make([]string, 0, last-first)
	for row := first; row < last; row++ {
		start := row * cols
		end := min(len(cards), start+cols)
		rendered := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				rendered = append(rendered, gap)
			}
			rendered = append(rendered, m.renderCard(cards[i], i == m.cursor && m.focus == focusGrid))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderCard renders one result. Absent fields produce no line.
func (m Model) renderCard(card view.Card, focused bool) string {
	styles := m.theme.Styles()
	inner := CardWidth - 4

	body := []string{styles.Text.Bold(true).Render(truncate(card.Title, inner))}
	if len(card.Authors) > 0 {
		body = append(body, styles.MutedText.Render(truncate(strings.Join(card.Authors, ", "), inner)))
	}
	if card.HasYear {
		body = append(body, styles.FaintText.Render(strconv.Itoa(card.Year)))
	}
	if card.Cover != "" {
		body = append(body, styles.AccentText.Render(CoverBadge))
	} else {
		body = append(body, styles.FaintText.Render(NoCoverBadge))
	}

	style := styles.Card
	if focused {
		style = styles.CardFocus
	}
	return style.
		Width(CardWidth - 2).
		Height(CardHeight - 2).
		Render(strings.Join(body, "\n"))
}
