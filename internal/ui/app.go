// Package ui provides the Bubble Tea TUI for booksearch.
package ui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/booksearch/internal/cover"
	"github.com/five82/booksearch/internal/prefs"
	"github.com/five82/booksearch/internal/search"
	"github.com/five82/booksearch/internal/view"
)

// focusArea is the component receiving keystrokes.
type focusArea int

const (
	focusInput focusArea = iota
	focusGrid
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *search.Controller
	Projector  *view.Projector
	// Covers downloads cover art for the detail modal. Nil disables covers.
	Covers    cover.Fetcher
	Logger    *slog.Logger
	LogPath   string
	PrefsPath string
	Prefs     prefs.Prefs
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	controller *search.Controller
	projector  *view.Projector
	covers     cover.Fetcher
	logger     *slog.Logger
	logPath    string
	prefsPath  string
	prefs      prefs.Prefs

	// UI state
	keys   keyMap
	help   help.Model
	theme  Theme
	width  int
	height int
	ready  bool
	focus  focusArea
	cursor int

	input   textinput.Model
	spinner spinner.Model

	// Detail modal
	detailViewport viewport.Model
	detailKey      string
	coverArt       map[int64]string
	coverFailed    map[int64]bool

	// Overlays
	showHelp        bool
	showDiagnostics bool
	diagViewport    viewport.Model
	diagLines       []string

	// Footer status line
	status    string
	statusErr bool
	statusSeq int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	userPrefs := opts.Prefs
	if strings.TrimSpace(userPrefs.Theme) == "" {
		userPrefs = prefs.Default()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	input := textinput.New()
	input.Placeholder = "Search for books by title..."
	input.Prompt = "› "
	input.CharLimit = 256
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:         ctx,
		controller:  opts.Controller,
		projector:   opts.Projector,
		covers:      opts.Covers,
		logger:      logger.With("component", "ui"),
		logPath:     opts.LogPath,
		prefsPath:   prefsPath,
		prefs:       userPrefs,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		input:       input,
		spinner:     sp,
		focus:       focusInput,
		coverArt:    make(map[int64]string),
		coverFailed: make(map[int64]bool),
	}
	m.applyTheme(GetTheme(userPrefs.Theme))
	m.prefs.Theme = m.theme.Name
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.controller.Snapshot().IsLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case searchResultMsg:
		return m.handleSearchResult(msg)

	case coverMsg:
		if msg.err != nil {
			m.coverFailed[msg.id] = true
			m.logger.Debug("cover unavailable", "cover_id", msg.id, "error", msg.err)
		} else {
			m.coverArt[msg.id] = msg.art
		}
		m.refreshDetail()
		return m, nil

	case statusMsg:
		return m.setStatus(msg.text, msg.err)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case logTailMsg:
		m.handleLogTail(msg)
		return m, nil

	case diagTickMsg:
		if !m.showDiagnostics {
			return m, nil
		}
		return m, tea.Batch(readLogTailCmd(m.logPath), diagTickCmd())
	}

	if m.focus == focusInput {
		return m.updateInput(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showDiagnostics {
		return m.renderDiagnostics()
	}

	frame := m.projector.Frame()
	if frame.Detail != nil {
		return m.renderDetail(*frame.Detail)
	}
	return m.renderMain(frame)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.CycleTheme):
		return m.cycleTheme()
	case key.Matches(msg, m.keys.Diagnostics):
		return m.toggleDiagnostics()
	}

	if m.showDiagnostics {
		return m.handleDiagnosticsKey(msg)
	}

	frame := m.projector.Frame()
	if frame.Detail != nil {
		return m.handleDetailKey(msg, *frame.Detail)
	}

	if key.Matches(msg, m.keys.Focus) {
		m.toggleFocus(frame)
		return m, nil
	}

	if m.focus == focusGrid {
		return m.handleGridKey(msg, frame)
	}

	if key.Matches(msg, m.keys.Submit) {
		return m.submit(frame)
	}
	return m.updateInput(msg)
}

// updateInput forwards msg to the text input and mirrors its value into the
// search state.
func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.controller.SetQuery(after)
	}
	return m, cmd
}

// submit starts a search for the current input when allowed.
func (m Model) submit(frame view.Frame) (tea.Model, tea.Cmd) {
	if !frame.CanSubmit {
		return m, nil
	}
	req, ok := m.controller.Submit(m.input.Value())
	if !ok {
		return m, nil
	}
	m.cursor = 0
	return m, tea.Batch(m.spinner.Tick, searchCmd(m.ctx, m.controller, req))
}

// handleSearchResult folds a finished request into the state.
func (m Model) handleSearchResult(msg searchResultMsg) (tea.Model, tea.Cmd) {
	if !m.controller.Apply(msg.result) {
		return m, nil
	}
	frame := m.projector.Frame()
	m.cursor = clamp(m.cursor, 0, len(frame.Cards)-1)
	if frame.Mode != view.ModeGrid && m.focus == focusGrid {
		m.setFocus(focusInput)
	}
	return m, nil
}

// toggleFocus moves focus between the input and the grid. The grid only
// takes focus when it has cards.
func (m *Model) toggleFocus(frame view.Frame) {
	if m.focus == focusGrid {
		m.setFocus(focusInput)
		return
	}
	if frame.Mode == view.ModeGrid {
		m.setFocus(focusGrid)
	}
}

func (m *Model) setFocus(area focusArea) {
	m.focus = area
	if area == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// cycleTheme switches to the next theme and persists the choice.
func (m Model) cycleTheme() (tea.Model, tea.Cmd) {
	m.applyTheme(GetTheme(NextTheme(m.theme.Name)))
	m.prefs.Theme = m.theme.Name
	m.refreshDetail()
	return m, savePrefsCmd(m.prefsPath, m.prefs)
}

func (m *Model) applyTheme(theme Theme) {
	m.theme = theme
	styles := theme.Styles()
	m.input.PromptStyle = styles.AccentText
	m.input.TextStyle = styles.Text
	m.input.PlaceholderStyle = styles.FaintText
	m.spinner.Style = styles.AccentText
	m.help.Styles.ShortKey = styles.WarningText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
	m.help.Styles.FullKey = styles.WarningText
	m.help.Styles.FullDesc = styles.Text
	m.help.Styles.FullSeparator = styles.FaintText
}

// setStatus shows text in the footer until StatusTTL passes or another
// status replaces it.
func (m Model) setStatus(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.statusSeq++
	m.status = text
	m.statusErr = isErr
	return m, clearStatusCmd(m.statusSeq)
}

// resize applies the terminal size to the sized components.
func (m *Model) resize() {
	m.input.Width = max(10, m.width-6)
	m.help.Width = m.width
	m.refreshDetail()
	m.refreshDiagnostics()
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
