package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/booksearch/internal/cover"
	"github.com/five82/booksearch/internal/logtail"
	"github.com/five82/booksearch/internal/prefs"
	"github.com/five82/booksearch/internal/search"
	"github.com/five82/booksearch/internal/view"
)

// Messages

type searchResultMsg struct {
	result search.Result
}

type coverMsg struct {
	id  int64
	art string
	err error
}

type statusMsg struct {
	text string
	err  bool
}

type clearStatusMsg struct {
	seq int
}

type logTailMsg struct {
	lines []string
	err   error
}

type diagTickMsg time.Time

// Commands

// searchCmd runs req off the UI loop. The result is applied in Update.
func searchCmd(ctx context.Context, c *search.Controller, req search.Request) tea.Cmd {
	return func() tea.Msg {
		return searchResultMsg{result: c.Run(ctx, req)}
	}
}

func coverCmd(ctx context.Context, f cover.Fetcher, id int64) tea.Cmd {
	return func() tea.Msg {
		fetchCtx, cancel := context.WithTimeout(ctx, CoverFetchTimeout)
		defer cancel()
		art, err := cover.Load(fetchCtx, f, id, CoverColumns, CoverRows)
		return coverMsg{id: id, art: art, err: err}
	}
}

func openRecordCmd(p *view.Projector, key string) tea.Cmd {
	return func() tea.Msg {
		if err := p.OpenExternalRecord(key); err != nil {
			return statusMsg{text: "Could not open browser: " + err.Error(), err: true}
		}
		return statusMsg{text: "Opened in browser"}
	}
}

func copyRecordCmd(p *view.Projector, key string) tea.Cmd {
	return func() tea.Msg {
		if err := p.CopyRecordURL(key); err != nil {
			return statusMsg{text: "Could not copy link: " + err.Error(), err: true}
		}
		return statusMsg{text: "Link copied"}
	}
}

func savePrefsCmd(path string, p prefs.Prefs) tea.Cmd {
	return func() tea.Msg {
		if err := prefs.Save(path, p); err != nil {
			return statusMsg{text: "Could not save theme: " + err.Error(), err: true}
		}
		return statusMsg{text: "Theme: " + p.Theme}
	}
}

func clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(StatusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func readLogTailCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, DiagnosticsLines)
		return logTailMsg{lines: lines, err: err}
	}
}

func diagTickCmd() tea.Cmd {
	return tea.Tick(DiagnosticsRefresh, func(t time.Time) tea.Msg {
		return diagTickMsg(t)
	})
}
