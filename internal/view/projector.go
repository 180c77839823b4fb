package view

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"

	"github.com/five82/booksearch/internal/openlibrary"
	"github.com/five82/booksearch/internal/state"
)

// Opener opens a URL outside the terminal.
type Opener interface {
	Open(url string) error
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	Write(text string) error
}

// BrowserOpener opens URLs in the default browser.
type BrowserOpener struct{}

func init() {
	// Browser launchers print to the terminal, which the TUI owns.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// Open implements Opener.
func (BrowserOpener) Open(url string) error {
	return browser.OpenURL(url)
}

// SystemClipboard writes through the platform clipboard tool.
type SystemClipboard struct{}

// Write implements Clipboard.
func (SystemClipboard) Write(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard unsupported on this system")
	}
	return clipboard.WriteAll(text)
}

// Projector performs the selection and external-link actions of the view.
type Projector struct {
	store     *state.Store
	opener    Opener
	clipboard Clipboard
	logger    *slog.Logger
}

// ProjectorOptions configure a Projector. Nil fields select the system
// browser, the system clipboard and slog.Default.
type ProjectorOptions struct {
	Opener    Opener
	Clipboard Clipboard
	Logger    *slog.Logger
}

// NewProjector builds a Projector over store.
func NewProjector(store *state.Store, opts ProjectorOptions) *Projector {
	p := &Projector{
		store:     store,
		opener:    opts.Opener,
		clipboard: opts.Clipboard,
		logger:    opts.Logger,
	}
	if p.opener == nil {
		p.opener = BrowserOpener{}
	}
	if p.clipboard == nil {
		p.clipboard = SystemClipboard{}
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	p.logger = p.logger.With("component", "view")
	return p
}

// Frame projects the current state.
func (p *Projector) Frame() Frame {
	return Project(p.store.Snapshot())
}

// SelectCard opens the detail view for book. Query, results and flags are
// left alone.
func (p *Projector) SelectCard(book openlibrary.Book) {
	p.store.Select(book)
	p.logger.Debug("book selected", "key", book.Key)
}

// CloseDetail dismisses the detail view.
func (p *Projector) CloseDetail() {
	p.store.ClearSelection()
}

// OpenExternalRecord opens the Open Library page for key. State is not
// changed.
func (p *Projector) OpenExternalRecord(key string) error {
	url, err := recordURL(key)
	if err != nil {
		return err
	}
	if err := p.opener.Open(url); err != nil {
		p.logger.Warn("open record failed", "url", url, "error", err)
		return fmt.Errorf("open %s: %w", url, err)
	}
	p.logger.Info("record opened", "url", url)
	return nil
}

// CopyRecordURL copies the Open Library page URL for key to the clipboard.
func (p *Projector) CopyRecordURL(key string) error {
	url, err := recordURL(key)
	if err != nil {
		return err
	}
	if err := p.clipboard.Write(url); err != nil {
		p.logger.Warn("copy record url failed", "url", url, "error", err)
		return fmt.Errorf("copy %s: %w", url, err)
	}
	return nil
}

func recordURL(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("record key is empty")
	}
	return openlibrary.RecordURL(key), nil
}
