package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/booksearch/internal/config"
	"github.com/five82/booksearch/internal/cover"
	"github.com/five82/booksearch/internal/logging"
	"github.com/five82/booksearch/internal/metrics"
	"github.com/five82/booksearch/internal/openlibrary"
	"github.com/five82/booksearch/internal/prefs"
	"github.com/five82/booksearch/internal/search"
	"github.com/five82/booksearch/internal/state"
	"github.com/five82/booksearch/internal/ui"
	"github.com/five82/booksearch/internal/view"
)

// Options configure the interactive application.
type Options struct {
	ConfigPath  string
	PrefsPath   string // empty uses default ~/.config/booksearch/prefs.toml
	Theme       string // overrides the saved theme for this session
	MetricsAddr string // overrides metrics_addr from the config
	Debug       bool
}

// SearchOptions configure a one-shot search.
type SearchOptions struct {
	ConfigPath string
	Debug      bool
	JSON       bool
	Out        io.Writer
}

// session is everything a search needs, built from the config.
type session struct {
	cfg        config.Config
	logger     *slog.Logger
	closeLog   io.Closer
	client     *openlibrary.Client
	metrics    *metrics.Recorder
	store      *state.Store
	controller *search.Controller
}

func newSession(configPath string, debug bool) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.New(logging.Options{Path: cfg.LogPath(), Debug: debug})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	client, err := openlibrary.NewClient(openlibrary.Options{
		BaseURL:           cfg.APIBase,
		CoverBaseURL:      cfg.CoverBase,
		UserAgent:         cfg.UserAgent,
		Timeout:           cfg.RequestTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("init open library client: %w", err)
	}

	recorder := metrics.New()
	store := &state.Store{}
	return &session{
		cfg:      cfg,
		logger:   logger,
		closeLog: closer,
		client:   client,
		metrics:  recorder,
		store:    store,
		controller: search.New(store, client, search.Options{
			Logger:  logger,
			Metrics: recorder,
		}),
	}, nil
}

func (s *session) Close() error {
	return s.closeLog.Close()
}

// Run boots the TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	theme := strings.TrimSpace(opts.Theme)
	if theme != "" {
		if err := ui.ValidateTheme(theme); err != nil {
			return err
		}
	}

	s, err := newSession(opts.ConfigPath, opts.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		s.logger.Warn("prefs unreadable, using defaults", "error", err)
	}
	if theme != "" {
		userPrefs.Theme = ui.GetTheme(theme).Name
	}

	addr := s.cfg.MetricsAddr
	if opts.MetricsAddr != "" {
		addr = opts.MetricsAddr
	}
	if addr != "" {
		go func() {
			if err := s.metrics.Serve(ctx, addr, s.logger); err != nil {
				s.logger.Error("metrics listener stopped", "addr", addr, "error", err)
			}
		}()
	}

	var covers cover.Fetcher
	if s.cfg.Covers {
		covers = s.client
	}

	s.logger.Info("booksearch started", "api_base", s.cfg.APIBase, "theme", userPrefs.Theme)
	err = ui.Run(ui.Options{
		Context:    ctx,
		Controller: s.controller,
		Projector:  view.NewProjector(s.store, view.ProjectorOptions{Logger: s.logger}),
		Covers:     covers,
		Logger:     s.logger,
		LogPath:    s.cfg.LogPath(),
		PrefsPath:  opts.PrefsPath,
		Prefs:      userPrefs,
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}
	s.logger.Info("booksearch stopped")
	return err
}

// SearchOnce runs a single title search and prints the results to opts.Out.
// A failed request prints the empty result and returns the cause.
func SearchOnce(ctx context.Context, query string, opts SearchOptions) error {
	s, err := newSession(opts.ConfigPath, opts.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	s.controller.SetQuery(query)
	if !s.controller.Search(ctx, query) {
		return fmt.Errorf("query is empty")
	}
	snap := s.controller.Snapshot()
	if err := writeResults(out, snap, opts.JSON); err != nil {
		return err
	}
	if snap.LastError != nil {
		return fmt.Errorf("search failed: %w", snap.LastError)
	}
	return nil
}

type jsonResults struct {
	Query    string             `json:"query"`
	NumFound int                `json:"numFound"`
	Results  []openlibrary.Book `json:"results"`
}

func writeResults(w io.Writer, snap state.Snapshot, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonResults{
			Query:    snap.TrimmedQuery(),
			NumFound: snap.NumFound,
			Results:  snap.Results,
		})
	}

	frame := view.Project(snap)
	if _, err := fmt.Fprintln(w, ui.ResultSummary(frame)); err != nil {
		return err
	}
	for i, card := range frame.Cards {
		line := fmt.Sprintf("%2d. %s", i+1, card.Title)
		if len(card.Authors) > 0 {
			line += " by " + strings.Join(card.Authors, ", ")
		}
		if card.HasYear {
			line += " (" + strconv.Itoa(card.Year) + ")"
		}
		line += "  " + openlibrary.RecordURL(card.Key)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
