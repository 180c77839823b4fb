package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/five82/booksearch/internal/app"
	"github.com/five82/booksearch/internal/ui"
)

// Globals are flags shared by every command.
type Globals struct {
	Config string `help:"Path to config.toml (defaults to ~/.config/booksearch/config.toml)" type:"path"`
	Debug  bool   `help:"Log at debug level"`
}

// CLI is the booksearch command line.
type CLI struct {
	Globals

	TUI    TUICmd    `cmd:"" name:"tui" default:"withargs" help:"Browse Open Library interactively (default)"`
	Search SearchCmd `cmd:"" help:"Search once and print the results"`
}

// TUICmd starts the interactive interface.
type TUICmd struct {
	Prefs       string `help:"Path to prefs.toml (defaults to ~/.config/booksearch/prefs.toml)" type:"path"`
	Theme       string `help:"Theme for this session (${themes})"`
	MetricsAddr string `help:"Serve Prometheus metrics on this address, e.g. 127.0.0.1:9464"`
}

// Validate rejects an unknown --theme before the TUI starts.
func (c *TUICmd) Validate() error {
	if c.Theme == "" {
		return nil
	}
	return ui.ValidateTheme(c.Theme)
}

// Run implements the tui command.
func (c *TUICmd) Run(ctx context.Context, g *Globals) error {
	return app.Run(ctx, app.Options{
		ConfigPath:  g.Config,
		PrefsPath:   c.Prefs,
		Theme:       c.Theme,
		MetricsAddr: c.MetricsAddr,
		Debug:       g.Debug,
	})
}

// SearchCmd runs a single search.
type SearchCmd struct {
	Query []string `arg:"" help:"Book title to search for"`
	JSON  bool     `help:"Print results as JSON"`
}

// Run implements the search command.
func (c *SearchCmd) Run(ctx context.Context, g *Globals) error {
	return app.SearchOnce(ctx, strings.Join(c.Query, " "), app.SearchOptions{
		ConfigPath: g.Config,
		Debug:      g.Debug,
		JSON:       c.JSON,
		Out:        os.Stdout,
	})
}

func main() {
	os.Exit(run())
}

func run() int {
	sigCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("booksearch"),
		kong.Description("Search Open Library by title from the terminal."),
		kong.UsageOnError(),
		kong.Vars{"themes": strings.Join(ui.ThemeNames(), ", ")},
	)
	kctx.BindTo(sigCtx, (*context.Context)(nil))

	if err := kctx.Run(&cli.Globals); err != nil {
		fmt.Fprintf(os.Stderr, "booksearch: %v\n", err)
		return 1
	}
	return 0
}
