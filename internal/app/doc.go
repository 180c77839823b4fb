// Package app wires configuration, logging, the Open Library client, the
// search controller and the UI together. It is the composition root for
// both entry points:
//
//   - Run starts the interactive TUI and blocks until the user quits or the
//     context is cancelled.
//   - SearchOnce runs one search through the same controller and prints the
//     results as text or JSON.
//
// Startup order:
//
//  1. config.Load reads ~/.config/booksearch/config.toml and BOOKSEARCH_* env
//  2. logging.New opens <log_dir>/booksearch.log
//  3. openlibrary.NewClient applies base URL, timeout and rate limit
//  4. a state.Store and search.Controller are created for the session
//  5. the metrics listener starts when metrics_addr is set (TUI only)
//
// Configuration and log file errors are fatal. Search failures are not: the
// TUI shows the empty state and SearchOnce prints no results before
// returning the cause.
package app
