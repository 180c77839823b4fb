// Package config loads booksearch settings.
//
// Settings come from three layers, later ones winning:
//
//  1. Built-in defaults
//  2. The TOML file (~/.config/booksearch/config.toml unless a path is given)
//  3. BOOKSEARCH_* environment variables, e.g. BOOKSEARCH_API_BASE
//
// A missing config file is not an error; booksearch runs against the public
// Open Library endpoints with no timeout and no rate limit.
//
// Example config.toml:
//
//	api_base = "https://openlibrary.org"
//	user_agent = "booksearch (me@example.com)"
//	request_timeout = "10s"
//	requests_per_second = 2
//	log_dir = "~/.local/state/booksearch"
//	covers = true
//	metrics_addr = "127.0.0.1:9464"
//
// Tilde expansion is applied to the config path and log_dir.
package config
