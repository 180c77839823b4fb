// Package openlibrary is a small HTTP client for the public Open Library API.
//
// # Overview
//
// booksearch depends on exactly one remote operation: the title search at
// /search.json. The response schema is accepted as-is; only the fields the
// UI renders are decoded into Book.
//
// # Endpoints
//
//   - Search:  GET https://openlibrary.org/search.json?title=<escaped>
//   - Covers:  https://covers.openlibrary.org/b/id/<cover_i>-<S|M|L>.jpg
//   - Records: https://openlibrary.org<key>
//
// # Error Handling
//
// Client.Search returns one of three error shapes:
//
//   - *StatusError for any non-2xx response
//   - an error wrapping ErrMalformedResponse when the body is not JSON or has no docs
//   - a wrapped transport error ("execute request: ...")
//
// Outcome maps these onto short labels for logs and metrics. The client never
// retries; a failed search is reported once and the caller decides what to
// show.
//
// # Rate Limiting
//
// Options.RequestsPerSecond installs a golang.org/x/time/rate limiter shared
// by searches and cover downloads. Zero disables it. There is no request
// timeout unless Options.Timeout is set.
package openlibrary
