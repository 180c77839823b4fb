// Package search implements the search request lifecycle: accept a query,
// call Open Library, and fold the outcome back into the session state.
package search

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/five82/booksearch/internal/metrics"
	"github.com/five82/booksearch/internal/openlibrary"
	"github.com/five82/booksearch/internal/state"
)

// MaxResults caps how many docs from a response are kept. The rest are
// discarded; there is no pagination.
const MaxResults = 20

// Request identifies one accepted search.
type Request struct {
	Seq   uint64
	Title string
}

// Result is the outcome of running a Request.
type Result struct {
	Request
	Books    []openlibrary.Book
	NumFound int
	Err      error
	Elapsed  time.Duration
}

// Options configure a Controller.
type Options struct {
	Logger  *slog.Logger
	Metrics *metrics.Recorder
}

// Controller owns the query, results and loading flags of a Store.
type Controller struct {
	store    *state.Store
	searcher openlibrary.Searcher
	logger   *slog.Logger
	metrics  *metrics.Recorder
}

// New builds a Controller writing into store.
func New(store *state.Store, searcher openlibrary.Searcher, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		store:    store,
		searcher: searcher,
		logger:   logger.With("component", "search"),
		metrics:  opts.Metrics,
	}
}

// SetQuery records the input text. It never triggers a search.
func (c *Controller) SetQuery(query string) {
	c.store.SetQuery(query)
}

// Submit accepts rawQuery for searching. Blank input is ignored and leaves
// the state untouched. On acceptance the session enters the loading state
// and the returned Request must be passed to Run and then Apply.
func (c *Controller) Submit(rawQuery string) (Request, bool) {
	title := strings.TrimSpace(rawQuery)
	if title == "" {
		c.metrics.EmptyRejected()
		return Request{}, false
	}
	seq := c.store.Begin()
	c.logger.Debug("search submitted", "seq", seq, "title", title)
	return Request{Seq: seq, Title: title}, true
}

// Run performs the network call for req. It does not touch the store, so it
// may run off the UI loop.
func (c *Controller) Run(ctx context.Context, req Request) Result {
	start := time.Now()
	resp, err := c.searcher.Search(ctx, req.Title)
	res := Result{Request: req, Elapsed: time.Since(start)}
	if err != nil {
		res.Err = err
		c.metrics.ObserveSearch(openlibrary.Outcome(err), res.Elapsed, 0)
		return res
	}

	docs := resp.Docs
	if len(docs) > MaxResults {
		docs = docs[:MaxResults]
	}
	res.Books = make([]openlibrary.Book, len(docs))
	copy(res.Books, docs)
	res.NumFound = resp.NumFound
	c.metrics.ObserveSearch("ok", res.Elapsed, len(res.Books))
	return res
}

// Apply folds res into the session. It reports false when res belongs to a
// superseded request and was dropped.
func (c *Controller) Apply(res Result) bool {
	if !c.store.Finish(res.Seq, res.Books, res.NumFound, res.Err) {
		c.metrics.StaleDiscarded()
		c.logger.Debug("stale search response dropped", "seq", res.Seq, "title", res.Title)
		return false
	}
	if res.Err != nil {
		c.logger.Warn("search failed",
			"seq", res.Seq,
			"title", res.Title,
			"outcome", openlibrary.Outcome(res.Err),
			"elapsed", res.Elapsed,
			"error", res.Err)
		return true
	}
	c.logger.Info("search completed",
		"seq", res.Seq,
		"title", res.Title,
		"results", len(res.Books),
		"num_found", res.NumFound,
		"elapsed", res.Elapsed)
	return true
}

// Search runs Submit, Run and Apply back to back. It reports whether a search
// was issued.
func (c *Controller) Search(ctx context.Context, rawQuery string) bool {
	req, ok := c.Submit(rawQuery)
	if !ok {
		return false
	}
	c.Apply(c.Run(ctx, req))
	return true
}

// Snapshot returns the current session state.
func (c *Controller) Snapshot() state.Snapshot {
	return c.store.Snapshot()
}
