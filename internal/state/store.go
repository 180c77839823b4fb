package state

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/five82/booksearch/internal/openlibrary"
)

// Snapshot is a point-in-time copy of the search session.
type Snapshot struct {
	Query       string
	Results     []openlibrary.Book
	NumFound    int
	IsLoading   bool
	HasSearched bool
	Selected    *openlibrary.Book

	// Seq is the most recently issued request number; zero before the first search.
	Seq         uint64
	LastError   error
	LastUpdated time.Time
}

// TrimmedQuery returns the query with surrounding whitespace removed.
func (s Snapshot) TrimmedQuery() string {
	return strings.TrimSpace(s.Query)
}

// Store holds the one search session. Every method is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetQuery records the current input text.
func (s *Store) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Query = query
}

// Begin marks a search as in flight and returns its sequence number.
func (s *Store) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Seq++
	s.snapshot.IsLoading = true
	s.snapshot.HasSearched = true
	return s.snapshot.Seq
}

// Finish records the outcome of request seq. Outcomes for anything but the
// latest issued request are ignored and Finish reports false. On error the
// previous results are dropped rather than kept.
func (s *Store) Finish(seq uint64, results []openlibrary.Book, numFound int, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.snapshot.Seq {
		return false
	}

	s.snapshot.IsLoading = false
	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.Results = []openlibrary.Book{}
		s.snapshot.NumFound = 0
		s.snapshot.LastError = err
		return true
	}

	s.snapshot.Results = openlibrary.CloneBooks(results)
	if s.snapshot.Results == nil {
		s.snapshot.Results = []openlibrary.Book{}
	}
	s.snapshot.NumFound = numFound
	s.snapshot.LastError = nil
	return true
}

// Select opens the detail view for book.
func (s *Store) Select(book openlibrary.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dup := book.Clone()
	s.snapshot.Selected = &dup
}

// ClearSelection closes the detail view.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Selected = nil
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Results = openlibrary.CloneBooks(s.snapshot.Results)
	if s.snapshot.Selected != nil {
		dup := s.snapshot.Selected.Clone()
		snap.Selected = &dup
	}
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
