package view

import (
	"github.com/five82/booksearch/internal/langs"
	"github.com/five82/booksearch/internal/openlibrary"
	"github.com/five82/booksearch/internal/state"
)

// Mode is the main content shown below the search input.
type Mode int

const (
	ModeWelcome Mode = iota
	ModeLoading
	ModeEmpty
	ModeGrid
)

func (m Mode) String() string {
	switch m {
	case ModeWelcome:
		return "welcome"
	case ModeLoading:
		return "loading"
	case ModeEmpty:
		return "empty"
	case ModeGrid:
		return "grid"
	default:
		return "unknown"
	}
}

// Display limits for card and detail fields.
const (
	CardAuthors      = 2
	DetailPublishers = 3
	DetailLanguages  = 5
	DetailSubjects   = 8

	UntitledLabel = "Untitled"
)

// Card is the grid rendering of one result. Empty fields were absent and are
// not shown.
type Card struct {
	Key     string
	Title   string
	Authors []string
	Year    int
	HasYear bool
	Cover   string
}

// Detail is the expanded rendering of the selected result.
type Detail struct {
	Key        string
	Title      string
	Authors    []string
	Year       int
	HasYear    bool
	CoverID    int64
	HasCover   bool
	CoverURL   string
	Publishers []string
	Languages  []string
	Subjects   []string
	RecordURL  string
}

// Frame is everything the renderer needs for one draw.
type Frame struct {
	Mode      Mode
	Query     string
	Cards     []Card
	NumFound  int
	Detail    *Detail
	CanSubmit bool
}

// Project derives the frame for snap. It has no side effects.
func Project(snap state.Snapshot) Frame {
	frame := Frame{
		Mode:      modeFor(snap),
		Query:     snap.Query,
		NumFound:  snap.NumFound,
		CanSubmit: !snap.IsLoading && snap.TrimmedQuery() != "",
	}
	if frame.Mode == ModeGrid {
		frame.Cards = make([]Card, len(snap.Results))
		for i, book := range snap.Results {
			frame.Cards[i] = CardFor(book)
		}
	}
	if snap.Selected != nil {
		detail := DetailFor(*snap.Selected)
		frame.Detail = &detail
	}
	return frame
}

func modeFor(snap state.Snapshot) Mode {
	switch {
	case !snap.HasSearched:
		return ModeWelcome
	case snap.IsLoading:
		return ModeLoading
	case len(snap.Results) == 0:
		return ModeEmpty
	default:
		return ModeGrid
	}
}

// CardFor builds the grid card for book.
func CardFor(book openlibrary.Book) Card {
	card := Card{
		Key:     book.Key,
		Title:   book.TitleOr(UntitledLabel),
		Authors: head(book.Authors, CardAuthors),
	}
	card.Year, card.HasYear = book.Year()
	card.Cover, _ = openlibrary.CoverURL(book.CoverID, openlibrary.CoverLarge)
	return card
}

// DetailFor builds the detail view for book.
func DetailFor(book openlibrary.Book) Detail {
	detail := Detail{
		Key:        book.Key,
		Title:      book.TitleOr(UntitledLabel),
		Authors:    head(book.Authors, 0),
		Publishers: head(book.Publishers, DetailPublishers),
		Languages:  langs.Names(book.Languages, DetailLanguages),
		Subjects:   head(book.Subjects, DetailSubjects),
		RecordURL:  openlibrary.RecordURL(book.Key),
	}
	detail.Year, detail.HasYear = book.Year()
	if url, ok := openlibrary.CoverURL(book.CoverID, openlibrary.CoverLarge); ok {
		detail.HasCover = true
		detail.CoverID = *book.CoverID
		detail.CoverURL = url
	}
	return detail
}

// head returns a copy of at most n values; n <= 0 keeps all of them.
func head(values []string, n int) []string {
	if len(values) == 0 {
		return nil
	}
	if n <= 0 || n > len(values) {
		n = len(values)
	}
	out := make([]string, n)
	copy(out, values[:n])
	return out
}
