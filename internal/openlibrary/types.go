package openlibrary

// SearchResponse mirrors the payload returned by /search.json. Only the
// fields booksearch reads are decoded.
type SearchResponse struct {
	NumFound int    `json:"numFound"`
	Start    int    `json:"start"`
	Docs     []Book `json:"docs"`
}

// Book is one search result. Key is always present; every other field may be
// omitted by the API. Absent slices decode as nil, present-but-empty slices
// decode as non-nil empty slices, and absent scalars stay nil.
type Book struct {
	Key              string   `json:"key"`
	Title            *string  `json:"title,omitempty"`
	Authors          []string `json:"author_name,omitempty"`
	FirstPublishYear *int     `json:"first_publish_year,omitempty"`
	CoverID          *int64   `json:"cover_i,omitempty"`
	Publishers       []string `json:"publisher,omitempty"`
	Subjects         []string `json:"subject,omitempty"`
	Languages        []string `json:"language,omitempty"`
}

// TitleOr returns the title, or fallback when the API omitted it.
func (b Book) TitleOr(fallback string) string {
	if b.Title == nil {
		return fallback
	}
	return *b.Title
}

// HasAuthors reports whether the author list was present and non-empty.
func (b Book) HasAuthors() bool {
	return len(b.Authors) > 0
}

// Year returns the first publish year and whether it is usable. A zero year
// is treated the same as a missing one.
func (b Book) Year() (int, bool) {
	if b.FirstPublishYear == nil || *b.FirstPublishYear <= 0 {
		return 0, false
	}
	return *b.FirstPublishYear, true
}

// Clone returns a deep copy so snapshots never share backing arrays.
func (b Book) Clone() Book {
	dup := b
	if b.Title != nil {
		title := *b.Title
		dup.Title = &title
	}
	if b.FirstPublishYear != nil {
		year := *b.FirstPublishYear
		dup.FirstPublishYear = &year
	}
	if b.CoverID != nil {
		id := *b.CoverID
		dup.CoverID = &id
	}
	dup.Authors = cloneStrings(b.Authors)
	dup.Publishers = cloneStrings(b.Publishers)
	dup.Subjects = cloneStrings(b.Subjects)
	dup.Languages = cloneStrings(b.Languages)
	return dup
}

// CloneBooks deep-copies a result list, keeping nil as nil.
func CloneBooks(books []Book) []Book {
	if books == nil {
		return nil
	}
	dup := make([]Book, len(books))
	for i, b := range books {
		dup[i] = b.Clone()
	}
	return dup
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	dup := make([]string, len(values))
	copy(dup, values)
	return dup
}
