package openlibrary

import (
	"fmt"
	"strings"
)

// CoverSize selects one of the fixed renditions served by the covers API.
type CoverSize string

const (
	CoverSmall  CoverSize = "S"
	CoverMedium CoverSize = "M"
	CoverLarge  CoverSize = "L"
)

const (
	// DefaultBaseURL is the Open Library site root. Record keys are appended to it.
	DefaultBaseURL = "https://openlibrary.org"
	// DefaultCoverBaseURL serves cover images by numeric id.
	DefaultCoverBaseURL = "https://covers.openlibrary.org"
)

// CoverURL derives the cover image URL for coverID. It returns false when the
// id is absent, which callers render as a placeholder.
func CoverURL(coverID *int64, size CoverSize) (string, bool) {
	return buildCoverURL(DefaultCoverBaseURL, coverID, size)
}

// RecordURL returns the canonical Open Library page for a result key. Keys
// already start with a slash ("/works/OL123W").
func RecordURL(key string) string {
	return DefaultBaseURL + key
}

func buildCoverURL(base string, coverID *int64, size CoverSize) (string, bool) {
	if coverID == nil || *coverID <= 0 {
		return "", false
	}
	switch size {
	case CoverSmall, CoverMedium, CoverLarge:
	default:
		size = CoverMedium
	}
	return fmt.Sprintf("%s/b/id/%d-%s.jpg", strings.TrimRight(base, "/"), *coverID, size), true
}
