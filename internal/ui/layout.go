package ui

import "time"

// Card grid geometry.
const (
	// CardWidth is the outer width of one result card, borders included.
	CardWidth = 30

	// CardHeight is the outer height of one result card, borders included.
	CardHeight = 6

	// CardGap is the horizontal space between cards.
	CardGap = 1
)

// Card cover markers, shown on the last card line.
const (
	CoverBadge   = "▣ cover"
	NoCoverBadge = "▢ no cover"
)

// Detail modal geometry.
const (
	// DetailMaxWidth caps the modal width on wide terminals.
	DetailMaxWidth = 96

	// CoverColumns and CoverRows size the cover art inside the modal.
	CoverColumns = 24
	CoverRows    = 18
)

// Diagnostics overlay limits.
const (
	// DiagnosticsLines is how many log lines the overlay reads.
	DiagnosticsLines = 200

	// DiagnosticsRefresh is how often the overlay rereads the log while open.
	DiagnosticsRefresh = time.Second
)

// Timing constants.
const (
	// StatusTTL is how long a transient status line stays in the footer.
	StatusTTL = 4 * time.Second

	// CoverFetchTimeout bounds a single cover download.
	CoverFetchTimeout = 15 * time.Second
)
