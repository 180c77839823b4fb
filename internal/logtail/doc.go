// Package logtail reads the tail of the booksearch log file for the
// diagnostics overlay.
//
// Read keeps a ring buffer of maxLines entries, so memory stays bounded no
// matter how large the log grows. A missing log file is not an error.
//
// Parse understands the line layout written by the humanlog handler:
//
//	[2025-10-08 21:01:05] WARN  search failed [seq=3 title=dune outcome=status]
//
// Lines in any other shape are passed through untouched.
package logtail
