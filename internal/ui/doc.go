// Package ui provides the terminal interface for booksearch.
//
// # Architecture
//
// The UI is a single Bubble Tea model. Search state lives in a state.Store
// owned by the search controller; the model never keeps its own copy of
// results. Each View call projects the current snapshot through
// view.Project and renders the resulting frame, so what is drawn always
// matches the store.
//
// Network work runs in tea.Cmd goroutines:
//
//   - searchCmd calls Controller.Run and returns a searchResultMsg, which
//     Update applies with Controller.Apply. Results from superseded requests
//     are dropped there.
//   - coverCmd downloads and renders cover art for the detail modal.
//   - openRecordCmd and copyRecordCmd report back through statusMsg.
//
// # Screens
//
// The main screen stacks a header, the search input, the content area and a
// footer. The content area shows one of four modes: welcome, loading, empty
// or the result grid. The detail modal, help overlay and diagnostics
// overlay (a tail of the log file) draw over it.
//
// # Files
//
//   - app.go: Model, Update and View dispatch
//   - grid.go: main screen, header and card grid
//   - detail.go: detail modal and cover placement
//   - diagnostics.go: log tail overlay
//   - commands.go: messages and commands
//   - keys.go, help.go: key bindings and help overlay
//   - theme.go, style_helpers.go, layout.go: colors, styles and geometry
package ui
