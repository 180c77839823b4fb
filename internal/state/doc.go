// Package state holds the single search session shared by the controller,
// the view projector and the TUI.
//
// # Overview
//
// Store wraps one Snapshot behind a sync.RWMutex. The search controller writes
// the query, results and loading flags; the projector writes the selection.
// Readers always get a deep copy, so a Snapshot handed to the renderer can not
// change underneath it.
//
// # Request Ordering
//
// Begin hands out a monotonically increasing sequence number for every
// accepted search. Finish applies an outcome only when its number is still the
// latest one issued. If two searches overlap, the older response is dropped
// no matter when it arrives, and the loading flag stays up until the newest
// request completes.
//
// # Failure Semantics
//
// A failed search clears Results to an empty slice. The error is kept in
// LastError for diagnostics only; the UI shows the same "no books found"
// message for failures and for genuine empty results.
package state
