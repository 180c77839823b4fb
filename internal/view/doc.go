// Package view turns a search session snapshot into what the screen shows.
//
// Project is a pure function from state.Snapshot to Frame. The frame's Mode
// follows a fixed precedence: before the first search the welcome screen
// shows; while a request is in flight the loading indicator shows; a finished
// search with no results shows the empty message; otherwise the result grid
// shows. A selected book is an overlay on top of whichever mode is active.
//
// Projector owns the few actions that change what is displayed without
// touching the search itself: selecting and deselecting a card, opening the
// record in a browser and copying its URL.
package view
