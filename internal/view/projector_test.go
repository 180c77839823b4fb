package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/booksearch/internal/openlibrary"
	"github.com/five82/booksearch/internal/state"
)

type recordingOpener struct {
	urls []string
	err  error
}

func (r *recordingOpener) Open(url string) error {
	r.urls = append(r.urls, url)
	return r.err
}

type recordingClipboard struct {
	text string
	err  error
}

func (r *recordingClipboard) Write(text string) error {
	r.text = text
	return r.err
}

func seededStore() *state.Store {
	store := &state.Store{}
	store.SetQuery("dune")
	seq := store.Begin()
	store.Finish(seq, []openlibrary.Book{{Key: "/works/OL1W", Title: strPtr("Dune")}}, 1, nil)
	return store
}

func TestSelectThenClose_OnlySelectionChanges(t *testing.T) {
	store := seededStore()
	p := NewProjector(store, ProjectorOptions{Opener: &recordingOpener{}, Clipboard: &recordingClipboard{}})
	before := store.Snapshot()

	p.SelectCard(before.Results[0])
	selected := store.Snapshot()
	require.NotNil(t, selected.Selected)
	assert.Equal(t, "/works/OL1W", selected.Selected.Key)

	p.CloseDetail()
	after := store.Snapshot()
	assert.Nil(t, after.Selected)
	assert.Equal(t, before.Query, after.Query)
	assert.Equal(t, before.Results, after.Results)
	assert.Equal(t, before.IsLoading, after.IsLoading)
	assert.Equal(t, before.HasSearched, after.HasSearched)
}

func TestOpenExternalRecord(t *testing.T) {
	store := seededStore()
	opener := &recordingOpener{}
	p := NewProjector(store, ProjectorOptions{Opener: opener, Clipboard: &recordingClipboard{}})
	before := store.Snapshot()

	require.NoError(t, p.OpenExternalRecord("/works/OL45883W"))
	assert.Equal(t, []string{"https://openlibrary.org/works/OL45883W"}, opener.urls)
	assert.Equal(t, before.Results, store.Snapshot().Results)
}

func TestOpenExternalRecord_Errors(t *testing.T) {
	opener := &recordingOpener{err: errors.New("no display")}
	p := NewProjector(seededStore(), ProjectorOptions{Opener: opener, Clipboard: &recordingClipboard{}})

	err := p.OpenExternalRecord("/works/OL1W")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no display")

	require.Error(t, p.OpenExternalRecord("  "))
	assert.Len(t, opener.urls, 1)
}

func TestCopyRecordURL(t *testing.T) {
	clip := &recordingClipboard{}
	p := NewProjector(seededStore(), ProjectorOptions{Opener: &recordingOpener{}, Clipboard: clip})

	require.NoError(t, p.CopyRecordURL("/works/OL1W"))
	assert.Equal(t, "https://openlibrary.org/works/OL1W", clip.text)

	clip.err = errors.New("xclip missing")
	assert.Error(t, p.CopyRecordURL("/works/OL1W"))
}

func TestProjectorFrame(t *testing.T) {
	p := NewProjector(seededStore(), ProjectorOptions{Opener: &recordingOpener{}, Clipboard: &recordingClipboard{}})
	frame := p.Frame()
	assert.Equal(t, ModeGrid, frame.Mode)
	assert.Equal(t, 1, frame.NumFound)
	assert.True(t, frame.CanSubmit)
}
