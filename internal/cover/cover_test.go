package cover

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/booksearch/internal/openlibrary"
)

type fakeFetcher struct {
	data []byte
	err  error
	id   int64
}

func (f *fakeFetcher) FetchCover(_ context.Context, coverID int64, _ openlibrary.CoverSize) ([]byte, error) {
	f.id = coverID
	return f.data, f.err
}

func TestRender_Dimensions(t *testing.T) {
	img := imaging.New(8, 8, color.NRGBA{R: 200, G: 10, B: 10, A: 255})

	out := Render(img, 4, 10)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Equal(t, 4, lipgloss.Width(line))
		assert.Contains(t, line, halfBlock)
	}
}

func TestRender_DegenerateInputs(t *testing.T) {
	img := imaging.New(2, 2, color.White)
	assert.Empty(t, Render(nil, 4, 4))
	assert.Empty(t, Render(img, 0, 4))
	assert.Empty(t, Render(img, 4, 0))
}

func TestLoad_DecodesFetchedImage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, imaging.New(6, 6, color.Black)))

	f := &fakeFetcher{data: buf.Bytes()}
	out, err := Load(context.Background(), f, 42, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(42), f.id)
	assert.NotEmpty(t, out)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(context.Background(), &fakeFetcher{err: errors.New("offline")}, 1, 3, 3)
	assert.EqualError(t, err, "offline")

	_, err = Load(context.Background(), &fakeFetcher{data: []byte("not an image")}, 1, 3, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode cover")
}
