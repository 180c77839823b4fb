// Package cover renders book cover art in the terminal using half-block
// characters, two image rows per text row.
package cover

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"

	"github.com/five82/booksearch/internal/openlibrary"
)

// Fetcher downloads cover bytes. *openlibrary.Client implements it.
type Fetcher interface {
	FetchCover(ctx context.Context, coverID int64, size openlibrary.CoverSize) ([]byte, error)
}

const halfBlock = "▀"

// Load downloads, decodes and renders the cover for coverID so that it fits
// within width columns and rows text rows.
func Load(ctx context.Context, f Fetcher, coverID int64, width, rows int) (string, error) {
	data, err := f.FetchCover(ctx, coverID, openlibrary.CoverMedium)
	if err != nil {
		return "", err
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode cover: %w", err)
	}
	return Render(img, width, rows), nil
}

// Render scales img to fit width x rows cells and returns it as styled text.
func Render(img image.Image, width, rows int) string {
	if img == nil || width <= 0 || rows <= 0 {
		return ""
	}
	fitted := imaging.Fit(img, width, rows*2, imaging.Lanczos)
	bounds := fitted.Bounds()

	var b strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		if y > bounds.Min.Y {
			b.WriteString("\n")
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hexColor(fitted.At(x, y)))
			if y+1 < bounds.Max.Y {
				style = style.Background(hexColor(fitted.At(x, y+1)))
			}
			b.WriteString(style.Render(halfBlock))
		}
	}
	return b.String()
}

func hexColor(c interface{ RGBA() (r, g, b, a uint32) }) lipgloss.Color {
	r, g, bl, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, bl>>8))
}
