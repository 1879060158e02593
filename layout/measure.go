// Package layout wraps text into lines that fit a pixel budget and
// searches for the largest font size whose layout fits. It is pure: all
// measurement goes through font.Face values supplied by the caller.
package layout

import (
	"image"
	"strings"

	"golang.org/x/image/font"
)

// FaceSource resolves a drawable, measurable face for a style at a size.
// Implementations must always return some usable face; degrading to a
// size-insensitive fallback is acceptable, failing is not.
type FaceSource interface {
	Face(size int, bold, italic bool) font.Face
}

// Budget is the pixel box text must fit into, with per-side paddings.
type Budget struct {
	Width  int
	Height int
	Top    int
	Bottom int
	Left   int
	Right  int
}

// AvailWidth is the width left after horizontal padding.
func (b Budget) AvailWidth() int { return b.Width - b.Left - b.Right }

// AvailHeight is the height left after vertical padding.
func (b Budget) AvailHeight() int { return b.Height - b.Top - b.Bottom }

// Bounds returns the ink box of s rendered with face, in pixels relative
// to an origin on the baseline. Whitespace-only strings have no ink, so
// their width is taken from the advance instead.
func Bounds(face font.Face, s string) image.Rectangle {
	b, adv := font.BoundString(face, s)
	r := image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil())
	if r.Dx() == 0 && s != "" && strings.TrimSpace(s) == "" {
		r.Max.X = r.Min.X + adv.Ceil()
	}
	return r
}

// TextWidth is the pixel width of s rendered with face.
func TextWidth(face font.Face, s string) int {
	return Bounds(face, s).Dx()
}
