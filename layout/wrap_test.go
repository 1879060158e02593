package layout

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/signboard/markup"
)

// stubFace is a deterministic face: every glyph advances size/2 pixels and
// spans the full font size vertically. It keeps wrap and auto-size tests
// independent of real font files.
type stubFace struct {
	size int
}

func (f stubFace) Close() error { return nil }

func (f stubFace) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	return image.Rectangle{}, image.NewUniform(color.Opaque), image.Point{}, fixed.I(f.size / 2), true
}

func (f stubFace) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	return fixed.R(0, -f.size, f.size/2, 0), fixed.I(f.size / 2), true
}

func (f stubFace) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	return fixed.I(f.size / 2), true
}

func (f stubFace) Kern(r0, r1 rune) fixed.Int26_6 { return 0 }

func (f stubFace) Metrics() font.Metrics {
	return font.Metrics{Height: fixed.I(f.size), Ascent: fixed.I(f.size)}
}

// stubFaces implements FaceSource over stubFace for any style.
type stubFaces struct{}

func (stubFaces) Face(size int, bold, italic bool) font.Face { return stubFace{size: size} }

func TestWrapFitsBudget(t *testing.T) {
	face := stubFace{size: 20} // 10px per rune
	lines := Wrap("aa bb cc dd ee", face, 55)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping into multiple lines, got %v", lines)
	}
	for _, line := range lines {
		if w := TextWidth(face, line); w > 55 {
			t.Errorf("line %q is %dpx wide, budget is 55", line, w)
		}
	}
	// Rejoining must reproduce the input words.
	joined := strings.Join(lines, " ")
	if joined != "aa bb cc dd ee" {
		t.Fatalf("words lost or reordered: %q", joined)
	}
}

func TestWrapIdempotent(t *testing.T) {
	face := stubFace{size: 18}
	text := "the quick brown fox jumps over the lazy dog again and again"
	first := Wrap(text, face, 90)
	second := Wrap(strings.Join(first, " "), face, 90)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("re-wrapping changed line boundaries (-first +second):\n%s", diff)
	}
}

func TestWrapOverlongWordPlacedAlone(t *testing.T) {
	face := stubFace{size: 20}
	lines := Wrap("hi incomprehensibilities yo", face, 60)
	found := false
	for _, line := range lines {
		if line == "incomprehensibilities" {
			found = true
		} else if TextWidth(face, line) > 60 {
			t.Errorf("non-overlong line %q exceeds budget", line)
		}
	}
	if !found {
		t.Fatalf("overlong word should sit unbroken on its own line, got %v", lines)
	}
}

func TestWrapEmptyInput(t *testing.T) {
	face := stubFace{size: 20}
	for _, in := range []string{"", "   "} {
		lines := Wrap(in, face, 100)
		if len(lines) != 1 || lines[0] != in {
			t.Errorf("Wrap(%q) = %v, want the original text on one line", in, lines)
		}
	}
}

func TestWrapSegmentsPreservesFormatting(t *testing.T) {
	segs := []markup.Segment{
		{Text: "alpha beta", Bold: true},
		{Text: " gamma", Underline: true},
	}
	lines := WrapSegments(segs, stubFaces{}, 20, 1000)
	if len(lines) != 1 {
		t.Fatalf("expected a single line, got %d", len(lines))
	}
	want := []markup.Segment{
		{Text: "alpha", Bold: true},
		{Text: " ", Bold: true},
		{Text: "beta", Bold: true},
		// The synthetic space takes the formatting of the segment that
		// supplies the following word.
		{Text: " ", Underline: true},
		{Text: "gamma", Underline: true},
	}
	if diff := cmp.Diff(want, lines[0]); diff != "" {
		t.Fatalf("segment line mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapSegmentsBreaksLines(t *testing.T) {
	segs := []markup.Segment{{Text: "one two six ten oak elm"}}
	lines := WrapSegments(segs, stubFaces{}, 20, 45) // 4 runes per line
	if len(lines) < 3 {
		t.Fatalf("expected several lines, got %d: %v", len(lines), lines)
	}
	face := stubFaces{}.Face(20, false, false)
	for _, line := range lines {
		width := 0
		for _, seg := range line {
			width += TextWidth(face, seg.Text)
		}
		if width > 45 {
			t.Errorf("segment line %v is %dpx wide, budget is 45", line, width)
		}
	}
}

func TestWrapSegmentsEmptyInput(t *testing.T) {
	lines := WrapSegments(nil, stubFaces{}, 20, 100)
	if len(lines) != 1 || len(lines[0]) != 1 || lines[0][0].Text != "" {
		t.Fatalf("empty input should yield one empty segment line, got %v", lines)
	}
}
