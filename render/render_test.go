package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/ByLCY/signboard/config"
)

func countNonBackground(img *image.RGBA, bg config.Color) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) != bg.RGBA() {
				n++
			}
		}
	}
	return n
}

func TestTextImageGeometry(t *testing.T) {
	r := New(config.Default())
	img := r.TextImage("hello", Options{FontSize: 24})

	if img.Bounds() != image.Rect(0, 0, 240, 240) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if n := countNonBackground(img, config.Color{R: 0, G: 0, B: 0}); n == 0 {
		t.Error("no text pixels drawn")
	}
}

func TestTextImageEmptyText(t *testing.T) {
	r := New(config.Default())
	img := r.TextImage("", Options{FontSize: 24})
	if n := countNonBackground(img, config.Color{R: 0, G: 0, B: 0}); n != 0 {
		t.Errorf("empty text drew %d pixels", n)
	}
}

func TestTextImageCustomColors(t *testing.T) {
	r := New(config.Default())
	bg := config.Color{R: 0, G: 50, B: 100}
	fg := config.Color{R: 255, G: 255, B: 0}
	img := r.TextImage("hi", Options{FontSize: 24, TextColor: &fg, Background: &bg, AutoStroke: false})

	if corner := img.RGBAAt(0, 0); corner != bg.RGBA() {
		t.Errorf("corner = %v, want background %v", corner, bg.RGBA())
	}
	found := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !found; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == fg.RGBA() {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("no pixel in the requested text color")
	}
}

func TestTextImageStrokeAddsPixels(t *testing.T) {
	r := New(config.Default())
	bg := config.Color{R: 0, G: 0, B: 0}
	plain := r.TextImage("hello", Options{FontSize: 24})
	white := config.Color{R: 255, G: 255, B: 255}
	stroked := r.TextImage("hello", Options{FontSize: 24, StrokeWidth: 2, StrokeColor: &white})

	if countNonBackground(stroked, bg) <= countNonBackground(plain, bg) {
		t.Error("stroke did not add outline pixels")
	}
}

func TestTextImageMarkup(t *testing.T) {
	r := New(config.Default())
	img := r.TextImage("<b>bold</b> and <u>under</u>", Options{FontSize: 20, Markup: true})
	if n := countNonBackground(img, config.Color{R: 0, G: 0, B: 0}); n == 0 {
		t.Error("markup path drew nothing")
	}
}

func TestGradientImageDrawsText(t *testing.T) {
	r := New(config.Default())
	from := config.Color{R: 0, G: 0, B: 0}
	to := config.Color{R: 0, G: 0, B: 80}
	img := r.GradientImage("hi", from, to, Vertical, Options{FontSize: 24})
	if img.Bounds() != image.Rect(0, 0, 240, 240) {
		t.Fatalf("bounds = %v", img.Bounds())
	}

	// White default text must appear on top of the gradient.
	found := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !found; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.R == 255 && c.G == 255 && c.B == 255 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("no text pixels over the gradient")
	}
}

func TestParseAlign(t *testing.T) {
	tests := []struct {
		in   string
		want Align
	}{
		{"left", AlignLeft},
		{"Right", AlignRight},
		{"JUSTIFY", AlignJustify},
		{"center", AlignCenter},
		{"", AlignCenter},
		{"bogus", AlignCenter},
	}
	for _, tt := range tests {
		if got := ParseAlign(tt.in); got != tt.want {
			t.Errorf("ParseAlign(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestJustifyOffsets(t *testing.T) {
	widths := []int{40, 30, 50}
	offsets, ok := justifyOffsets(widths, 240)
	if !ok {
		t.Fatal("expected ok")
	}
	if offsets[0] != 0 {
		t.Errorf("first offset = %d, want 0", offsets[0])
	}
	// The last word ends at the right edge, within rounding.
	end := offsets[2] + widths[2]
	if end < 238 || end > 240 {
		t.Errorf("last word ends at %d, want ~240", end)
	}
	// Monotonic with no overlap.
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1]+widths[i-1] {
			t.Errorf("word %d at %d overlaps previous", i, offsets[i])
		}
	}
}

func TestJustifyOffsetsOverflow(t *testing.T) {
	if _, ok := justifyOffsets([]int{200, 200}, 240); ok {
		t.Error("overflowing words should not justify")
	}
	if _, ok := justifyOffsets([]int{100}, 240); ok {
		t.Error("single word should not justify")
	}
}

// inkRows lists the rows containing any non-zero pixel.
func inkRows(img *image.RGBA) []int {
	var rows []int
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) != (color.RGBA{}) {
				rows = append(rows, y)
				break
			}
		}
	}
	return rows
}

func TestUnderlineRuleOnePixelBelowInk(t *testing.T) {
	r := New(config.Default())
	img := r.TextImage("<u>hi</u>", Options{FontSize: 24, Markup: true})

	// Repaint the background transparent-black so inkRows sees only text.
	// The default background is already black, so only alpha differs.
	raw := image.NewRGBA(img.Bounds())
	for y := 0; y < 240; y++ {
		for x := 0; x < 240; x++ {
			if c := img.RGBAAt(x, y); c != (color.RGBA{A: 0xff}) {
				raw.SetRGBA(x, y, c)
			}
		}
	}

	rows := inkRows(raw)
	if len(rows) < 3 {
		t.Fatalf("too little ink: rows %v", rows)
	}
	rule := rows[len(rows)-1]
	// Exactly one blank row separates the rule from the glyph ink, and
	// the rule itself is a single row.
	if above := rows[len(rows)-2]; above != rule-2 {
		t.Errorf("rule at row %d, ink above at %d; want a single blank row between", rule, above)
	}
}

func TestStrokeWidensLineSpacing(t *testing.T) {
	r := New(config.Default())

	if got := r.effectiveSpacing(0); got != r.cfg.Image.LineSpacing {
		t.Errorf("effectiveSpacing(0) = %d, want %d", got, r.cfg.Image.LineSpacing)
	}
	if got := r.effectiveSpacing(2); got != r.cfg.Image.LineSpacing+4 {
		t.Errorf("effectiveSpacing(2) = %d, want %d", got, r.cfg.Image.LineSpacing+4)
	}

	// A nil stroke color skips the outline passes, so the only visible
	// effect of the stroke width is the wider inter-line gap.
	gap := func(strokeWidth int) int {
		img := image.NewRGBA(image.Rect(0, 0, 240, 240))
		fonts := NewFontSet("")
		face := fonts.Face(24, false, false)
		r.drawMultiline(img, []string{"mm", "mm"}, face, config.Color{R: 255, G: 255, B: 255}, AlignCenter, strokeWidth, nil)

		rows := inkRows(img)
		widest := 0
		for i := 1; i < len(rows); i++ {
			if d := rows[i] - rows[i-1] - 1; d > widest {
				widest = d
			}
		}
		return widest
	}

	plain, stroked := gap(0), gap(2)
	if plain != r.cfg.Image.LineSpacing {
		t.Errorf("unstroked inter-line gap = %d, want %d", plain, r.cfg.Image.LineSpacing)
	}
	if stroked-plain != 4 {
		t.Errorf("stroke width 2 widened the gap by %d, want 4", stroked-plain)
	}
}

func TestEncodeJPEG(t *testing.T) {
	r := New(config.Default())
	img := r.TextImage("jpeg", Options{FontSize: 24})
	data, err := EncodeJPEG(img, 70)
	if err != nil {
		t.Fatalf("EncodeJPEG: %v", err)
	}
	if len(data) < 2 || data[0] != 0xff || data[1] != 0xd8 {
		t.Errorf("output does not start with a JPEG SOI marker")
	}
}
