// Package render composes text onto a fixed-size RGB raster: font size
// search, word wrap, alignment with justify spacing, stroke/outline
// passes, underline rules and gradient backgrounds.
package render

import (
	"image"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/signboard/config"
	"github.com/ByLCY/signboard/layout"
	"github.com/ByLCY/signboard/markup"
)

// Align is the horizontal text alignment.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
	AlignJustify
)

// ParseAlign maps an alignment name to its value, defaulting to center.
func ParseAlign(s string) Align {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return AlignLeft
	case "right":
		return AlignRight
	case "justify":
		return AlignJustify
	default:
		return AlignCenter
	}
}

// Options configures one text render. Zero values mean "use the
// configured default"; FontSize < 0 forces auto sizing.
type Options struct {
	FontSize    int
	AutoSize    bool
	TextColor   *config.Color
	Background  *config.Color
	FontPath    string
	Align       Align
	StrokeWidth int
	StrokeColor *config.Color
	AutoStroke  bool
	Markup      bool
}

// Renderer draws text images for one canvas geometry. It holds no
// per-render state; each render call owns its canvas and font cache.
type Renderer struct {
	cfg     config.Config
	width   int
	height  int
	padding config.Padding
}

// New creates a renderer with the configured default paddings.
func New(cfg config.Config) *Renderer {
	return NewWithPadding(cfg, cfg.Image.Padding)
}

// NewWithPadding creates a renderer with explicit per-side paddings.
func NewWithPadding(cfg config.Config, padding config.Padding) *Renderer {
	return &Renderer{
		cfg:     cfg,
		width:   cfg.Display.Width,
		height:  cfg.Display.Height,
		padding: padding,
	}
}

// TextImage renders text onto a solid background.
func (r *Renderer) TextImage(text string, o Options) *image.RGBA {
	textColor := r.cfg.Image.DefaultText
	if o.TextColor != nil {
		textColor = *o.TextColor
	}
	background := r.cfg.Image.DefaultBackground
	if o.Background != nil {
		background = *o.Background
	}

	fonts := NewFontSet(o.FontPath)
	size := r.fontSize(text, fonts, o)

	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background.RGBA()), image.Point{}, draw.Src)

	strokeWidth, strokeColor := ResolveStroke(textColor, background, o.StrokeWidth, o.StrokeColor, o.AutoStroke)
	r.compose(img, text, fonts, size, textColor, o.Align, o.Markup, strokeWidth, strokeColor)
	return img
}

// GradientImage renders text onto a linear gradient background. The
// stroke heuristic judges contrast against the channel mean of the two
// endpoint colors. Gradient renders center their text like the solid
// path's default.
func (r *Renderer) GradientImage(text string, from, to config.Color, dir Direction, o Options) *image.RGBA {
	textColor := r.cfg.Image.DefaultText
	if o.TextColor != nil {
		textColor = *o.TextColor
	}

	fonts := NewFontSet(o.FontPath)
	size := r.fontSize(text, fonts, o)

	img := r.GradientBackground(from, to, dir)

	average := config.Color{
		R: uint8((int(from.R) + int(to.R)) / 2),
		G: uint8((int(from.G) + int(to.G)) / 2),
		B: uint8((int(from.B) + int(to.B)) / 2),
	}
	strokeWidth, strokeColor := ResolveStroke(textColor, average, o.StrokeWidth, o.StrokeColor, o.AutoStroke)
	r.compose(img, text, fonts, size, textColor, AlignCenter, o.Markup, strokeWidth, strokeColor)
	return img
}

func (r *Renderer) fontSize(text string, fonts *FontSet, o Options) int {
	if o.AutoSize || o.FontSize < 0 {
		im := r.cfg.Image
		return layout.AutoSize(text, fonts, r.width, r.height, layout.Search{
			Min:           im.MinAutoFontSize,
			Max:           im.MaxAutoFontSize,
			Iterations:    im.AutoSizeIterations,
			LineSpacing:   im.LineSpacing,
			PaddingH:      im.AutoSizePadding,
			PaddingTop:    im.AutoSizePadding,
			PaddingBottom: im.AutoSizePaddingBottom,
		})
	}
	if o.FontSize == 0 {
		return r.cfg.Image.DefaultFontSize
	}
	return o.FontSize
}

// budget is the padded region layout and drawing both work against.
func (r *Renderer) budget() layout.Budget {
	return layout.Budget{
		Width:  r.width,
		Height: r.height,
		Top:    r.padding.Top,
		Bottom: r.padding.Bottom,
		Left:   r.padding.Left,
		Right:  r.padding.Right,
	}
}

func (r *Renderer) compose(img *image.RGBA, text string, fonts *FontSet, size int, col config.Color, align Align, withMarkup bool, strokeWidth int, strokeColor *config.Color) {
	if withMarkup {
		segments := markup.Parse(text)
		r.drawFormatted(img, segments, fonts, size, col, align, strokeWidth, strokeColor)
		return
	}
	face := fonts.Face(size, false, false)
	lines := layout.Wrap(text, face, r.budget().AvailWidth())
	r.drawMultiline(img, lines, face, col, align, strokeWidth, strokeColor)
}

// effectiveSpacing reserves room for the stroke halo between lines.
func (r *Renderer) effectiveSpacing(strokeWidth int) int {
	spacing := r.cfg.Image.LineSpacing
	if strokeWidth > 0 {
		spacing += 2 * strokeWidth
	}
	return spacing
}

func (r *Renderer) drawMultiline(img *image.RGBA, lines []string, face font.Face, col config.Color, align Align, strokeWidth int, strokeColor *config.Color) {
	heights := make([]int, len(lines))
	total := 0
	for i, line := range lines {
		heights[i] = layout.Bounds(face, line).Dy()
		total += heights[i]
	}
	spacing := r.effectiveSpacing(strokeWidth)
	total += (len(lines) - 1) * spacing

	// The text block is centered within the padded region, not the canvas.
	y := r.padding.Top + (r.budget().AvailHeight()-total)/2

	for i, line := range lines {
		last := i == len(lines)-1
		if align == AlignJustify && len(lines) > 1 && !last {
			r.drawJustified(img, line, y, face, col, strokeWidth, strokeColor)
		} else {
			width := layout.TextWidth(face, line)
			x := r.lineStart(align, width)
			r.drawRun(img, face, line, x, y, col, strokeWidth, strokeColor)
		}
		y += heights[i] + spacing
	}
}

// lineStart computes the x origin for a line of the given width. Under
// justify, the last line (the only one reaching here) is centered.
func (r *Renderer) lineStart(align Align, width int) int {
	switch align {
	case AlignLeft:
		return r.padding.Left
	case AlignRight:
		return r.width - width - r.padding.Right
	default:
		return (r.width - width) / 2
	}
}

func (r *Renderer) drawJustified(img *image.RGBA, line string, y int, face font.Face, col config.Color, strokeWidth int, strokeColor *config.Color) {
	words := strings.Fields(line)
	if len(words) <= 1 {
		width := layout.TextWidth(face, line)
		r.drawRun(img, face, line, (r.width-width)/2, y, col, strokeWidth, strokeColor)
		return
	}

	widths := make([]int, len(words))
	for i, word := range words {
		widths[i] = layout.TextWidth(face, word)
	}
	offsets, ok := justifyOffsets(widths, r.budget().AvailWidth())
	if !ok {
		// Words wider than the budget: left-align instead of overlapping.
		r.drawRun(img, face, line, r.padding.Left, y, col, strokeWidth, strokeColor)
		return
	}
	for i, word := range words {
		r.drawRun(img, face, word, r.padding.Left+offsets[i], y, col, strokeWidth, strokeColor)
	}
}

// justifyOffsets spreads words so the extra space is distributed evenly
// across the inter-word gaps. ok is false when the words alone exceed
// avail and the caller should fall back to left alignment.
func justifyOffsets(widths []int, avail int) ([]int, bool) {
	if len(widths) < 2 {
		return nil, false
	}
	total := 0
	for _, w := range widths {
		total += w
	}
	slack := avail - total
	if slack < 0 {
		return nil, false
	}
	gap := float64(slack) / float64(len(widths)-1)
	offsets := make([]int, len(widths))
	x := 0.0
	for i, w := range widths {
		offsets[i] = int(x)
		x += float64(w) + gap
	}
	return offsets, true
}

func (r *Renderer) drawFormatted(img *image.RGBA, segments []markup.Segment, fonts *FontSet, size int, col config.Color, align Align, strokeWidth int, strokeColor *config.Color) {
	lines := layout.WrapSegments(segments, fonts, size, r.budget().AvailWidth())

	heights := make([]int, len(lines))
	total := 0
	for i, line := range lines {
		h := 0
		for _, seg := range line {
			face := fonts.Face(size, seg.Bold, seg.Italic)
			if d := layout.Bounds(face, seg.Text).Dy(); d > h {
				h = d
			}
		}
		heights[i] = h
		total += h
	}
	spacing := r.effectiveSpacing(strokeWidth)
	total += (len(lines) - 1) * spacing

	y := r.padding.Top + (r.budget().AvailHeight()-total)/2

	for i, line := range lines {
		last := i == len(lines)-1
		if align == AlignJustify && len(lines) > 1 && !last {
			r.drawJustifiedSegments(img, line, y, fonts, size, col, strokeWidth, strokeColor)
		} else {
			r.drawSegmentRun(img, line, y, fonts, size, col, align, strokeWidth, strokeColor)
		}
		y += heights[i] + spacing
	}
}

func (r *Renderer) drawSegmentRun(img *image.RGBA, line []markup.Segment, y int, fonts *FontSet, size int, col config.Color, align Align, strokeWidth int, strokeColor *config.Color) {
	width := 0
	for _, seg := range line {
		face := fonts.Face(size, seg.Bold, seg.Italic)
		width += layout.TextWidth(face, seg.Text)
	}
	x := r.lineStart(align, width)

	for _, seg := range line {
		if seg.Text == "" {
			continue
		}
		face := fonts.Face(size, seg.Bold, seg.Italic)
		r.drawRun(img, face, seg.Text, x, y, col, strokeWidth, strokeColor)
		segWidth := layout.TextWidth(face, seg.Text)
		if seg.Underline {
			r.drawUnderline(img, face, seg.Text, x, y, segWidth, col)
		}
		x += segWidth
	}
}

// drawJustifiedSegments distributes word gaps across a formatted line the
// same way the plain-text path does, dropping the synthetic space
// segments and spreading the words instead.
func (r *Renderer) drawJustifiedSegments(img *image.RGBA, line []markup.Segment, y int, fonts *FontSet, size int, col config.Color, strokeWidth int, strokeColor *config.Color) {
	var words []markup.Segment
	for _, seg := range line {
		if strings.TrimSpace(seg.Text) != "" {
			words = append(words, seg)
		}
	}
	if len(words) <= 1 {
		r.drawSegmentRun(img, line, y, fonts, size, col, AlignCenter, strokeWidth, strokeColor)
		return
	}

	widths := make([]int, len(words))
	for i, seg := range words {
		face := fonts.Face(size, seg.Bold, seg.Italic)
		widths[i] = layout.TextWidth(face, seg.Text)
	}
	offsets, ok := justifyOffsets(widths, r.budget().AvailWidth())
	if !ok {
		r.drawSegmentRun(img, line, y, fonts, size, col, AlignLeft, strokeWidth, strokeColor)
		return
	}
	for i, seg := range words {
		face := fonts.Face(size, seg.Bold, seg.Italic)
		x := r.padding.Left + offsets[i]
		r.drawRun(img, face, seg.Text, x, y, col, strokeWidth, strokeColor)
		if seg.Underline {
			r.drawUnderline(img, face, seg.Text, x, y, widths[i], col)
		}
	}
}

// drawRun draws one glyph run: the stroke passes first, offset in every
// direction up to the stroke width, then the fill on top.
func (r *Renderer) drawRun(img *image.RGBA, face font.Face, s string, x, y int, col config.Color, strokeWidth int, strokeColor *config.Color) {
	if strokeWidth > 0 && strokeColor != nil {
		for dy := -strokeWidth; dy <= strokeWidth; dy++ {
			for dx := -strokeWidth; dx <= strokeWidth; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				drawText(img, face, s, x+dx, y+dy, *strokeColor)
			}
		}
	}
	drawText(img, face, s, x, y, col)
}

// drawUnderline draws a 1px rule one pixel below the run's ink box.
func (r *Renderer) drawUnderline(img *image.RGBA, face font.Face, s string, x, y, width int, col config.Color) {
	ruleY := y + layout.Bounds(face, s).Dy() + 1
	if ruleY < 0 || ruleY >= img.Bounds().Dy() {
		return
	}
	c := col.RGBA()
	for px := max(x, 0); px < min(x+width, img.Bounds().Dx()); px++ {
		img.SetRGBA(px, ruleY, c)
	}
}

// drawText places the run's ink box with its top-left corner at (x, y),
// matching how line widths and heights are measured.
func drawText(img *image.RGBA, face font.Face, s string, x, y int, col config.Color) {
	b, _ := font.BoundString(face, s)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col.RGBA()),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(x) - b.Min.X,
			Y: fixed.I(y) - b.Min.Y,
		},
	}
	d.DrawString(s)
}
