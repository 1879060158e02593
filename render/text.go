package render

import (
	"image"

	"github.com/ByLCY/signboard/config"
	"github.com/ByLCY/signboard/renderer"
)

// Gradient describes a linear gradient background.
type Gradient struct {
	From config.Color
	To   config.Color
	Dir  Direction
}

// TextRenderer renders text to JPEG bytes with a fixed set of options.
type TextRenderer struct {
	r       *Renderer
	opts    Options
	grad    *Gradient
	quality int
}

var _ renderer.Renderer = (*TextRenderer)(nil)

// NewTextRenderer builds a renderer for the given geometry and options.
// A nil gradient means a solid background.
func NewTextRenderer(cfg config.Config, padding config.Padding, opts Options, grad *Gradient) *TextRenderer {
	return &TextRenderer{
		r:       NewWithPadding(cfg, padding),
		opts:    opts,
		grad:    grad,
		quality: cfg.Display.JPEGQuality,
	}
}

func (t *TextRenderer) Render(text string) ([]byte, error) {
	var img *image.RGBA
	if t.grad != nil {
		img = t.r.GradientImage(text, t.grad.From, t.grad.To, t.grad.Dir, t.opts)
	} else {
		img = t.r.TextImage(text, t.opts)
	}
	return EncodeJPEG(img, t.quality)
}
