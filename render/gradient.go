package render

import (
	"image"
	"image/color"

	"github.com/ByLCY/signboard/config"
)

// Direction selects the axis of a linear gradient.
type Direction int

const (
	Vertical Direction = iota
	Horizontal
)

// GradientBackground fills a fresh canvas with a linear interpolation from
// one color to another along the chosen axis: channel(t) = c1*(1-t)+c2*t
// with t = position/extent, so the first row (or column) is exactly the
// start color.
func (r *Renderer) GradientBackground(from, to config.Color, dir Direction) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	if dir == Horizontal {
		for x := 0; x < r.width; x++ {
			c := lerpColor(from, to, float64(x)/float64(r.width))
			for y := 0; y < r.height; y++ {
				img.SetRGBA(x, y, c)
			}
		}
		return img
	}
	for y := 0; y < r.height; y++ {
		c := lerpColor(from, to, float64(y)/float64(r.height))
		for x := 0; x < r.width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func lerpColor(a, b config.Color, t float64) color.RGBA {
	ch := func(x, y uint8) uint8 {
		return uint8(float64(x)*(1-t) + float64(y)*t)
	}
	return color.RGBA{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B), A: 0xff}
}
