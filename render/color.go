package render

import "github.com/ByLCY/signboard/config"

// Auto-stroke triggers below this WCAG-style contrast ratio.
const minContrastRatio = 7.0

// Luminance is the relative luminance of c with normalized channels.
func Luminance(c config.Color) float64 {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio computes the WCAG contrast ratio between two colors.
func ContrastRatio(a, b config.Color) float64 {
	la, lb := Luminance(a), Luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// ContrastingColor picks black for perceptually bright colors and white
// for dark ones, using the classic integer brightness weighting.
func ContrastingColor(c config.Color) config.Color {
	brightness := (int(c.R)*299 + int(c.G)*587 + int(c.B)*114) / 1000
	if brightness > 128 {
		return config.Color{}
	}
	return config.Color{R: 255, G: 255, B: 255}
}

// ResolveStroke decides the effective stroke width and color. An explicit
// width wins, deriving a contrasting color when none is given. With
// auto-stroke requested, a 1px stroke is enabled for low-contrast
// non-white text. This is a legibility heuristic, not an accessibility
// guarantee.
func ResolveStroke(text, background config.Color, width int, color *config.Color, auto bool) (int, *config.Color) {
	if width == 0 && !auto {
		return 0, nil
	}
	if width > 0 {
		if color == nil {
			c := ContrastingColor(text)
			color = &c
		}
		return width, color
	}
	if auto {
		white := config.Color{R: 255, G: 255, B: 255}
		if ContrastRatio(text, background) < minContrastRatio && text != white {
			c := ContrastingColor(text)
			return 1, &c
		}
	}
	return 0, nil
}
