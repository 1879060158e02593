// Package config holds the immutable configuration value shared by the
// rendering pipeline, the upload client and the CLI. Components receive a
// Config (or one of its sections) at construction; nothing reads ambient
// global state.
package config

import (
	"image/color"
	"strconv"
	"strings"
	"time"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// RGBA bridges Color to the standard image/color model.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Scheme pairs a background with a text color.
type Scheme struct {
	Background Color
	Text       Color
}

// Display describes the remote display device and its canvas.
type Display struct {
	BaseURL     string
	Timeout     time.Duration
	Width       int
	Height      int
	JPEGQuality int
	Slots       []int
}

// Padding is a per-side pixel inset.
type Padding struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// Image carries the text-rendering constants.
type Image struct {
	DefaultBackground Color
	DefaultText       Color
	DefaultFontSize   int
	LineSpacing       int
	Padding           Padding

	// Auto font size search bounds and the tighter paddings the search
	// uses to fill more of the canvas.
	MinAutoFontSize       int
	MaxAutoFontSize       int
	AutoSizeIterations    int
	AutoSizePadding       int
	AutoSizePaddingBottom int

	FontSizes map[string]int
	Colors    map[string]Color
	Schemes   map[string]Scheme
}

// Config is the root configuration value.
type Config struct {
	Display Display
	Image   Image
}

// Default returns the built-in configuration for the 240x240 display.
func Default() Config {
	return Config{
		Display: Display{
			BaseURL:     "http://192.168.10.154",
			Timeout:     10 * time.Second,
			Width:       240,
			Height:      240,
			JPEGQuality: 70,
			Slots:       []int{1, 2, 3, 4, 5},
		},
		Image: Image{
			DefaultBackground: Color{0, 0, 0},
			DefaultText:       Color{255, 255, 255},
			DefaultFontSize:   24,
			LineSpacing:       10,
			// Extra bottom padding leaves room for the device's IP overlay.
			Padding: Padding{Top: 0, Bottom: 25, Left: 0, Right: 0},

			MinAutoFontSize:       10,
			MaxAutoFontSize:       200,
			AutoSizeIterations:    10,
			AutoSizePadding:       10,
			AutoSizePaddingBottom: 35,

			FontSizes: map[string]int{
				"small":  18,
				"medium": 24,
				"large":  32,
				"xlarge": 48,
			},
			Colors: map[string]Color{
				"white":     {255, 255, 255},
				"black":     {0, 0, 0},
				"red":       {255, 0, 0},
				"green":     {0, 255, 0},
				"blue":      {0, 0, 255},
				"yellow":    {255, 255, 0},
				"cyan":      {0, 255, 255},
				"magenta":   {255, 0, 255},
				"orange":    {255, 165, 0},
				"purple":    {128, 0, 128},
				"pink":      {255, 192, 203},
				"lime":      {50, 205, 50},
				"navy":      {0, 0, 128},
				"gray":      {128, 128, 128},
				"silver":    {192, 192, 192},
				"brown":     {165, 42, 42},
				"gold":      {255, 215, 0},
				"turquoise": {64, 224, 208},
			},
			Schemes: map[string]Scheme{
				"default": {Background: Color{0, 0, 0}, Text: Color{255, 255, 255}},
				"blue":    {Background: Color{0, 50, 100}, Text: Color{255, 255, 255}},
				"green":   {Background: Color{0, 80, 40}, Text: Color{255, 255, 255}},
				"red":     {Background: Color{100, 20, 20}, Text: Color{255, 255, 255}},
				"light":   {Background: Color{240, 240, 240}, Text: Color{20, 20, 20}},
				"purple":  {Background: Color{60, 20, 80}, Text: Color{255, 200, 255}},
			},
		},
	}
}

// Scheme returns the named color scheme, falling back to "default".
func (c Config) Scheme(name string) Scheme {
	if s, ok := c.Image.Schemes[name]; ok {
		return s
	}
	return c.Image.Schemes["default"]
}

// ValidSlot reports whether slot is one of the device's slots.
func (c Config) ValidSlot(slot int) bool {
	for _, s := range c.Display.Slots {
		if s == slot {
			return true
		}
	}
	return false
}

// ParseColor resolves a color string: a named color, a scheme name (its
// text color), "#rrggbb" hex, or an "r,g,b" triple. Anything it cannot
// parse degrades to the default text color.
func (c Config) ParseColor(s string) Color {
	s = strings.ToLower(strings.TrimSpace(s))

	if col, ok := c.Image.Colors[s]; ok {
		return col
	}
	if scheme, ok := c.Image.Schemes[s]; ok {
		return scheme.Text
	}

	if hex, ok := strings.CutPrefix(s, "#"); ok && len(hex) == 6 {
		if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
			return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
		}
	}

	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		if len(parts) == 3 {
			var ch [3]uint8
			ok := true
			for i, p := range parts {
				v, err := strconv.Atoi(strings.TrimSpace(p))
				if err != nil || v < 0 || v > 255 {
					ok = false
					break
				}
				ch[i] = uint8(v)
			}
			if ok {
				return Color{R: ch[0], G: ch[1], B: ch[2]}
			}
		}
	}

	return c.Image.DefaultText
}

// FontSize resolves a size string: a named size or an integer within
// [8, 100]. ok is false when s is neither.
func (c Config) FontSize(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if size, ok := c.Image.FontSizes[s]; ok {
		return size, true
	}
	if size, err := strconv.Atoi(s); err == nil && size >= 8 && size <= 100 {
		return size, true
	}
	return 0, false
}

// ParseFontSize is FontSize degrading to the default size.
func (c Config) ParseFontSize(s string) int {
	if size, ok := c.FontSize(s); ok {
		return size
	}
	return c.Image.DefaultFontSize
}
