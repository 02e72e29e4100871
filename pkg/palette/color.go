// Package palette provides the flat RGB color used for polygon shading.
package palette

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a linear RGB triple with nominal range [0, 1]. Shading may push
// channels outside that range; conversion to output formats clamps.
type Color struct {
	R, G, B float64
}

// Common colors.
var (
	White   = Color{1, 1, 1}
	Black   = Color{0, 0, 0}
	Red     = Color{1, 0, 0}
	Green   = Color{0, 1, 0}
	Blue    = Color{0, 0, 1}
	Yellow  = Color{1, 1, 0}
	Cyan    = Color{0, 1, 1}
	Magenta = Color{1, 0, 1}
	Gray    = Color{0.5, 0.5, 0.5}
)

// RGB creates a color from float channels.
func RGB(r, g, b float64) Color {
	return Color{r, g, b}
}

// RGB8 creates a color from 0-255 channels.
func RGB8(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255}
}

// FromColor converts any image/color value, dropping alpha.
func FromColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{float64(r) / 0xffff, float64(g) / 0xffff, float64(b) / 0xffff}
}

// Add returns the channel-wise sum.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Scale multiplies every channel by s.
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Mul returns the channel-wise product.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Lerp interpolates toward o by t.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		c.R + (o.R-c.R)*t,
		c.G + (o.G-c.G)*t,
		c.B + (o.B-c.B)*t,
	}
}

// Clamped returns the color with every channel limited to [0, 1].
func (c Color) Clamped() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// RGBA implements color.Color. Channels are clamped and alpha is opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	cc := c.Clamped()
	return uint32(math.Round(cc.R * 0xffff)),
		uint32(math.Round(cc.G * 0xffff)),
		uint32(math.Round(cc.B * 0xffff)),
		0xffff
}

// NRGBA converts to an 8-bit color.
func (c Color) NRGBA() color.NRGBA {
	cc := c.Clamped()
	return color.NRGBA{
		R: uint8(math.Round(cc.R * 255)),
		G: uint8(math.Round(cc.G * 255)),
		B: uint8(math.Round(cc.B * 255)),
		A: 255,
	}
}

// HueRotate shifts the hue by deg degrees, keeping saturation and value.
func (c Color) HueRotate(deg float64) Color {
	h, s, v := c.colorful().Hsv()
	h = math.Mod(h+deg, 360)
	if h < 0 {
		h += 360
	}
	return fromColorful(colorful.Hsv(h, s, v))
}

// String returns the clamped color as #rrggbb.
func (c Color) String() string {
	return c.colorful().Hex()
}

func (c Color) colorful() colorful.Color {
	cc := c.Clamped()
	return colorful.Color{R: cc.R, G: cc.G, B: cc.B}
}

func fromColorful(c colorful.Color) Color {
	return Color{c.R, c.G, c.B}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// names holds the color keywords accepted by Parse.
var names = map[string]Color{
	"white":   White,
	"black":   Black,
	"red":     Red,
	"green":   Green,
	"blue":    Blue,
	"yellow":  Yellow,
	"cyan":    Cyan,
	"magenta": Magenta,
	"gray":    Gray,
	"grey":    Gray,
	"orange":  {1, 0.647, 0},
	"purple":  {0.5, 0, 0.5},
	"brown":   {0.647, 0.165, 0.165},
	"skyblue": {0.529, 0.808, 0.922},
}

// Parse reads a color from "#rgb", "#rrggbb", a color name, or three
// comma-separated floats "r,g,b".
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("parse color: empty string")
	}

	if c, ok := names[strings.ToLower(s)]; ok {
		return c, nil
	}

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(expandShortHex(s))
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		return fromColorful(c), nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Color{}, fmt.Errorf("parse color %q: unrecognized format", s)
	}
	var ch [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		ch[i] = v
	}
	return Color{ch[0], ch[1], ch[2]}, nil
}

// expandShortHex turns #rgb into #rrggbb.
func expandShortHex(s string) string {
	if len(s) != 4 {
		return s
	}
	return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
}
