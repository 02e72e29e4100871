// Package render implements the painter's-algorithm camera, the lighting
// model and the pixel surfaces it draws on.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/vector"

	"github.com/taigrr/lowpoly/pkg/palette"
)

// coverageThreshold is the minimum rasterizer coverage (0-255) for a pixel
// to be painted. Edges are hard, there is no blending.
const coverageThreshold = 128

// Framebuffer is a 2D array of pixels that implements Surface.
// For terminal output the height is 2x the terminal rows (half-blocks).
type Framebuffer struct {
	Width  int          // Width in pixels
	Height int          // Height in pixels
	Pixels []color.RGBA // Row-major pixel data

	path   [][]point
	closed []bool

	raster *vector.Rasterizer
	mask   *image.Alpha
}

type point struct{ x, y float64 }

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
		raster: vector.NewRasterizer(0, 0),
	}
}

// Size implements Surface.
func (fb *Framebuffer) Size() (int, int) {
	return fb.Width, fb.Height
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c palette.Color) {
	px := toRGBA(c)
	for i := range fb.Pixels {
		fb.Pixels[i] = px
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// BeginPath implements Surface.
func (fb *Framebuffer) BeginPath() {
	fb.path = fb.path[:0]
	fb.closed = fb.closed[:0]
}

// MoveTo implements Surface.
func (fb *Framebuffer) MoveTo(x, y float64) {
	fb.path = append(fb.path, []point{{x, y}})
	fb.closed = append(fb.closed, false)
}

// LineTo implements Surface. Without a preceding MoveTo it starts a subpath.
func (fb *Framebuffer) LineTo(x, y float64) {
	if len(fb.path) == 0 {
		fb.MoveTo(x, y)
		return
	}
	last := len(fb.path) - 1
	fb.path[last] = append(fb.path[last], point{x, y})
}

// ClosePath implements Surface.
func (fb *Framebuffer) ClosePath() {
	if len(fb.closed) > 0 {
		fb.closed[len(fb.closed)-1] = true
	}
}

// Fill implements Surface using a nonzero-winding scanline rasterizer.
func (fb *Framebuffer) Fill(c palette.Color) {
	bounds, ok := fb.pathBounds()
	if !ok {
		return
	}

	fb.raster.Reset(bounds.Dx(), bounds.Dy())
	ox, oy := float64(bounds.Min.X), float64(bounds.Min.Y)
	for _, sub := range fb.path {
		if len(sub) < 3 {
			continue
		}
		fb.raster.MoveTo(float32(sub[0].x-ox), float32(sub[0].y-oy))
		for _, p := range sub[1:] {
			fb.raster.LineTo(float32(p.x-ox), float32(p.y-oy))
		}
		fb.raster.ClosePath()
	}
	fb.paintMask(bounds, toRGBA(c))
}

// Stroke implements Surface with Bresenham lines. Widths above 1 stamp a
// square brush.
func (fb *Framebuffer) Stroke(c palette.Color, width float64) {
	px := toRGBA(c)
	brush := max(1, int(math.Round(width)))
	for i, sub := range fb.path {
		for j := 1; j < len(sub); j++ {
			fb.drawThickLine(sub[j-1], sub[j], brush, px)
		}
		if fb.closed[i] && len(sub) > 2 {
			fb.drawThickLine(sub[len(sub)-1], sub[0], brush, px)
		}
	}
}

// FillCircle implements Surface. The disc is approximated by four cubic
// Bézier arcs.
func (fb *Framebuffer) FillCircle(x, y, r float64, c palette.Color) {
	if r <= 0 {
		return
	}
	bounds := image.Rect(
		int(math.Floor(x-r)), int(math.Floor(y-r)),
		int(math.Ceil(x+r)), int(math.Ceil(y+r)),
	).Intersect(image.Rect(0, 0, fb.Width, fb.Height))
	if bounds.Empty() {
		return
	}

	// Control point distance for a quarter circle.
	const k = 0.5522847498
	cx, cy := float32(x-float64(bounds.Min.X)), float32(y-float64(bounds.Min.Y))
	rr := float32(r)
	kr := float32(k * r)

	z := fb.raster
	z.Reset(bounds.Dx(), bounds.Dy())
	z.MoveTo(cx+rr, cy)
	z.CubeTo(cx+rr, cy+kr, cx+kr, cy+rr, cx, cy+rr)
	z.CubeTo(cx-kr, cy+rr, cx-rr, cy+kr, cx-rr, cy)
	z.CubeTo(cx-rr, cy-kr, cx-kr, cy-rr, cx, cy-rr)
	z.CubeTo(cx+kr, cy-rr, cx+rr, cy-kr, cx+rr, cy)
	z.ClosePath()
	fb.paintMask(bounds, toRGBA(c))
}

// paintMask rasterizes the pending vector path into the mask and copies
// covered pixels into bounds.
func (fb *Framebuffer) paintMask(bounds image.Rectangle, px color.RGBA) {
	w, h := bounds.Dx(), bounds.Dy()
	if fb.mask == nil || fb.mask.Rect.Dx() < w || fb.mask.Rect.Dy() < h {
		fb.mask = image.NewAlpha(image.Rect(0, 0, max(w, fb.Width), max(h, fb.Height)))
	}
	m := fb.mask.SubImage(image.Rect(0, 0, w, h)).(*image.Alpha)
	for y := range h {
		clear(m.Pix[y*m.Stride : y*m.Stride+w])
	}

	fb.raster.Draw(m, m.Bounds(), image.Opaque, image.Point{})

	for y := range h {
		row := m.Pix[y*m.Stride : y*m.Stride+w]
		for x, a := range row {
			if a >= coverageThreshold {
				fb.SetPixel(bounds.Min.X+x, bounds.Min.Y+y, px)
			}
		}
	}
}

// pathBounds returns the pixel box of the current path clipped to the
// framebuffer.
func (fb *Framebuffer) pathBounds() (image.Rectangle, bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, sub := range fb.path {
		for _, p := range sub {
			minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
			minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
		}
	}
	if math.IsInf(minX, 1) || math.IsNaN(minX) || math.IsNaN(minY) {
		return image.Rectangle{}, false
	}

	r := image.Rect(
		int(math.Floor(clampCoord(minX))), int(math.Floor(clampCoord(minY))),
		int(math.Ceil(clampCoord(maxX))), int(math.Ceil(clampCoord(maxY))),
	).Intersect(image.Rect(0, 0, fb.Width, fb.Height))
	return r, !r.Empty()
}

// clampCoord keeps far off-screen coordinates within int range.
func clampCoord(v float64) float64 {
	const limit = 1 << 20
	return math.Max(-limit, math.Min(limit, v))
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	fb.bresenham(x0, y0, x1, y1, func(x, y int) { fb.SetPixel(x, y, c) })
}

func (fb *Framebuffer) drawThickLine(a, b point, brush int, c color.RGBA) {
	x0, y0 := int(math.Round(clampCoord(a.x))), int(math.Round(clampCoord(a.y)))
	x1, y1 := int(math.Round(clampCoord(b.x))), int(math.Round(clampCoord(b.y)))
	if brush == 1 {
		fb.DrawLine(x0, y0, x1, y1, c)
		return
	}
	off := brush / 2
	fb.bresenham(x0, y0, x1, y1, func(x, y int) {
		for dy := range brush {
			for dx := range brush {
				fb.SetPixel(x-off+dx, y-off+dy, c)
			}
		}
	})
}

func (fb *Framebuffer) bresenham(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func toRGBA(c palette.Color) color.RGBA {
	n := c.NRGBA()
	return color.RGBA{n.R, n.G, n.B, 255}
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, fb.ToImage()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
