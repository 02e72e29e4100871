package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen, starting at the top-left of area.
// The framebuffer height should be 2x the terminal height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// Each terminal row represents 2 framebuffer rows.
	// We use ▀ (upper half block) with fg=top color and bg=bottom color.
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col-area.Min.X < fb.Width; col++ {
			x := col - area.Min.X
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(x, topY)),
					Bg: rgbaToColor(fb.GetPixel(x, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// Display is a cell screen that can push its pending cells to the terminal.
// *uv.Terminal satisfies it.
type Display interface {
	uv.Screen
	Display() error
}

// TerminalRenderer presents framebuffers on a terminal using half-block
// cells, two pixel rows per terminal row.
type TerminalRenderer struct {
	display Display
	width   int
	height  int
}

// NewTerminalRenderer creates a renderer for a terminal of width columns
// and height rows.
func NewTerminalRenderer(d Display, width, height int) *TerminalRenderer {
	return &TerminalRenderer{display: d, width: width, height: height}
}

// FramebufferSize returns the pixel size a framebuffer should have to fill
// the terminal.
func (r *TerminalRenderer) FramebufferSize() (int, int) {
	return r.width, r.height * 2
}

// Render copies fb into the terminal's cell buffer.
func (r *TerminalRenderer) Render(fb *Framebuffer) {
	fb.Draw(r.display, uv.Rect(0, 0, r.width, r.height))
}

// Flush writes the pending cells to the terminal.
func (r *TerminalRenderer) Flush() error {
	return r.display.Display()
}
