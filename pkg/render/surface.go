package render

import "github.com/taigrr/lowpoly/pkg/palette"

// Surface is a 2D drawing target with a canvas-like path API.
// Coordinates are pixels with the origin at the top-left and y growing down.
type Surface interface {
	// Size returns the viewport in pixels.
	Size() (width, height int)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()

	// Fill paints the interior of the current path.
	Fill(c palette.Color)
	// Stroke outlines the current path.
	Stroke(c palette.Color, width float64)
	// FillCircle paints a disc independent of the current path.
	FillCircle(x, y, r float64, c palette.Color)
}
