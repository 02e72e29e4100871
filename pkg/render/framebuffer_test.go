package render

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/lowpoly/pkg/math3d"
	"github.com/taigrr/lowpoly/pkg/palette"
)

var (
	red   = color.RGBA{255, 0, 0, 255}
	black = color.RGBA{0, 0, 0, 255}
)

func TestFramebufferPixels(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.Clear(palette.Black)
	fb.SetPixel(1, 2, red)
	fb.SetPixel(-1, 0, red)
	fb.SetPixel(4, 0, red)

	if got := fb.GetPixel(1, 2); got != red {
		t.Errorf("GetPixel(1, 2) = %v, want red", got)
	}
	if got := fb.GetPixel(0, 0); got != black {
		t.Errorf("GetPixel(0, 0) = %v, want black", got)
	}
	if got := fb.GetPixel(9, 9); got != (color.RGBA{}) {
		t.Errorf("out of bounds = %v, want zero", got)
	}
}

func TestFramebufferFill(t *testing.T) {
	fb := NewFramebuffer(20, 20)
	fb.Clear(palette.Black)
	fb.BeginPath()
	fb.MoveTo(2, 2)
	fb.LineTo(18, 2)
	fb.LineTo(2, 18)
	fb.ClosePath()
	fb.Fill(palette.Red)

	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"inside", 5, 5, red},
		{"near corner", 3, 3, red},
		{"across hypotenuse", 15, 15, black},
		{"outside bounds", 0, 0, black},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := fb.GetPixel(tc.x, tc.y); got != tc.want {
				t.Errorf("pixel (%d, %d) = %v, want %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestFramebufferFillClipped(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	fb.Clear(palette.Black)
	fb.BeginPath()
	fb.MoveTo(-100, -100)
	fb.LineTo(100, -100)
	fb.LineTo(0, 100)
	fb.ClosePath()
	fb.Fill(palette.Red)

	if got := fb.GetPixel(5, 5); got != red {
		t.Errorf("center = %v, want red", got)
	}
}

func TestFramebufferStroke(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	fb.Clear(palette.Black)
	fb.BeginPath()
	fb.MoveTo(1, 1)
	fb.LineTo(8, 1)
	fb.LineTo(8, 8)
	fb.ClosePath()
	fb.Stroke(palette.Red, 1)

	for _, p := range [][2]int{{1, 1}, {5, 1}, {8, 5}, {4, 4}} {
		if got := fb.GetPixel(p[0], p[1]); got != red {
			t.Errorf("pixel %v = %v, want red", p, got)
		}
	}
	if got := fb.GetPixel(1, 8); got != black {
		t.Errorf("pixel off the path = %v, want black", got)
	}
}

func TestFramebufferFillCircle(t *testing.T) {
	fb := NewFramebuffer(20, 20)
	fb.Clear(palette.Black)
	fb.FillCircle(10, 10, 5, palette.Red)

	if got := fb.GetPixel(10, 10); got != red {
		t.Errorf("center = %v, want red", got)
	}
	if got := fb.GetPixel(10, 6); got != red {
		t.Errorf("inside edge = %v, want red", got)
	}
	if got := fb.GetPixel(14, 14); got != black {
		t.Errorf("outside corner = %v, want black", got)
	}
}

func TestRenderToFramebuffer(t *testing.T) {
	s, cam := newTestScene(t, math3d.Zero3())
	s.Add(triangle("tri", -2, palette.Red))

	fb := NewFramebuffer(40, 40)
	fb.Clear(palette.Black)
	if err := cam.Render(0, fb); err != nil {
		t.Fatal(err)
	}
	if got := fb.GetPixel(20, 20); got != red {
		t.Errorf("center = %v, want red", got)
	}
	if got := fb.GetPixel(0, 0); got != black {
		t.Errorf("corner = %v, want black", got)
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("png not written: %v", err)
	}
}
