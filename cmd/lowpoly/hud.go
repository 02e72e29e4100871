package main

import (
	"fmt"
	"time"

	"github.com/taigrr/lowpoly/pkg/render"
)

// HUD renders an overlay with frame and culling stats.
type HUD struct {
	Show bool

	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD.
func NewHUD() *HUD {
	return &HUD{fpsTime: time.Now()}
}

// UpdateFPS updates the FPS counter (call once per frame).
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render draws the HUD directly to the terminal, over the last frame.
func (h *HUD) Render(width, height int, stats render.CullingStats, d *demo) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	if !h.Show {
		return
	}

	// Clear the HUD rows so shrinking text leaves no residue.
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	polys := fmt.Sprintf(" %d/%d polys, %d meshes ", stats.PolygonsDrawn, stats.PolygonsTested, stats.MeshesDrawn)
	fmt.Print(moveTo(1, max(width-len(polys), 1)) + bgBlack + fgCyan + bold + polys + reset)

	check := func(on bool) string {
		if on {
			return "[✓]"
		}
		return "[ ]"
	}
	fogOn := d.fog != nil && d.fog.Enabled()
	modes := fmt.Sprintf("%s%s %s N normals  %s B bounds  %s C backfaces  %s F fog %s",
		bgBlack, fgWhite,
		check(d.debug.ShowNormals), check(d.debug.ShowAABB),
		check(!d.camera.DisableBackfaceCulling), check(fogOn), reset)
	fmt.Print(moveTo(height, 1) + modes)

	culled := fmt.Sprintf(" culled: %d back, %d frustum, %d far ", stats.BackfaceCulled, stats.FrustumCulled, stats.DistanceCulled)
	fmt.Print(moveTo(height, max(width-len(culled), 1)) + bgBlack + dim + culled + reset)
}
