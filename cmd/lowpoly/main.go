// lowpoly - painter's-algorithm 3D renderer for the terminal
// Renders a low-poly scene with flat-shaded triangles, directional and
// point lights and fog. OBJ, glTF and GLB models given as arguments are
// placed on a turntable.
//
// Controls:
//
//	A/D, arrows - Orbit left/right
//	W/S         - Orbit up/down
//	+/-, scroll - Zoom
//	R           - Reset view
//	N           - Toggle normals
//	B           - Toggle bounding boxes
//	C           - Toggle backface culling
//	F           - Toggle fog
//	?           - Toggle HUD overlay
//	Esc, Q      - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/taigrr/lowpoly/internal/config"
	"github.com/taigrr/lowpoly/internal/logger"
	"github.com/taigrr/lowpoly/internal/loop"
	"github.com/taigrr/lowpoly/pkg/models"
	"github.com/taigrr/lowpoly/pkg/render"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "lowpoly - painter's-algorithm 3D renderer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: lowpoly [options] [model.obj|model.gltf|model.glb ...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  A/D W/S     - Orbit\n")
		fmt.Fprintf(os.Stderr, "  +/-, scroll - Zoom\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset view\n")
		fmt.Fprintf(os.Stderr, "  N/B/C/F     - Normals, bounds, backfaces, fog\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	snapshot := config.SnapshotPath()
	// The terminal viewer owns stdout and stderr, so it only logs to file.
	opts := logger.Options{Level: cfg.Logging.Level, File: cfg.Logging.LogFile}
	if snapshot != "" {
		opts.Console = os.Stderr
	}
	if err := logger.Init(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, snapshot); err != nil {
		if snapshot == "" {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		logger.Fatal("lowpoly failed", zap.Error(err))
	}
}

func run(cfg *config.Config, snapshot string) error {
	d, err := buildDemo(cfg)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}

	driver := loop.New(d.scene, logger.Named("loop"))
	driver.MaxDelta = cfg.Graphics.MaxDelta

	if snapshot != "" {
		return runSnapshot(cfg, d, driver, snapshot)
	}
	return runTerminal(cfg, d, driver)
}

// runSnapshot loads every model, renders a single frame and writes it to
// path as a PNG.
func runSnapshot(cfg *config.Config, d *demo, driver *loop.Driver, path string) error {
	geos, err := models.LoadAll(context.Background(), cfg.Scene.Models...)
	if err != nil {
		return err
	}
	d.attachModels(geos)

	fb := render.NewFramebuffer(cfg.Graphics.Width, cfg.Graphics.Height)
	fb.Clear(d.background)
	if err := driver.Step(1/float64(cfg.Graphics.FPS), fb); err != nil {
		return err
	}
	if err := fb.SavePNG(path); err != nil {
		return err
	}

	st := d.camera.Stats
	logger.Info("snapshot written",
		zap.String("path", path),
		zap.Int("width", fb.Width),
		zap.Int("height", fb.Height),
		zap.Int("polygons", st.PolygonsDrawn),
		zap.Int("models", d.models),
	)
	return nil
}
