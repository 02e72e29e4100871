// Package loop drives frames: it drains work posted from other goroutines,
// advances the scene and renders the current camera.
package loop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/taigrr/lowpoly/pkg/render"
	"github.com/taigrr/lowpoly/pkg/scene"
)

// MaxDelta is the default longest frame, in seconds, whose delta is passed
// on. Longer frames (a stall, a debugger pause) run with dt = 0.
const MaxDelta = 0.1

// statsEvery is the number of frames between debug stats entries.
const statsEvery = 120

var (
	// ErrNoScene is returned when stepping a driver without a scene.
	ErrNoScene = errors.New("loop: no scene")
	// ErrNoCamera is returned when the scene has no current camera.
	ErrNoCamera = errors.New("loop: no current camera")
)

// Target is where Run draws each frame.
type Target interface {
	// Begin returns the surface for the next frame, cleared and sized.
	Begin() render.Surface
	// Present shows the finished frame.
	Present() error
}

// Driver runs the per-frame sequence for one scene. Step and Run must be
// called from a single goroutine; Post may be called from any.
type Driver struct {
	Scene    *scene.Scene
	MaxDelta float64

	log *zap.Logger

	mu      sync.Mutex
	pending []func()

	frames uint64
}

// New creates a driver for s. A nil logger discards output.
func New(s *scene.Scene, log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{Scene: s, MaxDelta: MaxDelta, log: log}
}

// Post queues fn to run on the frame goroutine at the start of the next
// Step. It is safe for concurrent use.
func (d *Driver) Post(fn func()) {
	d.mu.Lock()
	d.pending = append(d.pending, fn)
	d.mu.Unlock()
}

// Frames returns the number of frames rendered so far.
func (d *Driver) Frames() uint64 { return d.frames }

// Step runs one frame: posted work, Process(dt) on the scene, then the
// current camera renders onto s.
func (d *Driver) Step(dt float64, s render.Surface) error {
	if d.Scene == nil {
		return ErrNoScene
	}

	if dt > d.MaxDelta {
		d.log.Warn("frame delta too large, holding time", zap.Float64("dt", dt), zap.Float64("max", d.MaxDelta))
		dt = 0
	}

	d.drain()
	d.Scene.Process(dt)

	cam := render.Current(d.Scene)
	if cam == nil {
		return ErrNoCamera
	}
	if err := cam.Render(dt, s); err != nil {
		return fmt.Errorf("render frame: %w", err)
	}

	d.frames++
	if d.frames%statsEvery == 0 {
		st := cam.Stats
		d.log.Debug("frame stats",
			zap.Uint64("frame", d.frames),
			zap.Int("meshes", st.MeshesDrawn),
			zap.Int("meshes_culled", st.MeshesCulled),
			zap.Int("polygons", st.PolygonsDrawn),
			zap.Int("backface_culled", st.BackfaceCulled),
			zap.Int("frustum_culled", st.FrustumCulled),
			zap.Int("distance_culled", st.DistanceCulled),
		)
	}
	return nil
}

// Run steps at fps frames per second until ctx is done or a frame fails.
// It returns nil when ctx ends the loop.
func (d *Driver) Run(ctx context.Context, fps int, target Target) error {
	if fps <= 0 {
		return fmt.Errorf("loop: invalid fps %d", fps)
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			if err := d.Step(dt, target.Begin()); err != nil {
				return err
			}
			if err := target.Present(); err != nil {
				return fmt.Errorf("present frame: %w", err)
			}
		}
	}
}

func (d *Driver) drain() {
	d.mu.Lock()
	work := d.pending
	d.pending = nil
	d.mu.Unlock()

	for _, fn := range work {
		fn()
	}
}
