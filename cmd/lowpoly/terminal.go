package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"

	"github.com/taigrr/lowpoly/internal/config"
	"github.com/taigrr/lowpoly/internal/logger"
	"github.com/taigrr/lowpoly/internal/loop"
	"github.com/taigrr/lowpoly/pkg/models"
	"github.com/taigrr/lowpoly/pkg/render"
)

const (
	zoomStep  = 0.5
	nudgeStep = 0.15
)

// terminalTarget presents frames on the terminal. It implements loop.Target.
type terminalTarget struct {
	term     *uv.Terminal
	renderer *render.TerminalRenderer
	fb       *render.Framebuffer
	hud      *HUD
	demo     *demo

	width, height int
}

func (t *terminalTarget) resize(width, height int) {
	t.width, t.height = width, height
	t.renderer = render.NewTerminalRenderer(t.term, width, height)
	t.fb = render.NewFramebuffer(t.renderer.FramebufferSize())
}

// Begin implements loop.Target.
func (t *terminalTarget) Begin() render.Surface {
	t.fb.Clear(t.demo.background)
	return t.fb
}

// Present implements loop.Target.
func (t *terminalTarget) Present() error {
	t.renderer.Render(t.fb)
	if err := t.renderer.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	t.hud.UpdateFPS()
	t.hud.Render(t.width, t.height, t.demo.camera.Stats, t.demo)
	return nil
}

func runTerminal(cfg *config.Config, d *demo, driver *loop.Driver) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	target := &terminalTarget{term: term, hud: NewHUD(), demo: d}
	target.resize(width, height)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	if len(cfg.Scene.Models) > 0 {
		go func() {
			geos, err := models.LoadAll(ctx, cfg.Scene.Models...)
			if err != nil {
				logger.Error("load models", zap.Error(err))
				return
			}
			logger.Info("models loaded", zap.Int("count", len(geos)))
			driver.Post(func() { d.attachModels(geos) })
		}()
	} else {
		d.attachModels(nil)
	}

	go handleEvents(term, target, driver, cancel)

	logger.Info("viewer started", zap.Int("cols", width), zap.Int("rows", height), zap.Int("fps", cfg.Graphics.FPS))
	err = driver.Run(ctx, cfg.Graphics.FPS, target)
	logger.Info("viewer stopped", zap.Uint64("frames", driver.Frames()))
	return err
}

// handleEvents turns terminal input into work posted to the frame
// goroutine.
func handleEvents(term *uv.Terminal, target *terminalTarget, driver *loop.Driver, cancel context.CancelFunc) {
	d := target.demo
	for ev := range term.Events() {
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			w, h := ev.Width, ev.Height
			driver.Post(func() {
				term.Erase()
				term.Resize(w, h)
				target.resize(w, h)
			})

		case uv.KeyPressEvent:
			switch {
			case ev.MatchString("escape"), ev.MatchString("ctrl+c"), ev.MatchString("q"):
				cancel()
				return
			case ev.MatchString("a", "left"):
				driver.Post(func() { d.orbit.Nudge(-nudgeStep, 0) })
			case ev.MatchString("d", "right"):
				driver.Post(func() { d.orbit.Nudge(nudgeStep, 0) })
			case ev.MatchString("w", "up"):
				driver.Post(func() { d.orbit.Nudge(0, nudgeStep) })
			case ev.MatchString("s", "down"):
				driver.Post(func() { d.orbit.Nudge(0, -nudgeStep) })
			case ev.MatchString("+", "="):
				driver.Post(func() { d.orbit.Zoom(-zoomStep) })
			case ev.MatchString("-", "_"):
				driver.Post(func() { d.orbit.Zoom(zoomStep) })
			case ev.MatchString("r"):
				driver.Post(d.orbit.Reset)
			case ev.MatchString("n"):
				driver.Post(func() {
					dbg := d.debug
					dbg.ShowNormals = !dbg.ShowNormals
					d.setDebug(dbg)
				})
			case ev.MatchString("b"):
				driver.Post(func() {
					dbg := d.debug
					dbg.ShowAABB = !dbg.ShowAABB
					d.setDebug(dbg)
				})
			case ev.MatchString("c"):
				driver.Post(func() { d.camera.DisableBackfaceCulling = !d.camera.DisableBackfaceCulling })
			case ev.MatchString("f"):
				driver.Post(d.toggleFog)
			case ev.MatchString("?"), ev.MatchString("shift+/"):
				driver.Post(func() { target.hud.Show = !target.hud.Show })
			}

		case uv.MouseWheelEvent:
			switch ev.Button {
			case uv.MouseWheelUp:
				driver.Post(func() { d.orbit.Zoom(-zoomStep) })
			case uv.MouseWheelDown:
				driver.Post(func() { d.orbit.Zoom(zoomStep) })
			}
		}
	}
}
