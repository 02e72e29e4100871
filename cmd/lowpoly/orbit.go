package main

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/lowpoly/pkg/math3d"
	"github.com/taigrr/lowpoly/pkg/render"
	"github.com/taigrr/lowpoly/pkg/scene"
)

const (
	minDistance = 1.5
	maxPitch    = 1.45
)

// orbitAxis eases Position toward Target with a critically damped spring.
type orbitAxis struct {
	Position float64
	Target   float64
	velocity float64
	spring   harmonica.Spring
}

func newOrbitAxis(fps int, v float64) orbitAxis {
	return orbitAxis{
		Position: v,
		Target:   v,
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

func (a *orbitAxis) Update() {
	a.Position, a.velocity = a.spring.Update(a.Position, a.velocity, a.Target)
}

// Orbit is a scene node that circles a camera around the origin. Input
// moves the targets; the springs smooth the motion.
type Orbit struct {
	scene.Base

	Camera *render.Camera
	Speed  float64 // Radians per second of automatic yaw
	Max    float64 // Farthest allowed distance

	Yaw, Pitch, Distance orbitAxis

	fps     int
	initial [3]float64
}

// NewOrbit places cam at distance from the origin, height above it.
func NewOrbit(cam *render.Camera, fps int, distance, height, speed float64) *Orbit {
	pitch := math.Atan2(height, distance)
	o := &Orbit{
		Base:     scene.NewBase("orbit"),
		Camera:   cam,
		Speed:    speed,
		Max:      math.Max(distance*4, minDistance),
		Yaw:      newOrbitAxis(fps, 0),
		Pitch:    newOrbitAxis(fps, pitch),
		Distance: newOrbitAxis(fps, math.Hypot(distance, height)),
		fps:      fps,
	}
	o.initial = [3]float64{0, o.Pitch.Target, o.Distance.Target}
	o.place()
	return o
}

// Process advances the automatic yaw and the springs.
func (o *Orbit) Process(dt float64) {
	o.Yaw.Target += o.Speed * dt
	o.Yaw.Update()
	o.Pitch.Update()
	o.Distance.Update()
	o.place()
}

// Nudge moves the yaw and pitch targets by the given radians.
func (o *Orbit) Nudge(yaw, pitch float64) {
	o.Yaw.Target += yaw
	o.Pitch.Target = math.Max(-maxPitch, math.Min(maxPitch, o.Pitch.Target+pitch))
}

// Zoom moves the distance target, clamped to [minDistance, Max].
func (o *Orbit) Zoom(delta float64) {
	o.Distance.Target = math.Max(minDistance, math.Min(o.Max, o.Distance.Target+delta))
}

// Reset returns the targets to where the orbit started.
func (o *Orbit) Reset() {
	o.Yaw.Target = o.Yaw.Position - math.Remainder(o.Yaw.Position, 2*math.Pi)
	o.Pitch.Target = o.initial[1]
	o.Distance.Target = o.initial[2]
}

func (o *Orbit) place() {
	y, p, d := o.Yaw.Position, o.Pitch.Position, o.Distance.Position
	o.Camera.Transform.Position = math3d.V3(
		d*math.Cos(p)*math.Sin(y),
		d*math.Sin(p),
		d*math.Cos(p)*math.Cos(y),
	)
	o.Camera.LookAt(math3d.Zero3(), math3d.Up())
}

// spinner rotates itself, and so its children, around the Y axis.
type spinner struct {
	scene.Base
	speed float64
}

func newSpinner(name string, speed float64) *spinner {
	return &spinner{Base: scene.NewBase(name), speed: speed}
}

func (s *spinner) Process(dt float64) {
	s.Rotate(math3d.Up(), s.speed*dt)
}
