package scene

import (
	"github.com/taigrr/lowpoly/pkg/math3d"
	"github.com/taigrr/lowpoly/pkg/palette"
)

// Lighting defaults.
const (
	DefaultDirectionalExponent = 5.0
	DefaultPointExponent       = 1.0
	DefaultPointRadius         = 2.0
	DefaultFogDensity          = 2.0
)

// DirectionalLight shines along its global forward axis. The last one
// processed each frame becomes the scene's current light. Disabling it
// clears the registry.
type DirectionalLight struct {
	Base

	Color    palette.Color
	Ambient  palette.Color
	Exponent float64
}

// NewDirectionalLight creates a white light shining along direction.
func NewDirectionalLight(direction math3d.Vec3) *DirectionalLight {
	l := &DirectionalLight{
		Base:     NewBase("directional_light"),
		Color:    palette.White,
		Ambient:  palette.RGB(0.2, 0.2, 0.2),
		Exponent: DefaultDirectionalExponent,
	}
	l.Transform.Basis = math3d.LookAt(direction, math3d.Up())
	return l
}

// Direction returns the world-space unit vector the light travels along.
func (l *DirectionalLight) Direction() math3d.Vec3 {
	return l.GlobalTransform().Basis.Forward().Normalize()
}

// EnterTree registers the light as current.
func (l *DirectionalLight) EnterTree() { l.makeCurrent() }

// Process registers the light as current.
func (l *DirectionalLight) Process(float64) { l.makeCurrent() }

// ExitTree clears the registry if this light is current.
func (l *DirectionalLight) ExitTree() {
	if s := l.Scene(); s != nil && s.ctx.Light == l {
		s.ctx.Light = nil
	}
}

func (l *DirectionalLight) makeCurrent() {
	if s := l.Scene(); s != nil && l.EnabledInTree() {
		s.ctx.Light = l
	}
}

// PointLight lights polygons within Radius of its global position.
type PointLight struct {
	Base

	Color    palette.Color
	Radius   float64
	Exponent float64
}

// NewPointLight creates a point light.
func NewPointLight(c palette.Color, radius float64) *PointLight {
	return &PointLight{
		Base:     NewBase("point_light"),
		Color:    c,
		Radius:   radius,
		Exponent: DefaultPointExponent,
	}
}

// Fog blends distant polygons toward Color. The last one processed each
// frame becomes the scene's current fog. Disabling it clears the registry.
type Fog struct {
	Base

	Color palette.Color
	// Density shapes the blend curve: t = (distance/far)^Density.
	Density float64
}

// NewFog creates a fog node.
func NewFog(c palette.Color) *Fog {
	return &Fog{
		Base:    NewBase("fog"),
		Color:   c,
		Density: DefaultFogDensity,
	}
}

// EnterTree registers the fog as current.
func (f *Fog) EnterTree() { f.makeCurrent() }

// Process registers the fog as current.
func (f *Fog) Process(float64) { f.makeCurrent() }

// ExitTree clears the registry if this fog is current.
func (f *Fog) ExitTree() {
	if s := f.Scene(); s != nil && s.ctx.Fog == f {
		s.ctx.Fog = nil
	}
}

func (f *Fog) makeCurrent() {
	if s := f.Scene(); s != nil && f.EnabledInTree() {
		s.ctx.Fog = f
	}
}
