package render

import (
	"math"

	"github.com/taigrr/lowpoly/pkg/math3d"
	"github.com/taigrr/lowpoly/pkg/palette"
	"github.com/taigrr/lowpoly/pkg/scene"
)

// PointLight adds the contribution of l to in for the camera-space polygon
// p. toCamera maps world space to camera space.
//
// The contribution is Color * (1 - distance/Radius) * max(0, n.l)^Exponent,
// zero beyond Radius.
func PointLight(p scene.Polygon, l *scene.PointLight, toCamera math3d.Transform3D, in palette.Color) palette.Color {
	if l == nil || l.Radius <= 0 {
		return in
	}

	delta := toCamera.Xform(l.GlobalPosition()).Sub(p.Center())
	falloff := 1 - delta.Len()/l.Radius
	if falloff <= 0 {
		return in
	}

	exp := l.Exponent
	if exp <= 0 {
		exp = scene.DefaultPointExponent
	}
	lambert := math.Max(0, p.Normal.Dot(delta.Normalize()))
	return in.Add(l.Color.Scale(falloff * math.Pow(lambert, exp)))
}

// DirectionalLight shades the camera-space polygon p with l. camBasis is
// the camera's global basis, used to bring the normal back to world space.
//
// The result is in*Ambient + Color*max(0, -n.dir)^Exponent.
func DirectionalLight(p scene.Polygon, l *scene.DirectionalLight, camBasis math3d.Basis, in palette.Color) palette.Color {
	if l == nil {
		return in
	}

	n := p.Normal.ApplyBasis(camBasis).Normalize()
	exp := l.Exponent
	if exp <= 0 {
		exp = scene.DefaultDirectionalExponent
	}
	shine := math.Pow(math.Max(0, -n.Dot(l.Direction())), exp)
	return in.Mul(l.Ambient).Add(l.Color.Scale(shine))
}

// ApplyFog blends in toward the fog color by the camera-space distance of
// p's center relative to far.
func ApplyFog(p scene.Polygon, f *scene.Fog, far float64, in palette.Color) palette.Color {
	if f == nil || far <= 0 {
		return in
	}

	t := min(1, max(0, p.Center().Len()/far))
	density := f.Density
	if density <= 0 {
		density = scene.DefaultFogDensity
	}
	return in.Lerp(f.Color, math.Pow(t, density))
}
