package scene

import (
	"math"

	"github.com/taigrr/lowpoly/pkg/math3d"
	"github.com/taigrr/lowpoly/pkg/palette"
)

// Polygon is a flat-colored triangle. Front faces wind counter-clockwise
// and Normal points out of the front face.
type Polygon struct {
	V1, V2, V3 math3d.Vec3
	Color      palette.Color
	Normal     math3d.Vec3
	Owner      *GeometryNode
}

// Center returns the centroid.
func (p Polygon) Center() math3d.Vec3 {
	return p.V1.Add(p.V2).Add(p.V3).Scale(1.0 / 3)
}

// Vertices returns the three corners.
func (p Polygon) Vertices() [3]math3d.Vec3 {
	return [3]math3d.Vec3{p.V1, p.V2, p.V3}
}

// MinZ returns the smallest Z of the three corners.
func (p Polygon) MinZ() float64 {
	return math.Min(p.V1.Z, math.Min(p.V2.Z, p.V3.Z))
}

// Transformed applies t to the corners. The normal goes through the basis
// only and is renormalized.
func (p Polygon) Transformed(t math3d.Transform3D) Polygon {
	p.V1 = t.Xform(p.V1)
	p.V2 = t.Xform(p.V2)
	p.V3 = t.Xform(p.V3)
	p.Normal = t.XformDir(p.Normal).Normalize()
	return p
}

// RecalculateNormal returns p with Normal derived from its winding.
// A degenerate triangle keeps its previous normal.
func (p Polygon) RecalculateNormal() Polygon {
	n := p.V2.Sub(p.V1).Cross(p.V3.Sub(p.V1)).Normalize()
	if n.LenSq() > 0 {
		p.Normal = n
	}
	return p
}
