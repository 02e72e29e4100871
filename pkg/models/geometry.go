// Package models provides mesh data loading and procedural generation for lowpoly.
package models

import (
	"github.com/taigrr/lowpoly/pkg/math3d"
	"github.com/taigrr/lowpoly/pkg/palette"
)

// Geometry is raw triangle mesh data stored as parallel arrays.
//
// Indices holds vertex indices in groups of three, one group per face.
// NormalIndices, when present, runs parallel to Indices and points into
// Normals. Colors holds one color per face.
type Geometry struct {
	Name          string
	Vertices      []math3d.Vec3
	Normals       []math3d.Vec3
	Indices       []int
	NormalIndices []int
	Colors        []palette.Color
}

// NewGeometry creates an empty geometry.
func NewGeometry(name string) *Geometry {
	return &Geometry{Name: name}
}

// FaceCount returns the number of triangles.
func (g *Geometry) FaceCount() int {
	return len(g.Indices) / 3
}

// AddTriangle appends one face referencing existing vertices.
// Pass nil normals to leave normal resolution to the vertex index.
func (g *Geometry) AddTriangle(a, b, c int, normals []int, col palette.Color) {
	g.Indices = append(g.Indices, a, b, c)
	if normals != nil {
		g.padNormalIndices()
		g.NormalIndices = append(g.NormalIndices, normals[0], normals[1], normals[2])
	}
	g.padColors()
	g.Colors = append(g.Colors, col)
}

// padNormalIndices fills NormalIndices with -1 (unresolved) so it stays
// parallel to Indices once a face with explicit normals is added.
func (g *Geometry) padNormalIndices() {
	for len(g.NormalIndices) < len(g.Indices)-3 {
		g.NormalIndices = append(g.NormalIndices, -1)
	}
}

// padColors fills missing face colors with white.
func (g *Geometry) padColors() {
	for len(g.Colors) < g.FaceCount()-1 {
		g.Colors = append(g.Colors, palette.White)
	}
}

// Append merges o into g, offsetting its indices.
func (g *Geometry) Append(o *Geometry) {
	vBase := len(g.Vertices)
	nBase := len(g.Normals)
	faces := g.FaceCount()

	g.Vertices = append(g.Vertices, o.Vertices...)
	g.Normals = append(g.Normals, o.Normals...)

	if len(o.NormalIndices) > 0 || len(g.NormalIndices) > 0 {
		// Keep NormalIndices parallel: faces without explicit normal
		// indices fall back to their vertex index.
		for len(g.NormalIndices) < len(g.Indices) {
			g.NormalIndices = append(g.NormalIndices, -1)
		}
		for i := range o.Indices {
			ni := -1
			switch {
			case i < len(o.NormalIndices) && o.NormalIndices[i] >= 0:
				ni = o.NormalIndices[i] + nBase
			case len(o.Normals) > 0:
				ni = o.Indices[i] + nBase
			}
			g.NormalIndices = append(g.NormalIndices, ni)
		}
	}

	for _, idx := range o.Indices {
		g.Indices = append(g.Indices, idx+vBase)
	}

	for len(g.Colors) < faces {
		g.Colors = append(g.Colors, palette.White)
	}
	for i := range o.FaceCount() {
		c := palette.White
		if i < len(o.Colors) {
			c = o.Colors[i]
		}
		g.Colors = append(g.Colors, c)
	}
}

// Transform bakes t into the vertex positions and normals in place.
// Normals go through the inverse transpose of t's basis.
func (g *Geometry) Transform(t math3d.Transform3D) {
	for i, v := range g.Vertices {
		g.Vertices[i] = t.Xform(v)
	}
	nb := t.Basis.NormalBasis()
	for i, n := range g.Normals {
		g.Normals[i] = n.ApplyBasis(nb).Normalize()
	}
}

// SetColor paints every face with c.
func (g *Geometry) SetColor(c palette.Color) {
	g.Colors = make([]palette.Color, g.FaceCount())
	for i := range g.Colors {
		g.Colors[i] = c
	}
}

// Bounds returns the box around every referenced vertex.
func (g *Geometry) Bounds() math3d.AABB {
	pts := make([]math3d.Vec3, 0, len(g.Indices))
	for _, idx := range g.Indices {
		if idx >= 0 && idx < len(g.Vertices) {
			pts = append(pts, g.Vertices[idx])
		}
	}
	return math3d.AABBFromPoints(pts)
}
