package models

import (
	"github.com/taigrr/lowpoly/pkg/math3d"
	"github.com/taigrr/lowpoly/pkg/palette"
)

// Plane generates a flat grid in the XZ plane, centered on the origin, with
// sx by sz unit cells. Every face points up and is white.
func Plane(sx, sz int) *Geometry {
	g := NewGeometry("plane")
	if sx <= 0 || sz <= 0 {
		return g
	}

	halfX := float64(sx) / 2
	halfZ := float64(sz) / 2
	for z := 0; z <= sz; z++ {
		for x := 0; x <= sx; x++ {
			g.Vertices = append(g.Vertices, math3d.V3(float64(x)-halfX, 0, float64(z)-halfZ))
			g.Normals = append(g.Normals, math3d.Up())
		}
	}

	row := sx + 1
	for z := range sz {
		for x := range sx {
			i1 := z*row + x
			i2 := i1 + 1
			i3 := i1 + row
			i4 := i3 + 1

			// Counter-clockwise seen from +Y
			g.Indices = append(g.Indices, i1, i3, i2, i2, i3, i4)
			g.Colors = append(g.Colors, palette.White, palette.White)
		}
	}
	return g
}

// boxFaces lists each face of a box as four AABB corner indices wound
// counter-clockwise seen from outside, with the face normal.
var boxFaces = []struct {
	corners [4]int
	normal  math3d.Vec3
}{
	{[4]int{4, 5, 6, 7}, math3d.Backward()}, // +Z
	{[4]int{1, 0, 3, 2}, math3d.Forward()},  // -Z
	{[4]int{5, 1, 2, 6}, math3d.Right()},    // +X
	{[4]int{0, 4, 7, 3}, math3d.Left()},     // -X
	{[4]int{7, 6, 2, 3}, math3d.Up()},       // +Y
	{[4]int{0, 1, 5, 4}, math3d.Down()},     // -Y
}

// Box generates an axis-aligned box of the given size centered on the
// origin: 8 shared vertices, 12 triangles, one normal per side.
func Box(w, h, d float64) *Geometry {
	g := NewGeometry("box")
	corners := math3d.AABB{Size: math3d.V3(w, h, d)}.Vertices()
	g.Vertices = append(g.Vertices, corners[:]...)

	for i, f := range boxFaces {
		g.Normals = append(g.Normals, f.normal)
		c := f.corners
		g.AddTriangle(c[0], c[1], c[2], []int{i, i, i}, palette.White)
		g.AddTriangle(c[0], c[2], c[3], []int{i, i, i}, palette.White)
	}
	return g
}
