package render

import (
	"github.com/taigrr/lowpoly/pkg/math3d"
	"github.com/taigrr/lowpoly/pkg/palette"
)

// DrawAABB draws the twelve edges of a model-space box placed by world.
func (c *Camera) DrawAABB(box math3d.AABB, world math3d.Transform3D, col palette.Color) {
	corners := box.Vertices()
	for i := range corners {
		corners[i] = world.Xform(corners[i])
	}
	for _, e := range math3d.AABBEdges {
		c.DrawLine(corners[e[0]], corners[e[1]], col, true)
	}
}

// DrawAxes draws the X, Y and Z axes of a world transform in red, green
// and blue.
func (c *Camera) DrawAxes(t math3d.Transform3D, length float64) {
	o := t.Position
	c.DrawLine(o, t.Xform(math3d.Right().Scale(length)), palette.Red, true)
	c.DrawLine(o, t.Xform(math3d.Up().Scale(length)), palette.Green, true)
	c.DrawLine(o, t.Xform(math3d.Backward().Scale(length)), palette.Blue, true)
}
