package render

import (
	"cmp"
	"errors"
	"math"
	"slices"

	"github.com/taigrr/lowpoly/pkg/math3d"
	"github.com/taigrr/lowpoly/pkg/palette"
	"github.com/taigrr/lowpoly/pkg/scene"
)

// Camera defaults.
const (
	DefaultFOV = 60.0
	DefaultFar = 100.0

	// nearZ is the camera-space depth vertices are clamped to before the
	// perspective divide.
	nearZ = -0.001

	// StrokeShade darkens a polygon's fill color for its outline.
	StrokeShade = 0.7

	// NormalLength is the world-space length of debug normal lines.
	NormalLength = 0.25
)

// ErrNoScene is returned when rendering a camera that is not in a scene.
var ErrNoScene = errors.New("camera is not in a scene")

// Debug overlay colors.
var (
	NormalColor = palette.Yellow
	AABBColor   = palette.Magenta
)

// Camera is a scene node that renders the enabled meshes below the scene
// root with the painter's algorithm. It looks down its local -Z axis.
type Camera struct {
	scene.Base

	// FOV is the vertical field of view in degrees.
	FOV float64
	// Far is the maximum distance at which polygons are drawn. It also
	// scales fog.
	Far float64
	// DisableBackfaceCulling draws triangles facing away for every mesh.
	DisableBackfaceCulling bool

	// Stats holds the culling counters of the last Render call.
	Stats CullingStats

	time        float64
	perspective float64
	width       int
	height      int
	global      math3d.Transform3D
	inverse     math3d.Transform3D
	surface     Surface

	geometries  []*scene.GeometryNode
	lights      []*scene.PointLight
	dirty       bool
	unsubscribe func()

	visible []scene.Polygon
}

// NewCamera creates a camera with the default field of view and far distance.
func NewCamera() *Camera {
	return &Camera{
		Base:    scene.NewBase("camera"),
		FOV:     DefaultFOV,
		Far:     DefaultFar,
		global:  math3d.IdentityTransform(),
		inverse: math3d.IdentityTransform(),
		dirty:   true,
	}
}

// Current returns the scene's current camera, or nil.
func Current(s *scene.Scene) *Camera {
	c, _ := s.Context().Camera.(*Camera)
	return c
}

// MakeCurrent registers the camera in its scene's context.
func (c *Camera) MakeCurrent() error {
	s := c.Scene()
	if s == nil {
		return ErrNoScene
	}
	s.Context().Camera = c
	return nil
}

// EnterTree starts watching the scene for added and removed nodes.
func (c *Camera) EnterTree() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	c.unsubscribe = c.Scene().Subscribe(func(scene.Event, scene.Node) {
		c.dirty = true
	})
	c.dirty = true
}

// ExitTree stops watching the scene and clears the registry if this camera
// is current.
func (c *Camera) ExitTree() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	if s := c.Scene(); s != nil && s.Context().Camera == scene.Node(c) {
		s.Context().Camera = nil
	}
	c.geometries, c.lights = nil, nil
	c.dirty = true
}

// FarDistance implements scene.View.
func (c *Camera) FarDistance() float64 { return c.Far }

// Time returns the sum of every dt passed to Render.
func (c *Camera) Time() float64 { return c.time }

// Render draws one frame onto s. The surface is not cleared.
//
// Meshes with PassDepth are drawn first, then every other mesh. Within a
// pass, polygons are culled, transformed to camera space, run through the
// mesh's program, sorted back to front by their farthest vertex, shaded
// and filled.
func (c *Camera) Render(dt float64, s Surface) error {
	sc := c.Scene()
	if sc == nil {
		return ErrNoScene
	}

	c.time += dt
	c.Stats = CullingStats{}
	c.surface = s
	c.width, c.height = s.Size()
	c.perspective = Perspective(c.height, c.FOV)
	c.global = c.GlobalTransform()
	c.inverse = c.global.Inverse()

	if c.dirty {
		c.collect(sc)
	}

	var background, regular []*scene.GeometryNode
	for _, g := range c.geometries {
		if g.PassDepth {
			background = append(background, g)
		} else {
			regular = append(regular, g)
		}
	}

	ctx := sc.Context()
	c.drawPass(background, ctx)
	c.drawPass(regular, ctx)

	for _, g := range c.geometries {
		if g.Debug.ShowAABB {
			c.DrawAABB(g.AABB(), g.GlobalTransform(), AABBColor)
		}
	}
	return nil
}

// collect refreshes the cached mesh and light lists from the tree.
func (c *Camera) collect(sc *scene.Scene) {
	c.geometries = scene.EnabledDescendants[*scene.GeometryNode](sc.Root())
	c.lights = scene.EnabledDescendants[*scene.PointLight](sc.Root())
	c.dirty = false
}

func (c *Camera) drawPass(geometries []*scene.GeometryNode, ctx *scene.Context) {
	c.visible = c.visible[:0]
	for _, g := range geometries {
		c.gather(g)
	}

	slices.SortStableFunc(c.visible, func(a, b scene.Polygon) int {
		return cmp.Compare(a.MinZ(), b.MinZ())
	})

	for _, p := range c.visible {
		col := c.shade(p, ctx)
		c.fillPolygon(p, col)
		if p.Owner != nil && p.Owner.Debug.ShowNormals {
			c.DrawLine(p.Center(), p.Center().Add(p.Normal.Scale(NormalLength)), NormalColor, false)
		}
	}
	c.Stats.PolygonsDrawn += len(c.visible)
}

// gather appends the camera-space polygons of g that survive culling.
func (c *Camera) gather(g *scene.GeometryNode) {
	c.Stats.MeshesTested++

	polys := g.Polygons()
	world := g.GlobalTransform()
	if len(polys) == 0 || BehindCamera(g.AABB(), c.inverse.Mul(world)) {
		c.Stats.MeshesCulled++
		return
	}
	c.Stats.MeshesDrawn++

	eye := c.global.Position
	forward := c.global.Basis.Forward().Normalize()
	aspect := 1.0
	if c.height > 0 {
		aspect = float64(c.width) / float64(c.height)
	}
	cosHalf := math.Cos(ConeHalfAngle(c.FOV, aspect))
	cullBack := !c.DisableBackfaceCulling && !g.NoBackfaceCulling

	for _, p := range polys {
		c.Stats.PolygonsTested++

		wp := p.Transformed(world)
		center := wp.Center()
		if center.Distance(eye) > c.Far {
			c.Stats.DistanceCulled++
			continue
		}
		if cullBack && Backfacing(wp.Normal, center, eye) {
			c.Stats.BackfaceCulled++
			continue
		}
		if OutsideCone(wp.Vertices(), eye, forward, cosHalf) {
			c.Stats.FrustumCulled++
			continue
		}

		cp := wp.Transformed(c.inverse)
		if g.Program != nil {
			cp = g.Program(cp, c)
		}
		c.visible = append(c.visible, cp)
	}
}

// shade applies the directional light, every point light and fog to the
// camera-space polygon p. Emissive meshes only receive fog.
func (c *Camera) shade(p scene.Polygon, ctx *scene.Context) palette.Color {
	col := p.Color
	if p.Owner == nil || !p.Owner.Emissive {
		col = DirectionalLight(p, ctx.Light, c.global.Basis, col)
		for _, l := range c.lights {
			col = PointLight(p, l, c.inverse, col)
		}
	}
	return ApplyFog(p, ctx.Fog, c.Far, col)
}

func (c *Camera) fillPolygon(p scene.Polygon, col palette.Color) {
	a := c.ToScreenSpace(p.V1, false)
	b := c.ToScreenSpace(p.V2, false)
	d := c.ToScreenSpace(p.V3, false)

	s := c.surface
	s.BeginPath()
	s.MoveTo(a.X, a.Y)
	s.LineTo(b.X, b.Y)
	s.LineTo(d.X, d.Y)
	s.ClosePath()
	s.Fill(col)
	s.Stroke(col.Scale(StrokeShade), 1)
}

// ToScreenSpace projects v to pixel coordinates on the last rendered
// surface. With applyInverse v is taken as world space, otherwise as camera
// space. The returned Z is the camera-space depth. Camera +X maps to
// screen right and camera +Y to screen up (smaller y).
func (c *Camera) ToScreenSpace(v math3d.Vec3, applyInverse bool) math3d.Vec3 {
	if applyInverse {
		v = c.inverse.Xform(v)
	}
	z := math.Min(v.Z, nearZ)
	return math3d.V3(
		float64(c.width)/2+v.X/-z*c.perspective,
		float64(c.height)/2+v.Y/z*c.perspective,
		v.Z,
	)
}

// DrawLine strokes a segment on the surface being rendered. Segments with
// an endpoint behind the camera are skipped.
func (c *Camera) DrawLine(from, to math3d.Vec3, col palette.Color, applyInverse bool) {
	if c.surface == nil {
		return
	}
	if applyInverse {
		from, to = c.inverse.Xform(from), c.inverse.Xform(to)
	}
	if from.Z > 0 || to.Z > 0 {
		return
	}

	a := c.ToScreenSpace(from, false)
	b := c.ToScreenSpace(to, false)
	c.surface.BeginPath()
	c.surface.MoveTo(a.X, a.Y)
	c.surface.LineTo(b.X, b.Y)
	c.surface.Stroke(col, 1)
}

// DrawCircle fills a disc of world-space radius r around center, scaled by
// perspective. Centers behind the camera are skipped.
func (c *Camera) DrawCircle(center math3d.Vec3, r float64, col palette.Color, applyInverse bool) {
	if c.surface == nil {
		return
	}
	if applyInverse {
		center = c.inverse.Xform(center)
	}
	if center.Z > 0 {
		return
	}

	p := c.ToScreenSpace(center, false)
	c.surface.FillCircle(p.X, p.Y, r*c.perspective/-math.Min(center.Z, nearZ), col)
}
