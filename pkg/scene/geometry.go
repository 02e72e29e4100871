package scene

import (
	"github.com/taigrr/lowpoly/pkg/math3d"
	"github.com/taigrr/lowpoly/pkg/models"
	"github.com/taigrr/lowpoly/pkg/palette"
)

// View is what a PolygonProgram may read from the rendering camera.
type View interface {
	GlobalTransform() math3d.Transform3D
	FarDistance() float64
	Time() float64
	DrawLine(from, to math3d.Vec3, c palette.Color, applyInverse bool)
}

// PolygonProgram rewrites a camera-space polygon before lighting. It may
// move vertices or recolor; if it moves vertices it must keep Normal
// consistent, usually through Polygon.RecalculateNormal.
type PolygonProgram func(p Polygon, v View) Polygon

// Debug toggles per-mesh overlays.
type Debug struct {
	ShowNormals bool
	ShowAABB    bool
}

// GeometryNode places a mesh in the scene.
type GeometryNode struct {
	Base

	Geometry *models.Geometry

	// PassDepth draws the mesh in the background pass, before regular meshes.
	PassDepth bool
	// Emissive meshes skip lighting. Fog still applies.
	Emissive bool
	// NoBackfaceCulling keeps triangles facing away from the camera.
	NoBackfaceCulling bool

	Debug   Debug
	Program PolygonProgram

	polygons []Polygon
	aabb     math3d.AABB
}

// NewGeometryNode creates a mesh node. geo may be nil until an async load
// delivers it; the node renders nothing meanwhile.
func NewGeometryNode(name string, geo *models.Geometry) *GeometryNode {
	g := &GeometryNode{Base: NewBase(name), Geometry: geo}
	g.UpdateGeometry(false)
	return g
}

// EnterTree rebuilds polygons from the current geometry.
func (g *GeometryNode) EnterTree() {
	g.UpdateGeometry(false)
}

// SetGeometry replaces the mesh data and rebuilds polygons.
func (g *GeometryNode) SetGeometry(geo *models.Geometry) {
	g.Geometry = geo
	g.UpdateGeometry(false)
}

// Polygons returns the model-space triangles built by UpdateGeometry.
func (g *GeometryNode) Polygons() []Polygon { return g.polygons }

// AABB returns the model-space bounds of every referenced vertex.
func (g *GeometryNode) AABB() math3d.AABB { return g.aabb }

// UpdateGeometry rebuilds the polygon list and bounds from Geometry.
//
// Normals come from Normals/NormalIndices, averaged over the face's three
// corners. A missing normal index falls back to the vertex index and an
// unresolved normal makes the face point up. With recalculateNormals the
// face normal is taken from the winding instead and written back into the
// geometry, so later rebuilds agree. Faces that reference missing vertices
// are skipped.
func (g *GeometryNode) UpdateGeometry(recalculateNormals bool) {
	g.polygons = g.polygons[:0]
	g.aabb = math3d.AABB{}

	geo := g.Geometry
	if geo == nil {
		return
	}

	faces := geo.FaceCount()
	var faceNormals []math3d.Vec3
	if recalculateNormals {
		faceNormals = make([]math3d.Vec3, faces)
	}

	pts := make([]math3d.Vec3, 0, faces*3)
	for f := range faces {
		i := f * 3
		if recalculateNormals {
			faceNormals[f] = math3d.Up()
		}

		v1, ok1 := vertexAt(geo, geo.Indices[i])
		v2, ok2 := vertexAt(geo, geo.Indices[i+1])
		v3, ok3 := vertexAt(geo, geo.Indices[i+2])
		if !ok1 || !ok2 || !ok3 {
			continue
		}

		col := palette.White
		if f < len(geo.Colors) {
			col = geo.Colors[f]
		}

		p := Polygon{V1: v1, V2: v2, V3: v3, Color: col, Normal: math3d.Up(), Owner: g}
		if recalculateNormals {
			p = p.RecalculateNormal()
			faceNormals[f] = p.Normal
		} else {
			p.Normal = resolveNormal(geo, i)
		}

		g.polygons = append(g.polygons, p)
		pts = append(pts, v1, v2, v3)
	}

	if recalculateNormals {
		geo.Normals = faceNormals
		geo.NormalIndices = make([]int, len(geo.Indices))
		for i := range geo.NormalIndices {
			geo.NormalIndices[i] = i / 3
		}
	}

	g.aabb = math3d.AABBFromPoints(pts)
}

func vertexAt(geo *models.Geometry, idx int) (math3d.Vec3, bool) {
	if idx < 0 || idx >= len(geo.Vertices) {
		return math3d.Vec3{}, false
	}
	return geo.Vertices[idx], true
}

// resolveNormal averages the normals of the face starting at index i.
func resolveNormal(geo *models.Geometry, i int) math3d.Vec3 {
	var sum math3d.Vec3
	for k := range 3 {
		ni := -1
		if i+k < len(geo.NormalIndices) {
			ni = geo.NormalIndices[i+k]
		}
		if ni < 0 {
			ni = geo.Indices[i+k]
		}
		if ni < 0 || ni >= len(geo.Normals) {
			return math3d.Up()
		}
		sum = sum.Add(geo.Normals[ni])
	}

	n := sum.Normalize()
	if n.LenSq() == 0 {
		return math3d.Up()
	}
	return n
}
