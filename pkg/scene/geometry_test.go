package scene

import (
	"math"
	"testing"

	"github.com/taigrr/lowpoly/pkg/math3d"
	"github.com/taigrr/lowpoly/pkg/models"
	"github.com/taigrr/lowpoly/pkg/palette"
)

func TestPolygonTransformed(t *testing.T) {
	p := Polygon{
		V1:     math3d.V3(0, 0, 0),
		V2:     math3d.V3(1, 0, 0),
		V3:     math3d.V3(0, 1, 0),
		Normal: math3d.Backward(),
	}

	tr := math3d.NewTransform(
		math3d.IdentityBasis().Rotated(math3d.Up(), math.Pi/2).Scaled(math3d.V3(3, 3, 3)),
		math3d.V3(100, 0, 0),
	)
	got := p.Transformed(tr)

	if math.Abs(got.Normal.Len()-1) > 1e-9 {
		t.Errorf("normal length = %v, want 1", got.Normal.Len())
	}
	// Translation must not leak into the normal; +Z turns to +X.
	if !got.Normal.ApproxEqual(math3d.Right(), 1e-9) {
		t.Errorf("normal = %v, want +X", got.Normal)
	}
	// Normal stays consistent with the transformed winding.
	if re := got.RecalculateNormal(); !re.Normal.ApproxEqual(got.Normal, 1e-9) {
		t.Errorf("winding normal %v disagrees with transformed %v", re.Normal, got.Normal)
	}
	if !got.V1.ApproxEqual(math3d.V3(100, 0, 0), 1e-9) {
		t.Errorf("V1 = %v", got.V1)
	}
}

func TestPolygonHelpers(t *testing.T) {
	p := Polygon{
		V1: math3d.V3(0, 0, -2),
		V2: math3d.V3(3, 0, -5),
		V3: math3d.V3(0, 3, -1),
	}
	if got := p.MinZ(); got != -5 {
		t.Errorf("MinZ = %v, want -5", got)
	}
	if got := p.Center(); !got.ApproxEqual(math3d.V3(1, 1, -8.0/3), 1e-12) {
		t.Errorf("Center = %v", got)
	}

	degenerate := Polygon{Normal: math3d.Up()}
	if got := degenerate.RecalculateNormal().Normal; got != math3d.Up() {
		t.Errorf("degenerate normal = %v, want previous normal", got)
	}
}

func TestUpdateGeometryNormals(t *testing.T) {
	geo := &models.Geometry{
		Vertices: []math3d.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0}},
		Normals:  []math3d.Vec3{{X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 0}},
		// Second face has an explicit normal index only for its first corner.
		Indices:       []int{0, 1, 2, 1, 3, 2},
		NormalIndices: []int{0, 1, 2, 3},
		Colors:        []palette.Color{palette.Red},
	}
	n := NewGeometryNode("quad", geo)
	polys := n.Polygons()

	if len(polys) != 2 {
		t.Fatalf("polygons = %d, want 2", len(polys))
	}
	if polys[0].Normal != math3d.Backward() {
		t.Errorf("face 0 normal = %v, want +Z", polys[0].Normal)
	}
	// Face 1 normals: index 3 (+X), then vertex-index fallback 3 (+X) and 2 (+Z).
	want := math3d.V3(2, 0, 1).Normalize()
	if !polys[1].Normal.ApproxEqual(want, 1e-9) {
		t.Errorf("face 1 normal = %v, want %v", polys[1].Normal, want)
	}
	if polys[0].Color != palette.Red || polys[1].Color != palette.White {
		t.Errorf("colors = %v, %v, want red then default white", polys[0].Color, polys[1].Color)
	}
	if polys[0].Owner != n {
		t.Error("polygon owner not set")
	}
}

func TestUpdateGeometryMissingData(t *testing.T) {
	geo := &models.Geometry{
		Vertices: []math3d.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: -1}},
		Indices:  []int{0, 1, 2, 0, 1, 7},
	}
	n := NewGeometryNode("broken", geo)
	polys := n.Polygons()

	if len(polys) != 1 {
		t.Fatalf("polygons = %d, want 1 (face with missing vertex skipped)", len(polys))
	}
	if polys[0].Normal != math3d.Up() {
		t.Errorf("normal = %v, want up when no normals exist", polys[0].Normal)
	}
}

func TestUpdateGeometryRecalculate(t *testing.T) {
	geo := models.Box(2, 2, 2)
	// Scramble stored normals so only the winding is trustworthy.
	for i := range geo.Normals {
		geo.Normals[i] = math3d.Down()
	}
	n := NewGeometryNode("box", geo)
	n.UpdateGeometry(true)

	for i, p := range n.Polygons() {
		if p.Center().Dot(p.Normal) <= 0 {
			t.Errorf("face %d normal %v points inward", i, p.Normal)
		}
	}

	// Recalculated normals are stored, so a plain rebuild agrees.
	before := n.Polygons()[3].Normal
	n.UpdateGeometry(false)
	if got := n.Polygons()[3].Normal; !got.ApproxEqual(before, 1e-12) {
		t.Errorf("after rebuild normal = %v, want %v", got, before)
	}
}

func TestGeometryAABB(t *testing.T) {
	geo := &models.Geometry{
		Vertices: []math3d.Vec3{{X: -1, Y: 2, Z: 0}, {X: 3, Y: -2, Z: 1}, {X: 0, Y: 0, Z: 5}, {X: 99, Y: 99, Z: 99}},
		Indices:  []int{0, 1, 2},
	}
	n := NewGeometryNode("tri", geo)
	box := n.AABB()

	if !box.Center.ApproxEqual(math3d.V3(1, 0, 2.5), 1e-12) {
		t.Errorf("center = %v, want (1, 0, 2.5)", box.Center)
	}
	if !box.Size.ApproxEqual(math3d.V3(4, 4, 5), 1e-12) {
		t.Errorf("size = %v, want (4, 4, 5)", box.Size)
	}
}

func TestNilGeometry(t *testing.T) {
	n := NewGeometryNode("pending", nil)
	if len(n.Polygons()) != 0 {
		t.Error("pending node should have no polygons")
	}

	n.SetGeometry(models.Plane(1, 1))
	if len(n.Polygons()) != 2 {
		t.Errorf("polygons = %d, want 2", len(n.Polygons()))
	}
}
