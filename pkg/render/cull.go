package render

import (
	"math"

	"github.com/taigrr/lowpoly/pkg/math3d"
)

// CullingStats tracks culling effectiveness for the last rendered frame.
type CullingStats struct {
	MeshesTested int
	MeshesCulled int
	MeshesDrawn  int

	PolygonsTested int
	DistanceCulled int
	BackfaceCulled int
	FrustumCulled  int
	PolygonsDrawn  int
}

// ConeHalfAngle returns the half-angle in radians of the cone that encloses
// the view frustum. fov is the vertical field of view in degrees and aspect
// is width over height, so the cone reaches the viewport corners.
func ConeHalfAngle(fov, aspect float64) float64 {
	half := math.Tan(fov * math.Pi / 180 / 2)
	return math.Atan(half * math.Sqrt(1+aspect*aspect))
}

// Perspective returns the projection scale for a viewport height in pixels
// and a vertical field of view in degrees.
func Perspective(height int, fov float64) float64 {
	return float64(height) / 2 / math.Tan(fov*math.Pi/180/2)
}

// BehindCamera reports whether every corner of box, placed by toCamera,
// lies behind the camera plane (z > 0 in camera space).
func BehindCamera(box math3d.AABB, toCamera math3d.Transform3D) bool {
	for _, v := range box.Vertices() {
		if toCamera.Xform(v).Z <= 0 {
			return false
		}
	}
	return true
}

// Backfacing reports whether a world-space triangle with the given normal
// and center faces away from a camera at eye.
func Backfacing(normal, center, eye math3d.Vec3) bool {
	return normal.Dot(center.Sub(eye)) >= 0
}

// OutsideCone reports whether all vertices lie outside the cone around
// forward (unit length) whose half-angle has cosine cosHalf. A triangle
// with any vertex inside is kept.
func OutsideCone(vertices [3]math3d.Vec3, eye, forward math3d.Vec3, cosHalf float64) bool {
	for _, v := range vertices {
		dir := v.Sub(eye).Normalize()
		if dir.LenSq() == 0 || dir.Dot(forward) >= cosHalf {
			return false
		}
	}
	return true
}
