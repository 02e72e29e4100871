package math3d

// AABB is an axis-aligned bounding box stored as center and extent.
type AABB struct {
	Center Vec3
	Size   Vec3
}

// AABBEdges lists the 12 corner index pairs that outline a box returned by
// AABB.Vertices.
var AABBEdges = [12][2]int{
	// Bottom face (z = min)
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	// Top face (z = max)
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	// Connecting edges
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// AABBFromMinMax creates a box from its minimum and maximum corners.
func AABBFromMinMax(lo, hi Vec3) AABB {
	return AABB{
		Center: lo.Add(hi).Scale(0.5),
		Size:   hi.Sub(lo),
	}
}

// AABBFromPoints returns the smallest box that contains every point.
// An empty slice yields the zero box.
func AABBFromPoints(points []Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	return AABBFromMinMax(lo, hi)
}

// Min returns the minimum corner.
func (b AABB) Min() Vec3 {
	return b.Center.Sub(b.Size.Scale(0.5))
}

// Max returns the maximum corner.
func (b AABB) Max() Vec3 {
	return b.Center.Add(b.Size.Scale(0.5))
}

// Vertices returns the 8 corners in a fixed order: indices 0-3 walk the
// min-Z face counter-clockwise starting at the minimum corner, 4-7 repeat
// the walk on the max-Z face.
func (b AABB) Vertices() [8]Vec3 {
	lo, hi := b.Min(), b.Max()
	return [8]Vec3{
		{lo.X, lo.Y, lo.Z},
		{hi.X, lo.Y, lo.Z},
		{hi.X, hi.Y, lo.Z},
		{lo.X, hi.Y, lo.Z},
		{lo.X, lo.Y, hi.Z},
		{hi.X, lo.Y, hi.Z},
		{hi.X, hi.Y, hi.Z},
		{lo.X, hi.Y, hi.Z},
	}
}

// Contains reports whether p lies inside or on the box.
func (b AABB) Contains(p Vec3) bool {
	lo, hi := b.Min(), b.Max()
	return p.X >= lo.X && p.X <= hi.X &&
		p.Y >= lo.Y && p.Y <= hi.Y &&
		p.Z >= lo.Z && p.Z <= hi.Z
}
