package math3d

import "math"

// Basis is a 3-axis frame. The axes are the images of the unit X, Y and Z
// vectors, so applying a basis to v yields X*v.X + Y*v.Y + Z*v.Z.
//
// Directions follow a right-handed convention where a frame looks down its
// local -Z axis.
type Basis struct {
	X, Y, Z Vec3
}

// IdentityBasis returns the identity frame.
func IdentityBasis() Basis {
	return Basis{
		X: Vec3{1, 0, 0},
		Y: Vec3{0, 1, 0},
		Z: Vec3{0, 0, 1},
	}
}

// Forward returns the direction the frame looks at (-Z).
func (b Basis) Forward() Vec3 { return b.Z.Negate() }

// Backward returns +Z.
func (b Basis) Backward() Vec3 { return b.Z }

// Up returns +Y.
func (b Basis) Up() Vec3 { return b.Y }

// Down returns -Y.
func (b Basis) Down() Vec3 { return b.Y.Negate() }

// Right returns +X.
func (b Basis) Right() Vec3 { return b.X }

// Left returns -X.
func (b Basis) Left() Vec3 { return b.X.Negate() }

// WithUp returns a copy whose Y axis is up and whose other two axes are
// recomputed to stay orthonormal around it.
func (b Basis) WithUp(up Vec3) Basis {
	y := up.Normalize()
	x := y.Cross(b.Z).Normalize()
	if x.LenSq() == 0 {
		// Z is parallel to the new up, keep X as the reference instead
		z := b.X.Cross(y).Normalize()
		return Basis{X: y.Cross(z), Y: y, Z: z}
	}
	return Basis{X: x, Y: y, Z: x.Cross(y)}
}

// Rotated returns the frame rotated by angle radians around axis.
// The axis is normalized first. All three axes are rotated from their
// pre-rotation values.
func (b Basis) Rotated(axis Vec3, angle float64) Basis {
	r := rotationBasis(axis, angle)
	return Basis{
		X: b.X.ApplyBasis(r),
		Y: b.Y.ApplyBasis(r),
		Z: b.Z.ApplyBasis(r),
	}
}

// rotationBasis builds the Rodrigues rotation matrix for axis and angle.
func rotationBasis(axis Vec3, angle float64) Basis {
	k := axis.Normalize()
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	x, y, z := k.X, k.Y, k.Z

	return Basis{
		X: Vec3{t*x*x + c, t*x*y + s*z, t*x*z - s*y},
		Y: Vec3{t*x*y - s*z, t*y*y + c, t*y*z + s*x},
		Z: Vec3{t*x*z + s*y, t*y*z - s*x, t*z*z + c},
	}
}

// Scaled returns the frame with each axis scaled by the matching component of s.
func (b Basis) Scaled(s Vec3) Basis {
	return Basis{
		X: b.X.Scale(s.X),
		Y: b.Y.Scale(s.Y),
		Z: b.Z.Scale(s.Z),
	}
}

// Scale returns the length of each axis.
func (b Basis) Scale() Vec3 {
	return Vec3{b.X.Len(), b.Y.Len(), b.Z.Len()}
}

// Slerp spherically interpolates each axis toward o by t.
func (b Basis) Slerp(o Basis, t float64) Basis {
	return Basis{
		X: b.X.Slerp(o.X, t),
		Y: b.Y.Slerp(o.Y, t),
		Z: b.Z.Slerp(o.Z, t),
	}
}

// Mul composes two frames: the result applies o first, then b.
func (b Basis) Mul(o Basis) Basis {
	return Basis{
		X: o.X.ApplyBasis(b),
		Y: o.Y.ApplyBasis(b),
		Z: o.Z.ApplyBasis(b),
	}
}

// Inverse returns the transpose, which is the inverse of an orthonormal frame.
func (b Basis) Inverse() Basis {
	return Basis{
		X: Vec3{b.X.X, b.Y.X, b.Z.X},
		Y: Vec3{b.X.Y, b.Y.Y, b.Z.Y},
		Z: Vec3{b.X.Z, b.Y.Z, b.Z.Z},
	}
}

// NormalBasis returns the inverse transpose of b. Normals mapped through it
// stay perpendicular to surfaces mapped through b, including under
// non-uniform scale. A degenerate basis is returned unchanged.
func (b Basis) NormalBasis() Basis {
	x := b.Y.Cross(b.Z)
	y := b.Z.Cross(b.X)
	z := b.X.Cross(b.Y)
	det := b.X.Dot(x)
	if det == 0 {
		return b
	}
	return Basis{X: x.Div(det), Y: y.Div(det), Z: z.Div(det)}
}

// Orthonormalized returns the frame with unit, mutually perpendicular axes
// using Gram-Schmidt on X, then Y. Scale is discarded.
func (b Basis) Orthonormalized() Basis {
	x := b.X.Normalize()
	y := b.Y.Sub(x.Scale(x.Dot(b.Y))).Normalize()
	return Basis{X: x, Y: y, Z: x.Cross(y)}
}

// LookAt builds an orthonormal frame whose forward points along direction.
// When direction is parallel to up, another reference axis is used.
func LookAt(direction, up Vec3) Basis {
	z := direction.Normalize().Negate()
	if z.LenSq() == 0 {
		return IdentityBasis()
	}

	x := up.Cross(z).Normalize()
	if x.LenSq() == 0 {
		ref := Backward()
		if math.Abs(z.Z) > 0.9 {
			ref = Right()
		}
		x = ref.Cross(z).Normalize()
	}

	return Basis{X: x, Y: z.Cross(x), Z: z}
}

// BasisFromQuat converts a unit quaternion (x, y, z, w) into a frame.
func BasisFromQuat(x, y, z, w float64) Basis {
	return Basis{
		X: Vec3{1 - 2*(y*y+z*z), 2 * (x*y + z*w), 2 * (x*z - y*w)},
		Y: Vec3{2 * (x*y - z*w), 1 - 2*(x*x+z*z), 2 * (y*z + x*w)},
		Z: Vec3{2 * (x*z + y*w), 2 * (y*z - x*w), 1 - 2*(x*x+y*y)},
	}
}

// ApproxEqual reports whether all axes of b and o are within eps.
func (b Basis) ApproxEqual(o Basis, eps float64) bool {
	return b.X.ApproxEqual(o.X, eps) &&
		b.Y.ApproxEqual(o.Y, eps) &&
		b.Z.ApproxEqual(o.Z, eps)
}
