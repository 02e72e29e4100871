package math3d

import "fmt"

// Transform3D is an affine map: a frame plus a translation.
type Transform3D struct {
	Basis    Basis
	Position Vec3
}

// IdentityTransform returns the identity transform.
func IdentityTransform() Transform3D {
	return Transform3D{Basis: IdentityBasis()}
}

// NewTransform creates a transform from a frame and a translation.
func NewTransform(b Basis, position Vec3) Transform3D {
	return Transform3D{Basis: b, Position: position}
}

// Translation returns an identity-oriented transform at position.
func Translation(position Vec3) Transform3D {
	return Transform3D{Basis: IdentityBasis(), Position: position}
}

// Inverse returns the inverse transform. Valid while the basis is orthonormal.
func (t Transform3D) Inverse() Transform3D {
	inv := t.Basis.Inverse()
	return Transform3D{
		Basis:    inv,
		Position: t.Position.Negate().ApplyBasis(inv),
	}
}

// Mul composes two transforms: the result applies o first, then t.
func (t Transform3D) Mul(o Transform3D) Transform3D {
	return Transform3D{
		Basis:    t.Basis.Mul(o.Basis),
		Position: o.Position.ApplyBasis(t.Basis).Add(t.Position),
	}
}

// Xform applies the transform to the point v.
func (t Transform3D) Xform(v Vec3) Vec3 {
	return v.ApplyTransform(t)
}

// XformDir applies only the basis to the direction v.
func (t Transform3D) XformDir(v Vec3) Vec3 {
	return v.ApplyBasis(t.Basis)
}

// ApproxEqual reports whether both basis and position are within eps.
func (t Transform3D) ApproxEqual(o Transform3D, eps float64) bool {
	return t.Basis.ApproxEqual(o.Basis, eps) && t.Position.ApproxEqual(o.Position, eps)
}

// String implements fmt.Stringer.
func (t Transform3D) String() string {
	return fmt.Sprintf("Transform3D(x=%v y=%v z=%v pos=%v)",
		t.Basis.X, t.Basis.Y, t.Basis.Z, t.Position)
}
