package math3d

// Mat4 is a 4x4 matrix stored in column-major order, the layout glTF uses
// for node matrices.
//
// Memory layout (indices):
// | 0  4  8  12 |
// | 1  5  9  13 |
// | 2  6  10 14 |
// | 3  7  11 15 |
//
// For an affine transform:
// | Xx Yx Zx Tx |   X,Y,Z = basis vectors (rotation/scale)
// | Xy Yy Zy Ty |   T = translation
// | Xz Yz Zz Tz |
// | 0  0  0  1  |
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Transform3D unpacks the affine part of the matrix. The projective row is
// ignored.
func (m Mat4) Transform3D() Transform3D {
	return Transform3D{
		Basis: Basis{
			X: Vec3{m[0], m[1], m[2]},
			Y: Vec3{m[4], m[5], m[6]},
			Z: Vec3{m[8], m[9], m[10]},
		},
		Position: Vec3{m[12], m[13], m[14]},
	}
}

// IsZero reports whether every element is zero, which glTF uses to mean
// "matrix not set".
func (m Mat4) IsZero() bool {
	return m == Mat4{}
}
