package math3d

import (
	"testing"
)

func BenchmarkTransformMul(b *testing.B) {
	t1 := Translation(V3(1, 2, 3))
	t2 := NewTransform(IdentityBasis().Rotated(Up(), 0.5), Zero3())

	for b.Loop() {
		_ = t1.Mul(t2)
	}
}

func BenchmarkTransformXform(b *testing.B) {
	tr := NewTransform(IdentityBasis().Rotated(Up(), 0.5), V3(1, 2, 3))
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = tr.Xform(v)
	}
}

func BenchmarkTransformInverse(b *testing.B) {
	tr := NewTransform(IdentityBasis().Rotated(Up(), 0.5), V3(1, 2, 3))

	for b.Loop() {
		_ = tr.Inverse()
	}
}

func BenchmarkBasisRotated(b *testing.B) {
	basis := IdentityBasis()
	axis := V3(1, 2, 3)

	for b.Loop() {
		_ = basis.Rotated(axis, 0.1)
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkVec3Cross(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Cross(v2)
	}
}

func BenchmarkVec3Slerp(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(-4, 5, 6)

	for b.Loop() {
		_ = v1.Slerp(v2, 0.3)
	}
}

func BenchmarkLookAt(b *testing.B) {
	dir := V3(1, -1, -2)
	up := V3(0, 1, 0)

	for b.Loop() {
		_ = LookAt(dir, up)
	}
}
