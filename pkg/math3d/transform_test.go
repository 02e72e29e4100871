package math3d

import "testing"

func sampleTransform() Transform3D {
	b := IdentityBasis().Rotated(V3(1, 2, -1), 0.8)
	return NewTransform(b, V3(3, -2, 7))
}

func TestIdentityMul(t *testing.T) {
	tr := sampleTransform()
	if got := IdentityTransform().Mul(tr); !got.ApproxEqual(tr, 1e-12) {
		t.Errorf("I * T = %v, want %v", got, tr)
	}
	if got := tr.Mul(IdentityTransform()); !got.ApproxEqual(tr, 1e-12) {
		t.Errorf("T * I = %v, want %v", got, tr)
	}
}

func TestInverse(t *testing.T) {
	tr := sampleTransform()
	if got := tr.Mul(tr.Inverse()); !got.ApproxEqual(IdentityTransform(), 1e-9) {
		t.Errorf("T * T^-1 = %v, want identity", got)
	}
	if got := tr.Inverse().Mul(tr); !got.ApproxEqual(IdentityTransform(), 1e-9) {
		t.Errorf("T^-1 * T = %v, want identity", got)
	}

	p := V3(1, 2, 3)
	if got := tr.Inverse().Xform(tr.Xform(p)); !got.ApproxEqual(p, 1e-9) {
		t.Errorf("round trip = %v, want %v", got, p)
	}
}

func TestMulAppliesRightOperandFirst(t *testing.T) {
	parent := NewTransform(IdentityBasis().Rotated(Up(), 1.2), V3(0, 5, 0))
	child := NewTransform(IdentityBasis().Scaled(V3(2, 2, 2)), V3(1, 0, 0))
	p := V3(0.5, 0.25, -1)

	want := parent.Xform(child.Xform(p))
	got := parent.Mul(child).Xform(p)
	if !got.ApproxEqual(want, 1e-9) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestXformDirIgnoresTranslation(t *testing.T) {
	tr := Translation(V3(10, 10, 10))
	if got := tr.XformDir(Up()); got != Up() {
		t.Errorf("got %v, want %v", got, Up())
	}
}

func TestMat4Bridge(t *testing.T) {
	m := Mat4{
		2, 0, 0, 0,
		0, 0, 1, 0,
		0, -1, 0, 0,
		5, 6, 7, 1,
	}
	want := NewTransform(Basis{X: V3(2, 0, 0), Y: V3(0, 0, 1), Z: V3(0, -1, 0)}, V3(5, 6, 7))
	if got := m.Transform3D(); !got.ApproxEqual(want, 0) {
		t.Errorf("Transform3D = %v, want %v", got, want)
	}

	if got := Identity().Transform3D(); !got.ApproxEqual(IdentityTransform(), 0) {
		t.Errorf("Identity = %v", got)
	}

	if !(Mat4{}).IsZero() || Identity().IsZero() {
		t.Error("IsZero mismatch")
	}
}
