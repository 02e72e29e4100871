package math3d

import (
	"math"
	"testing"
)

func TestRotatedZeroAngleIsIdentity(t *testing.T) {
	axes := []Vec3{Right(), Up(), Backward(), V3(1, 1, 1), V3(-2, 0.5, 3)}
	start := IdentityBasis().Rotated(V3(0.3, 0.7, -0.2), 1.1)

	for _, axis := range axes {
		got := start.Rotated(axis, 0)
		if !got.ApproxEqual(start, eps) {
			t.Errorf("Rotated(%v, 0) = %v, want %v", axis, got, start)
		}
	}
}

func TestRotatedRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		axis  Vec3
		angle float64
	}{
		{"x quarter", Right(), math.Pi / 2},
		{"y small", Up(), 0.1},
		{"z large", Backward(), 5},
		{"oblique", V3(1, 2, 3), 1.234},
		{"unnormalized", V3(0, 10, 0), -2},
	}

	start := Basis{X: V3(1, 0, 0), Y: V3(0, 0.8, 0.6), Z: V3(0, -0.6, 0.8)}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := start.Rotated(tc.axis, tc.angle).Rotated(tc.axis, -tc.angle)
			if !got.ApproxEqual(start, 1e-9) {
				t.Errorf("got %v, want %v", got, start)
			}
		})
	}
}

func TestRotatedDirection(t *testing.T) {
	// Right-handed: a quarter turn around +Y takes +X to -Z.
	b := IdentityBasis().Rotated(Up(), math.Pi/2)
	if !b.X.ApproxEqual(V3(0, 0, -1), eps) {
		t.Errorf("X = %v, want (0,0,-1)", b.X)
	}
	if !b.Forward().ApproxEqual(V3(-1, 0, 0), eps) {
		t.Errorf("Forward = %v, want (-1,0,0)", b.Forward())
	}
}

func TestBasisDirections(t *testing.T) {
	b := IdentityBasis()
	tests := []struct {
		name string
		got  Vec3
		want Vec3
	}{
		{"forward", b.Forward(), Forward()},
		{"backward", b.Backward(), Backward()},
		{"up", b.Up(), Up()},
		{"down", b.Down(), Down()},
		{"right", b.Right(), Right()},
		{"left", b.Left(), Left()},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s = %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestBasisMulMatchesSequentialApply(t *testing.T) {
	a := IdentityBasis().Rotated(Up(), 0.7)
	b := IdentityBasis().Rotated(Right(), -0.4).Scaled(V3(1, 2, 3))
	v := V3(0.5, -1, 2)

	want := v.ApplyBasis(b).ApplyBasis(a)
	got := v.ApplyBasis(a.Mul(b))
	if !got.ApproxEqual(want, 1e-9) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestBasisInverse(t *testing.T) {
	b := IdentityBasis().Rotated(V3(1, -1, 2), 0.9)
	if got := b.Mul(b.Inverse()); !got.ApproxEqual(IdentityBasis(), 1e-9) {
		t.Errorf("b * inverse = %v, want identity", got)
	}
}

func TestNormalBasis(t *testing.T) {
	rot := IdentityBasis().Rotated(V3(1, -1, 2), 0.9)
	if got := rot.NormalBasis(); !got.ApproxEqual(rot, 1e-9) {
		t.Errorf("orthonormal normal basis = %v, want %v", got, rot)
	}

	scaled := IdentityBasis().Scaled(V3(2, 1, 4))
	want := IdentityBasis().Scaled(V3(0.5, 1, 0.25))
	if got := scaled.NormalBasis(); !got.ApproxEqual(want, 1e-12) {
		t.Errorf("scaled normal basis = %v, want %v", got, want)
	}

	flat := Basis{X: Right(), Y: Right(), Z: Backward()}
	if got := flat.NormalBasis(); got != flat {
		t.Errorf("degenerate basis changed to %v", got)
	}
}

func TestLookAt(t *testing.T) {
	tests := []struct {
		name string
		dir  Vec3
		up   Vec3
	}{
		{"forward", Forward(), Up()},
		{"right", V3(3, 0, 0), Up()},
		{"oblique", V3(1, -2, -1), Up()},
		{"straight down", Down(), Up()},
		{"straight up", Up(), Up()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := LookAt(tc.dir, tc.up)
			if !b.Forward().ApproxEqual(tc.dir.Normalize(), 1e-9) {
				t.Errorf("forward = %v, want %v", b.Forward(), tc.dir.Normalize())
			}
			if !b.Inverse().Mul(b).ApproxEqual(IdentityBasis(), 1e-9) {
				t.Errorf("not orthonormal: %v", b)
			}
			if !b.X.Cross(b.Y).ApproxEqual(b.Z, 1e-9) {
				t.Errorf("not right-handed: %v", b)
			}
		})
	}

	if got := LookAt(Forward(), Up()); !got.ApproxEqual(IdentityBasis(), eps) {
		t.Errorf("LookAt(-Z, +Y) = %v, want identity", got)
	}
}

func TestWithUp(t *testing.T) {
	b := IdentityBasis().WithUp(V3(0, 1, 1))
	s := math.Sqrt2 / 2
	if !b.Y.ApproxEqual(V3(0, s, s), 1e-9) {
		t.Errorf("Y = %v", b.Y)
	}
	if math.Abs(b.X.Dot(b.Y)) > 1e-9 || math.Abs(b.Z.Dot(b.Y)) > 1e-9 {
		t.Errorf("axes not perpendicular to up: %v", b)
	}
	if !b.X.Cross(b.Y).ApproxEqual(b.Z, 1e-9) {
		t.Errorf("not right-handed: %v", b)
	}
}

func TestBasisSlerpEndpoints(t *testing.T) {
	a := IdentityBasis()
	b := IdentityBasis().Rotated(Up(), 1)

	if got := a.Slerp(b, 0); !got.ApproxEqual(a, 1e-6) {
		t.Errorf("t=0: %v", got)
	}
	if got := a.Slerp(b, 1); !got.ApproxEqual(b, 1e-6) {
		t.Errorf("t=1: %v", got)
	}
}

func TestBasisFromQuat(t *testing.T) {
	// Quarter turn around +Y.
	s := math.Sin(math.Pi / 4)
	got := BasisFromQuat(0, s, 0, math.Cos(math.Pi/4))
	want := IdentityBasis().Rotated(Up(), math.Pi/2)
	if !got.ApproxEqual(want, 1e-9) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScaled(t *testing.T) {
	b := IdentityBasis().Scaled(V3(2, 3, 4))
	if got := b.Scale(); !got.ApproxEqual(V3(2, 3, 4), eps) {
		t.Errorf("Scale = %v", got)
	}
	if got := b.Orthonormalized(); !got.ApproxEqual(IdentityBasis(), eps) {
		t.Errorf("Orthonormalized = %v", got)
	}
}
