package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
	}{
		{"axis", V3(5, 0, 0)},
		{"diagonal", V3(1, 1, 1)},
		{"negative", V3(-3, 4, -12)},
		{"tiny", V3(1e-8, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.v.Normalize().Len()
			if math.Abs(got-1) > eps {
				t.Errorf("len = %v, want 1", got)
			}
		})
	}

	t.Run("zero", func(t *testing.T) {
		got := Zero3().Normalize()
		if got != Zero3() {
			t.Errorf("got %v, want zero vector", got)
		}
		if math.IsNaN(got.X) || math.IsNaN(got.Y) || math.IsNaN(got.Z) {
			t.Errorf("zero normalize produced NaN: %v", got)
		}
	})
}

func TestArithmetic(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, 5, 6)

	if got := a.Add(b); got != V3(5, 7, 9) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got != V3(3, 3, 3) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Mul(b); got != V3(4, 10, 18) {
		t.Errorf("Mul = %v", got)
	}
	if got := a.Scale(2); got != V3(2, 4, 6) {
		t.Errorf("Scale = %v", got)
	}
	if got := b.DivVec(V3(2, 5, 3)); got != V3(2, 1, 2) {
		t.Errorf("DivVec = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := Right().Cross(Up()); got != Backward() {
		t.Errorf("X cross Y = %v, want +Z", got)
	}
}

func TestDivByZeroPropagates(t *testing.T) {
	got := V3(1, -1, 0).Div(0)
	if !math.IsInf(got.X, 1) || !math.IsInf(got.Y, -1) || !math.IsNaN(got.Z) {
		t.Errorf("got %v, want (+Inf, -Inf, NaN)", got)
	}
}

func TestLerpExtrapolates(t *testing.T) {
	a := V3(0, 0, 0)
	b := V3(2, 4, 6)

	tests := []struct {
		t    float64
		want Vec3
	}{
		{0, V3(0, 0, 0)},
		{0.5, V3(1, 2, 3)},
		{1, V3(2, 4, 6)},
		{2, V3(4, 8, 12)},
		{-1, V3(-2, -4, -6)},
	}

	for _, tc := range tests {
		if got := a.Lerp(b, tc.t); !got.ApproxEqual(tc.want, eps) {
			t.Errorf("Lerp(%v) = %v, want %v", tc.t, got, tc.want)
		}
	}
}

func TestSlerp(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
	}{
		{"orthogonal", V3(3, 0, 0), V3(0, 2, 0)},
		{"oblique", V3(1, 2, 3), V3(-2, 1, 0.5)},
		{"parallel", V3(0, 0, 4), V3(0, 0, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Slerp(tc.b, 0); !got.ApproxEqual(tc.a.Normalize(), 1e-6) {
				t.Errorf("t=0: got %v, want %v", got, tc.a.Normalize())
			}

			want := tc.b.Normalize()
			if tc.a.Dot(tc.b) < 0 {
				want = want.Negate()
			}
			if got := tc.a.Slerp(tc.b, 1); !got.ApproxEqual(want, 1e-6) {
				t.Errorf("t=1: got %v, want %v", got, want)
			}

			mid := tc.a.Slerp(tc.b, 0.5)
			if math.Abs(mid.Len()-1) > 1e-6 {
				t.Errorf("midpoint len = %v, want 1", mid.Len())
			}
		})
	}

	t.Run("antiparallel flips", func(t *testing.T) {
		got := V3(1, 0, 0).Slerp(V3(-1, 0, 0), 1)
		if !got.ApproxEqual(V3(1, 0, 0), 1e-6) {
			t.Errorf("got %v, want the shortest-arc endpoint (1,0,0)", got)
		}
	})

	t.Run("quarter turn", func(t *testing.T) {
		got := V3(1, 0, 0).Slerp(V3(0, 1, 0), 0.5)
		s := math.Sqrt2 / 2
		if !got.ApproxEqual(V3(s, s, 0), 1e-9) {
			t.Errorf("got %v, want (%v, %v, 0)", got, s, s)
		}
	})
}

func TestApplyBasis(t *testing.T) {
	b := Basis{X: V3(0, 1, 0), Y: V3(-1, 0, 0), Z: V3(0, 0, 2)}
	got := V3(1, 2, 3).ApplyBasis(b)
	want := V3(-2, 1, 6)
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	tr := NewTransform(b, V3(10, 0, 0))
	if got := V3(1, 2, 3).ApplyTransform(tr); got != want.Add(V3(10, 0, 0)) {
		t.Errorf("ApplyTransform = %v", got)
	}
}

func TestVec3String(t *testing.T) {
	if got := V3(1, -2.5, 0).String(); got != "Vec3(1.00, -2.50, 0.00)" {
		t.Errorf("got %q", got)
	}
}
