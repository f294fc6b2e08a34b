package mdl

import (
	"math"
	"testing"
)

const eps = 1e-9

func vertexNear(a, b Vertex) bool {
	for i := range 4 {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func matrixNear(a, b Matrix) bool {
	for i := range 4 {
		for j := range 4 {
			if math.Abs(a[i][j]-b[i][j]) > eps {
				return false
			}
		}
	}
	return true
}

func TestMatrixApply(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		in   Vertex
		want Vertex
	}{
		{"identity", Identity(), Pt(1, 2, 3), Pt(1, 2, 3)},
		{"translate", Translate(10, -5, 2), Pt(1, 2, 3), Pt(11, -3, 5)},
		{"scale", Scale(2, 3, -1), Pt(1, 2, 3), Pt(2, 6, -3)},
		{"rotate x 90", RotateX(math.Pi / 2), Pt(0, 1, 0), Pt(0, 0, 1)},
		{"rotate y 90", RotateY(math.Pi / 2), Pt(0, 0, 1), Pt(1, 0, 0)},
		{"rotate z 90", RotateZ(math.Pi / 2), Pt(1, 0, 0), Pt(0, 1, 0)},
		{"shear xy", Shear(2, 0, 0, 0, 0, 0), Pt(1, 1, 0), Pt(3, 1, 0)},
		{"shear zx", Shear(0, 0, 0, 0, 1, 0), Pt(4, 0, 1), Pt(4, 0, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Apply(tt.in)
			if !vertexNear(got, tt.want) {
				t.Errorf("Apply(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatrixMultiplyOrder(t *testing.T) {
	// Multiply applies its argument first.
	m := Translate(10, 0, 0).Multiply(Scale(2, 2, 2))
	got := m.Apply(Pt(1, 1, 1))
	want := Pt(12, 2, 2)
	if !vertexNear(got, want) {
		t.Errorf("(T*S).Apply = %v, want %v", got, want)
	}

	m = Scale(2, 2, 2).Multiply(Translate(10, 0, 0))
	got = m.Apply(Pt(1, 1, 1))
	want = Pt(22, 2, 2)
	if !vertexNear(got, want) {
		t.Errorf("(S*T).Apply = %v, want %v", got, want)
	}
}

func TestMatrixMultiplyIdentity(t *testing.T) {
	m := RotateZ(0.3).Multiply(Translate(1, 2, 3))
	if got := m.Multiply(Identity()); got != m {
		t.Errorf("m*I = %v, want %v", got, m)
	}
	if got := Identity().Multiply(m); got != m {
		t.Errorf("I*m = %v, want %v", got, m)
	}
}

func TestTranslateRoundTrip(t *testing.T) {
	for _, v := range []Vertex{Pt(0, 0, 0), Pt(1, -2, 3), Pt(1e6, 1e-6, -7)} {
		tr := Translate(4, -8, 15)
		got := tr.Invert().Apply(tr.Apply(v))
		if !vertexNear(got, v) {
			t.Errorf("round trip of %v = %v", v, got)
		}
	}
}

func TestMatrixInvert(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"identity", Identity()},
		{"translate", Translate(3, 4, 5)},
		{"scale", Scale(2, 0.5, -4)},
		{"rotate", RotateX(0.4).Multiply(RotateY(-1.1)).Multiply(RotateZ(2))},
		{"shear", Shear(0.5, 0, 0.25, 0, 0, 0.1)},
		{"composite", Translate(1, 2, 3).Multiply(RotateZ(0.7)).Multiply(Scale(3, 3, 1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Multiply(tt.m.Invert())
			if !matrixNear(got, Identity()) {
				t.Errorf("m * m^-1 = %v, want identity", got)
			}
		})
	}
}

func TestMatrixInvertSingular(t *testing.T) {
	if got := Scale(1, 0, 1).Invert(); !got.IsIdentity() {
		t.Errorf("singular Invert() = %v, want identity", got)
	}
}

func TestMatrixAffine(t *testing.T) {
	ms := []Matrix{
		Identity(), Translate(1, 2, 3), Scale(1, 2, 3),
		RotateX(1), RotateY(1), RotateZ(1), Shear(1, 2, 3, 4, 5, 6),
		Translate(1, 2, 3).Multiply(RotateY(0.2)),
	}
	for i, m := range ms {
		if !m.IsAffine() {
			t.Errorf("matrix %d bottom row = %v, want [0 0 0 1]", i, m[3])
		}
	}
	if (Matrix{}).IsAffine() {
		t.Error("zero matrix reported affine")
	}
}

func TestRotationPreservesLength(t *testing.T) {
	v := Pt(3, 4, 12)
	for _, m := range []Matrix{RotateX(0.9), RotateY(-2.3), RotateZ(5)} {
		r := m.Apply(v)
		if got := math.Hypot(math.Hypot(r.X(), r.Y()), r.Z()); math.Abs(got-13) > eps {
			t.Errorf("|R·v| = %v, want 13", got)
		}
		if r[3] != 1 {
			t.Errorf("w = %v, want 1", r[3])
		}
	}
}
