package mdl

import "math"

// Matrix represents a 3D affine transformation as a 4x4 matrix in
// row-major order:
//
//	| m00 m01 m02 m03 |
//	| m10 m11 m12 m13 |
//	| m20 m21 m22 m23 |
//	| m30 m31 m32 m33 |
//
// Vertices are column vectors, so M.Apply(v) computes M·v.
//
// Every constructor in this file produces a matrix whose bottom row is
// [0 0 0 1], and products of such matrices keep it. Nothing enforces this
// for hand-built values; Invert relies on it.
type Matrix [4][4]float64

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translate creates a translation matrix.
func Translate(dx, dy, dz float64) Matrix {
	return Matrix{
		{1, 0, 0, dx},
		{0, 1, 0, dy},
		{0, 0, 1, dz},
		{0, 0, 0, 1},
	}
}

// Scale creates an axis-aligned scaling matrix.
func Scale(sx, sy, sz float64) Matrix {
	return Matrix{
		{sx, 0, 0, 0},
		{0, sy, 0, 0},
		{0, 0, sz, 0},
		{0, 0, 0, 1},
	}
}

// RotateX creates a rotation about the x axis (angle in radians).
func RotateX(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{
		{1, 0, 0, 0},
		{0, cos, -sin, 0},
		{0, sin, cos, 0},
		{0, 0, 0, 1},
	}
}

// RotateY creates a rotation about the y axis (angle in radians).
func RotateY(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{
		{cos, 0, sin, 0},
		{0, 1, 0, 0},
		{-sin, 0, cos, 0},
		{0, 0, 0, 1},
	}
}

// RotateZ creates a rotation about the z axis (angle in radians).
func RotateZ(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{
		{cos, -sin, 0, 0},
		{sin, cos, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Shear creates a shear matrix. Each factor adds a multiple of one
// coordinate to another: xy is the amount of y added to x, zx the amount of
// x added to z, and so on.
func Shear(xy, xz, yx, yz, zx, zy float64) Matrix {
	return Matrix{
		{1, xy, xz, 0},
		{yx, 1, yz, 0},
		{zx, zy, 1, 0},
		{0, 0, 0, 1},
	}
}

// Multiply multiplies two matrices (m * other). The result applies other
// first, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	var r Matrix
	for i := range 4 {
		for j := range 4 {
			r[i][j] = m[i][0]*other[0][j] + m[i][1]*other[1][j] +
				m[i][2]*other[2][j] + m[i][3]*other[3][j]
		}
	}
	return r
}

// Apply transforms a vertex (m · v).
func (m Matrix) Apply(v Vertex) Vertex {
	var r Vertex
	for i := range 4 {
		r[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2] + m[i][3]*v[3]
	}
	return r
}

// Invert returns the inverse of an affine matrix.
// Returns the identity matrix if the matrix is not invertible.
func (m Matrix) Invert() Matrix {
	a, b, c := m[0][0], m[0][1], m[0][2]
	d, e, f := m[1][0], m[1][1], m[1][2]
	g, h, k := m[2][0], m[2][1], m[2][2]

	c00 := e*k - f*h
	c01 := -(d*k - f*g)
	c02 := d*h - e*g
	det := a*c00 + b*c01 + c*c02
	if math.Abs(det) < 1e-12 {
		return Identity()
	}
	inv := 1 / det

	var r Matrix
	r[0][0] = c00 * inv
	r[0][1] = -(b*k - c*h) * inv
	r[0][2] = (b*f - c*e) * inv
	r[1][0] = c01 * inv
	r[1][1] = (a*k - c*g) * inv
	r[1][2] = -(a*f - c*d) * inv
	r[2][0] = c02 * inv
	r[2][1] = -(a*h - b*g) * inv
	r[2][2] = (a*e - b*d) * inv

	tx, ty, tz := m[0][3], m[1][3], m[2][3]
	for i := range 3 {
		r[i][3] = -(r[i][0]*tx + r[i][1]*ty + r[i][2]*tz)
	}
	r[3] = [4]float64{0, 0, 0, 1}
	return r
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// IsAffine reports whether the bottom row is [0 0 0 1].
func (m Matrix) IsAffine() bool {
	return m[3] == [4]float64{0, 0, 0, 1}
}
