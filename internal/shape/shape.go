// Package shape generates the vertices of curves and solids.
//
// Curve generators return edge lists (two points per edge); solid generators
// return triangle lists (three points per triangle) wound counter-clockwise
// when seen from outside the solid, so that back-face culling keeps exactly
// the faces turned toward the viewer.
package shape

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Default tessellation.
const (
	SphereSteps = 20
	TorusSteps  = 20
	CurveSteps  = 100
)

// parametric samples f at steps+1 evenly spaced t in [0, 1] and connects the
// samples with edges.
func parametric(steps int, f func(t float64) r3.Vec) []r3.Vec {
	out := make([]r3.Vec, 0, 2*steps)
	prev := f(0)
	for i := 1; i <= steps; i++ {
		p := f(float64(i) / float64(steps))
		out = append(out, prev, p)
		prev = p
	}
	return out
}

// Circle returns the edges of a circle of radius r in the plane z = cz.
func Circle(cx, cy, cz, r float64) []r3.Vec {
	steps := max(16, int(math.Ceil(2*math.Pi*math.Abs(r)/4)))
	return parametric(steps, func(t float64) r3.Vec {
		sin, cos := math.Sincos(2 * math.Pi * t)
		return r3.Vec{X: cx + r*cos, Y: cy + r*sin, Z: cz}
	})
}

// cubic evaluates a + b·t + c·t² + d·t³ with Horner's rule.
func cubic(a, b, c, d, t float64) float64 {
	return ((d*t+c)*t+b)*t + a
}

// Bezier returns the edges of the cubic Bezier curve with control points
// p0..p3 in the plane z = 0.
func Bezier(x0, y0, x1, y1, x2, y2, x3, y3 float64) []r3.Vec {
	coef := func(p0, p1, p2, p3 float64) (a, b, c, d float64) {
		return p0, 3 * (p1 - p0), 3 * (p0 - 2*p1 + p2), -p0 + 3*p1 - 3*p2 + p3
	}
	ax, bx, cx, dx := coef(x0, x1, x2, x3)
	ay, by, cy, dy := coef(y0, y1, y2, y3)
	return parametric(CurveSteps, func(t float64) r3.Vec {
		return r3.Vec{X: cubic(ax, bx, cx, dx, t), Y: cubic(ay, by, cy, dy, t)}
	})
}

// Hermite returns the edges of the cubic Hermite curve from (x0, y0) to
// (x1, y1) with tangents (rx0, ry0) and (rx1, ry1), in the plane z = 0.
func Hermite(x0, y0, x1, y1, rx0, ry0, rx1, ry1 float64) []r3.Vec {
	coef := func(p0, p1, r0, r1 float64) (a, b, c, d float64) {
		return p0, r0, -3*p0 + 3*p1 - 2*r0 - r1, 2*p0 - 2*p1 + r0 + r1
	}
	ax, bx, cx, dx := coef(x0, x1, rx0, rx1)
	ay, by, cy, dy := coef(y0, y1, ry0, ry1)
	return parametric(CurveSteps, func(t float64) r3.Vec {
		return r3.Vec{X: cubic(ax, bx, cx, dx, t), Y: cubic(ay, by, cy, dy, t)}
	})
}

// quad appends the two triangles of the quadrilateral abcd, given
// counter-clockwise as seen from the side it faces.
func quad(tris []r3.Vec, a, b, c, d r3.Vec) []r3.Vec {
	return append(tris, a, b, c, a, c, d)
}

// Box returns the triangles of the box spanning [x, x+w] × [y, y+h] ×
// [z, z+d].
func Box(x, y, z, w, h, d float64) []r3.Vec {
	x0, x1 := x, x+w
	y0, y1 := y, y+h
	z0, z1 := z, z+d
	p := func(x, y, z float64) r3.Vec { return r3.Vec{X: x, Y: y, Z: z} }

	tris := make([]r3.Vec, 0, 36)
	tris = quad(tris, p(x0, y0, z1), p(x1, y0, z1), p(x1, y1, z1), p(x0, y1, z1)) // front
	tris = quad(tris, p(x1, y0, z0), p(x0, y0, z0), p(x0, y1, z0), p(x1, y1, z0)) // back
	tris = quad(tris, p(x1, y0, z1), p(x1, y0, z0), p(x1, y1, z0), p(x1, y1, z1)) // right
	tris = quad(tris, p(x0, y0, z0), p(x0, y0, z1), p(x0, y1, z1), p(x0, y1, z0)) // left
	tris = quad(tris, p(x0, y1, z1), p(x1, y1, z1), p(x1, y1, z0), p(x0, y1, z0)) // top
	tris = quad(tris, p(x0, y0, z0), p(x1, y0, z0), p(x1, y0, z1), p(x0, y0, z1)) // bottom
	if w*h*d < 0 {
		// An odd number of negative extents mirrors the box inside out.
		flip(tris)
	}
	return tris
}

func flip(tris []r3.Vec) {
	for i := 0; i+2 < len(tris); i += 3 {
		tris[i+1], tris[i+2] = tris[i+2], tris[i+1]
	}
}

// outward appends triangle abc so that its normal points away from ref, the
// point the surface wraps around. Degenerate triangles are dropped.
func outward(tris []r3.Vec, a, b, c, ref r3.Vec) []r3.Vec {
	n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
	if r3.Norm(n) < 1e-12 {
		return tris
	}
	centroid := r3.Scale(1.0/3, r3.Add(a, r3.Add(b, c)))
	if r3.Dot(n, r3.Sub(centroid, ref)) < 0 {
		b, c = c, b
	}
	return append(tris, a, b, c)
}

// Sphere returns the triangles of a sphere of radius r centred at
// (cx, cy, cz), built from semicircles rotated about the x axis.
func Sphere(cx, cy, cz, r float64) []r3.Vec {
	n := SphereSteps
	center := r3.Vec{X: cx, Y: cy, Z: cz}
	at := func(i, j int) r3.Vec {
		sinPhi, cosPhi := math.Sincos(2 * math.Pi * float64(i%n) / float64(n))
		sinTheta, cosTheta := math.Sincos(math.Pi * float64(j) / float64(n))
		return r3.Vec{
			X: cx + r*cosTheta,
			Y: cy + r*sinTheta*cosPhi,
			Z: cz + r*sinTheta*sinPhi,
		}
	}
	tris := make([]r3.Vec, 0, 6*n*n)
	for i := range n {
		for j := range n {
			a, b := at(i, j), at(i, j+1)
			c, d := at(i+1, j+1), at(i+1, j)
			tris = outward(tris, a, b, c, center)
			tris = outward(tris, a, c, d, center)
		}
	}
	return tris
}

// Torus returns the triangles of a torus centred at (cx, cy, cz) lying in
// the xz plane. r1 is the tube radius and r2 the distance from the centre to
// the middle of the tube.
func Torus(cx, cy, cz, r1, r2 float64) []r3.Vec {
	n := TorusSteps
	at := func(i, j int) r3.Vec {
		sinPhi, cosPhi := math.Sincos(2 * math.Pi * float64(i%n) / float64(n))
		sinTheta, cosTheta := math.Sincos(2 * math.Pi * float64(j%n) / float64(n))
		return r3.Vec{
			X: cx + cosPhi*(r1*cosTheta+r2),
			Y: cy + r1*sinTheta,
			Z: cz + sinPhi*(r1*cosTheta+r2),
		}
	}
	// ring returns the point of the tube's centre line nearest to p.
	ring := func(p r3.Vec) r3.Vec {
		dx, dz := p.X-cx, p.Z-cz
		l := math.Hypot(dx, dz)
		if l == 0 {
			return r3.Vec{X: cx, Y: cy, Z: cz}
		}
		return r3.Vec{X: cx + r2*dx/l, Y: cy, Z: cz + r2*dz/l}
	}
	tris := make([]r3.Vec, 0, 6*n*n)
	for i := range n {
		for j := range n {
			a, b := at(i, j), at(i+1, j)
			c, d := at(i+1, j+1), at(i, j+1)
			ref := ring(r3.Scale(0.25, r3.Add(r3.Add(a, b), r3.Add(c, d))))
			tris = outward(tris, a, b, c, ref)
			tris = outward(tris, a, c, d, ref)
		}
	}
	return tris
}
