package raster

import (
	"math"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/spatial/r3"
)

// RGB is an unclamped color with float channels on the 0..255 scale, used
// for light intensities.
type RGB struct {
	R, G, B float64
}

// DirectionalLight is a light at infinity travelling along Direction.
type DirectionalLight struct {
	Color     RGB
	Direction r3.Vec
}

// Lighting is the flat shading model: an ambient term plus the diffuse
// contribution of every directional light.
type Lighting struct {
	Ambient RGB
	Lights  []DirectionalLight
}

// Shade computes the flat color of a surface with the given normal. The
// normal does not need to be unit length. Lights whose strength is NaN
// (a degenerate normal or light direction) contribute nothing, and negative
// strengths are clamped to zero.
func (l Lighting) Shade(normal r3.Vec) Color {
	n := r3.Unit(normal)
	acc := l.Ambient
	for _, light := range l.Lights {
		toLight := r3.Scale(-1, r3.Unit(light.Direction))
		s := r3.Dot(toLight, n)
		if math.IsNaN(s) {
			continue
		}
		s = max(s, 0)
		acc.R += light.Color.R * s
		acc.G += light.Color.G * s
		acc.B += light.Color.B * s
	}
	return Color{channel(acc.R), channel(acc.G), channel(acc.B)}
}

func channel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(clamp(v, 0, 255))
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
