package raster

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// eps absorbs floating-point noise from transforms so that vertices that
// should sit exactly on a pixel center are not lost to rounding.
const eps = 1e-6

// Rasterizer draws into one screen and its depth buffer. It is not safe for
// concurrent use; each frame gets its own Rasterizer.
type Rasterizer struct {
	screen   *Screen
	zbuf     *ZBuffer
	lighting Lighting
}

// NewRasterizer creates a rasterizer drawing into screen, testing depth
// against zbuf. The buffers must have the same dimensions.
func NewRasterizer(screen *Screen, zbuf *ZBuffer, lighting Lighting) *Rasterizer {
	return &Rasterizer{
		screen:   screen,
		zbuf:     zbuf,
		lighting: lighting,
	}
}

// Screen returns the target screen.
func (r *Rasterizer) Screen() *Screen { return r.screen }

// ZBuffer returns the depth buffer.
func (r *Rasterizer) ZBuffer() *ZBuffer { return r.zbuf }

// Lighting returns the shading model used for triangles.
func (r *Rasterizer) Lighting() Lighting { return r.lighting }

// SetLighting replaces the shading model.
func (r *Rasterizer) SetLighting(l Lighting) { r.lighting = l }

// Clear clears the screen to black and resets the depth buffer.
func (r *Rasterizer) Clear() {
	r.screen.Clear()
	r.zbuf.Clear()
}

// Normal returns the unnormalized surface normal (b-a) × (c-a).
func Normal(a, b, c r3.Vec) r3.Vec {
	return r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
}

// DrawTriangle fills the triangle abc and reports whether it was drawn.
//
// Triangles facing away from the viewer (normal z <= 0, which includes
// degenerate triangles) are culled. The color is computed once from the
// normal; every pixel whose interpolated depth beats the depth buffer gets
// that color.
func (r *Rasterizer) DrawTriangle(a, b, c r3.Vec) bool {
	n := Normal(a, b, c)
	if !(n.Z > 0) {
		return false
	}
	r.fill(a, b, c, r.lighting.Shade(n))
	return true
}

// fill scan-converts the triangle in two passes: from the bottom vertex up
// to the middle one, then from the middle up to the top. The long edge runs
// bottom to top in both passes.
func (r *Rasterizer) fill(a, b, c r3.Vec, col Color) {
	bot, mid, top := a, b, c
	if bot.Y > mid.Y {
		bot, mid = mid, bot
	}
	if mid.Y > top.Y {
		mid, top = top, mid
	}
	if bot.Y > mid.Y {
		bot, mid = mid, bot
	}

	yStart := int(math.Ceil(bot.Y - eps))
	yMid := int(math.Floor(mid.Y + eps))
	yEnd := int(math.Floor(top.Y + eps))

	y := max(yStart, 0)
	for ; y <= yMid && y <= yEnd; y++ {
		if y >= r.screen.height {
			return
		}
		xa, za := edgeAt(bot, top, float64(y))
		xb, zb := edgeAt(bot, mid, float64(y))
		r.flatLine(y, xa, za, xb, zb, col)
	}
	for y = max(y, yMid+1); y <= yEnd; y++ {
		if y >= r.screen.height {
			return
		}
		xa, za := edgeAt(bot, top, float64(y))
		xb, zb := edgeAt(mid, top, float64(y))
		r.flatLine(y, xa, za, xb, zb, col)
	}
}

// edgeAt returns x and z where the edge p→q crosses the scanline y. A
// horizontal edge yields its far endpoint q.
func edgeAt(p, q r3.Vec, y float64) (x, z float64) {
	dy := q.Y - p.Y
	if dy == 0 {
		return q.X, q.Z
	}
	t := clamp((y-p.Y)/dy, 0, 1)
	return p.X + (q.X-p.X)*t, p.Z + (q.Z-p.Z)*t
}

// flatLine fills the span between xa and xb on scanline y, interpolating z
// linearly, and writes only pixels that pass the depth test.
func (r *Rasterizer) flatLine(y int, xa, za, xb, zb float64, col Color) {
	if y < 0 || y >= r.screen.height {
		return
	}
	if xa > xb {
		xa, xb = xb, xa
		za, zb = zb, za
	}
	x0 := max(int(math.Ceil(xa-eps)), 0)
	x1 := min(int(math.Floor(xb+eps)), r.screen.width-1)
	dx := xb - xa
	for x := x0; x <= x1; x++ {
		z := za
		if dx != 0 {
			z = za + (zb-za)*clamp((float64(x)-xa)/dx, 0, 1)
		}
		if r.zbuf.Test(x, y, z) {
			r.screen.Set(x, y, col)
		}
	}
}
