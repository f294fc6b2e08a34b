// Package raster provides scan conversion of 3D lines and triangles into a
// fixed-size RGB screen with a depth buffer and flat lighting.
//
// Coordinates are orthographic screen coordinates: x grows to the right,
// y grows upward from the bottom row, and larger z is closer to the viewer.
package raster

import (
	"image"
	"math"
)

// Color is an opaque 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// Screen is a width×height RGB pixel buffer stored as 3 bytes per pixel.
//
// Rows are stored bottom-up: storage row r holds logical y = r. Consumers
// that need the usual top-down layout (image files, viewers) read it through
// Image or RowTopDown, which flip it.
type Screen struct {
	width  int
	height int
	pix    []byte
}

// NewScreen creates a black screen.
func NewScreen(width, height int) *Screen {
	return &Screen{
		width:  width,
		height: height,
		pix:    make([]byte, width*height*3),
	}
}

// Width returns the screen width in pixels.
func (s *Screen) Width() int { return s.width }

// Height returns the screen height in pixels.
func (s *Screen) Height() int { return s.height }

// Pix returns the raw bottom-up pixel data.
func (s *Screen) Pix() []byte { return s.pix }

// InBounds reports whether (x, y) lies on the screen.
func (s *Screen) InBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

func (s *Screen) offset(x, y int) int {
	return (y*s.width + x) * 3
}

// Set plots c at (x, y). Points outside the screen are dropped.
func (s *Screen) Set(x, y int, c Color) {
	if !s.InBounds(x, y) {
		return
	}
	i := s.offset(x, y)
	s.pix[i] = c.R
	s.pix[i+1] = c.G
	s.pix[i+2] = c.B
}

// At returns the color at (x, y), or black outside the screen.
func (s *Screen) At(x, y int) Color {
	if !s.InBounds(x, y) {
		return Black
	}
	i := s.offset(x, y)
	return Color{s.pix[i], s.pix[i+1], s.pix[i+2]}
}

// Clear sets every pixel to black.
func (s *Screen) Clear() {
	clear(s.pix)
}

// Fill sets every pixel to c.
func (s *Screen) Fill(c Color) {
	for i := 0; i < len(s.pix); i += 3 {
		s.pix[i] = c.R
		s.pix[i+1] = c.G
		s.pix[i+2] = c.B
	}
}

// RowTopDown returns the pixels of visual row k counted from the top of the
// image, which is storage row height-1-k.
func (s *Screen) RowTopDown(k int) []byte {
	r := s.height - 1 - k
	return s.pix[r*s.width*3 : (r+1)*s.width*3]
}

// Clone returns an independent copy of the screen.
func (s *Screen) Clone() *Screen {
	c := &Screen{width: s.width, height: s.height, pix: make([]byte, len(s.pix))}
	copy(c.pix, s.pix)
	return c
}

// Image returns the screen as a top-down image.RGBA.
func (s *Screen) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	for k := range s.height {
		src := s.RowTopDown(k)
		dst := img.Pix[k*img.Stride:]
		for x := range s.width {
			dst[x*4] = src[x*3]
			dst[x*4+1] = src[x*3+1]
			dst[x*4+2] = src[x*3+2]
			dst[x*4+3] = 0xFF
		}
	}
	return img
}

// ZBuffer records the nearest depth drawn at every pixel.
type ZBuffer struct {
	width  int
	height int
	z      []float64
}

// NewZBuffer creates a cleared depth buffer.
func NewZBuffer(width, height int) *ZBuffer {
	zb := &ZBuffer{width: width, height: height, z: make([]float64, width*height)}
	zb.Clear()
	return zb
}

// Clear resets every depth to negative infinity.
func (zb *ZBuffer) Clear() {
	n := len(zb.z)
	if n == 0 {
		return
	}
	// Copy-doubling fill.
	zb.z[0] = math.Inf(-1)
	for i := 1; i < n; i *= 2 {
		copy(zb.z[i:], zb.z[:i])
	}
}

// At returns the stored depth at (x, y), or negative infinity outside the
// buffer.
func (zb *ZBuffer) At(x, y int) float64 {
	if x < 0 || x >= zb.width || y < 0 || y >= zb.height {
		return math.Inf(-1)
	}
	return zb.z[y*zb.width+x]
}

// Test stores z at (x, y) and returns true if z is strictly closer than the
// stored depth. Points outside the buffer always fail.
func (zb *ZBuffer) Test(x, y int, z float64) bool {
	if x < 0 || x >= zb.width || y < 0 || y >= zb.height {
		return false
	}
	i := y*zb.width + x
	if z > zb.z[i] {
		zb.z[i] = z
		return true
	}
	return false
}
