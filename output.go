package mdl

import (
	"image"

	"github.com/gogpu/mdl/internal/raster"
)

// Converter turns a raw raster file (binary PPM) into the image file at
// outPath. Implementations are called from several goroutines at once.
type Converter interface {
	Convert(rasterPath, outPath string) error
}

// Assembler combines the frames of an animation, in order, into one file.
type Assembler interface {
	Assemble(frames []string, outPath string) error
}

// Viewer shows a frame to the user. The image belongs to the viewer once
// passed to Show.
type Viewer interface {
	Show(img *image.RGBA) error
}

// RGB is a light colour. Channels are nominally in [0, 255]; shaded colours
// are clamped.
type RGB struct {
	R, G, B float64
}

// Light is a directional light. Direction is the direction the light
// travels, so a face lit head-on has a normal opposite to it.
type Light struct {
	Color     RGB
	Direction Vertex
}

func (c RGB) raster() raster.RGB {
	return raster.RGB{R: c.R, G: c.G, B: c.B}
}
