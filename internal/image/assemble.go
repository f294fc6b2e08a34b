package image

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// ErrNoFrames is returned when an animation has nothing to assemble.
var ErrNoFrames = errors.New("image: no frames to assemble")

// Assembler combines ordered frame files into one animation file.
type Assembler interface {
	Assemble(frames []string, outPath string) error
}

// GIFAssembler builds an animated GIF in process. Frames are reduced to the
// Plan 9 palette with Floyd-Steinberg dithering.
type GIFAssembler struct {
	// Delay between frames in hundredths of a second.
	Delay int
}

// Assemble implements Assembler.
func (a GIFAssembler) Assemble(frames []string, outPath string) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	anim := &gif.GIF{
		Image: make([]*image.Paletted, 0, len(frames)),
		Delay: make([]int, 0, len(frames)),
	}
	for _, path := range frames {
		img, err := Load(path)
		if err != nil {
			return err
		}
		b := img.Bounds()
		p := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
		draw.FloydSteinberg.Draw(p, p.Bounds(), img, b.Min)
		anim.Image = append(anim.Image, p)
		anim.Delay = append(anim.Delay, a.Delay)
	}

	f, err := os.Create(filepath.Clean(outPath))
	if err != nil {
		return fmt.Errorf("image: create animation: %w", err)
	}
	if err := gif.EncodeAll(f, anim); err != nil {
		_ = f.Close()
		return fmt.Errorf("image: encode animation: %w", err)
	}
	return f.Close()
}

// ExecAssembler runs an external program as
//
//	<Program> <Args...> <frames...> <outPath>
//
// for example ImageMagick's "convert -delay 3".
type ExecAssembler struct {
	Program string
	Args    []string
}

// Assemble implements Assembler.
func (a ExecAssembler) Assemble(frames []string, outPath string) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	args := append(append([]string(nil), a.Args...), frames...)
	return run(a.Program, append(args, outPath))
}
