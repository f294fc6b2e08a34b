// Package viewer displays rendered frames, either in a desktop window or by
// handing them to an external program.
package viewer

import (
	"bytes"
	"fmt"
	"image"
	"os/exec"
	"strings"

	mdlimage "github.com/gogpu/mdl/internal/image"
)

// Viewer shows a rendered frame to the user. The image belongs to the
// viewer once passed to Show.
type Viewer interface {
	Show(img *image.RGBA) error
}

// Func adapts a function to Viewer.
type Func func(img *image.RGBA) error

// Show implements Viewer.
func (f Func) Show(img *image.RGBA) error { return f(img) }

// Exec pipes each frame, in the raw raster format, to the standard input of
// an external program and waits for it to exit. ImageMagick's "display -"
// is the usual choice.
type Exec struct {
	Program string
	Args    []string
}

// Show implements Viewer.
func (e Exec) Show(img *image.RGBA) error {
	var in bytes.Buffer
	if err := mdlimage.Encode(&in, img, mdlimage.FormatPPM); err != nil {
		return err
	}
	cmd := exec.Command(e.Program, e.Args...)
	cmd.Stdin = &in
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("viewer: %s: %w: %s", e.Program, err, msg)
		}
		return fmt.Errorf("viewer: %s: %w", e.Program, err)
	}
	return nil
}

// Nop discards every frame.
type Nop struct{}

// Show implements Viewer.
func (Nop) Show(*image.RGBA) error { return nil }
