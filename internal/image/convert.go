package image

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
)

// Converter turns a raw raster file into a final image file.
type Converter interface {
	Convert(rasterPath, outPath string) error
}

// EncodeConverter converts in process, choosing the output format from the
// extension of outPath.
type EncodeConverter struct {
	// Scale resizes the image by this factor before encoding. Zero or one
	// keeps the rendered size.
	Scale float64
}

// Convert implements Converter.
func (c EncodeConverter) Convert(rasterPath, outPath string) error {
	f, err := os.Open(filepath.Clean(rasterPath))
	if err != nil {
		return fmt.Errorf("image: open raster: %w", err)
	}
	img, err := DecodePPM(f)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("image: %s: %w", rasterPath, err)
	}
	if c.Scale > 0 && c.Scale != 1 {
		b := img.Bounds()
		w := uint(float64(b.Dx())*c.Scale + 0.5)
		h := uint(float64(b.Dy())*c.Scale + 0.5)
		return Save(outPath, resize.Resize(max(w, 1), max(h, 1), img, resize.NearestNeighbor))
	}
	return Save(outPath, img)
}

// ExecConverter runs an external program as
//
//	<Program> <Args...> <rasterPath> <outPath>
//
// ImageMagick's convert is the usual choice.
type ExecConverter struct {
	Program string
	Args    []string
}

// Convert implements Converter.
func (c ExecConverter) Convert(rasterPath, outPath string) error {
	args := append(append([]string(nil), c.Args...), rasterPath, outPath)
	return run(c.Program, args)
}

// run executes a program and folds its stderr into the error.
func run(program string, args []string) error {
	cmd := exec.Command(program, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("image: %s: %w: %s", program, err, msg)
		}
		return fmt.Errorf("image: %s: %w", program, err)
	}
	return nil
}
