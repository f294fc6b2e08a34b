package image

import (
	"bufio"
	"fmt"
	"image"
	"io"

	"github.com/gogpu/mdl/internal/raster"
)

// The raw raster format is binary PPM with the whole header on one line:
//
//	P6 <width> <height> 255\n
//
// followed by one R, G, B byte triple per pixel, rows from the top of the
// image down.

// WritePPM writes a screen in the raw raster format. The screen's bottom-up
// rows are flipped so the file starts with the top visual row.
func WritePPM(w io.Writer, s *raster.Screen) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6 %d %d 255\n", s.Width(), s.Height()); err != nil {
		return fmt.Errorf("image: write raster header: %w", err)
	}
	for k := range s.Height() {
		if _, err := bw.Write(s.RowTopDown(k)); err != nil {
			return fmt.Errorf("image: write raster: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("image: write raster: %w", err)
	}
	return nil
}

// encodePPM writes any image in the raw raster format.
func encodePPM(w io.Writer, img image.Image) error {
	b := img.Bounds()
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6 %d %d 255\n", b.Dx(), b.Dy()); err != nil {
		return err
	}
	row := make([]byte, 3*b.Dx())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			i := 3 * (x - b.Min.X)
			row[i], row[i+1], row[i+2] = byte(r>>8), byte(g>>8), byte(bl>>8)
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// DecodePPM reads a binary PPM image (P6, max value 255). The header may be
// on one line or spread over several, as other tools write it.
func DecodePPM(r io.Reader) (*image.RGBA, error) {
	br := bufio.NewReader(r)
	var magic string
	var w, h, maxv int
	if _, err := fmt.Fscan(br, &magic, &w, &h, &maxv); err != nil {
		return nil, fmt.Errorf("read header: %v: %w", err, ErrBadRaster)
	}
	if magic != "P6" || maxv != 255 || w <= 0 || h <= 0 {
		return nil, fmt.Errorf("header %s %d %d %d: %w", magic, w, h, maxv, ErrBadRaster)
	}
	// Exactly one white space byte separates the header from the data.
	if _, err := br.ReadByte(); err != nil {
		return nil, fmt.Errorf("read header: %v: %w", err, ErrBadRaster)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	row := make([]byte, 3*w)
	for y := range h {
		if _, err := io.ReadFull(br, row); err != nil {
			return nil, fmt.Errorf("row %d: %v: %w", y, err, ErrBadRaster)
		}
		dst := img.Pix[y*img.Stride:]
		for x := range w {
			dst[4*x] = row[3*x]
			dst[4*x+1] = row[3*x+1]
			dst[4*x+2] = row[3*x+2]
			dst[4*x+3] = 0xFF
		}
	}
	return img, nil
}
