// Package image persists rendered screens: the raw raster format, encoding
// to common image formats, conversion through external tools and assembly
// of animation frames.
package image

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrBadRaster is returned when a raw raster file is malformed.
	ErrBadRaster = errors.New("image: malformed raster")
)

// Format names accepted by Encode.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpg"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
	FormatGIF  = "gif"
	FormatPPM  = "ppm"
)

// FormatOf returns the format implied by a file name's extension.
func FormatOf(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "gif":
		return FormatGIF, nil
	case "ppm":
		return FormatPPM, nil
	default:
		return "", fmt.Errorf("%q: %w", path, ErrUnsupportedFormat)
	}
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format string) error {
	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatGIF:
		err = gif.Encode(w, img, nil)
	case FormatPPM:
		err = encodePPM(w, img)
	default:
		return fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
	if err != nil {
		return fmt.Errorf("image: encode %s: %w", format, err)
	}
	return nil
}

// Save encodes img into path, choosing the format from the extension.
func Save(path string, img image.Image) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}
	if err := Encode(f, img, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Load decodes an image file, choosing the decoder from the extension.
func Load(path string) (image.Image, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var img image.Image
	switch format {
	case FormatPNG:
		img, err = png.Decode(f)
	case FormatJPEG:
		img, err = jpeg.Decode(f)
	case FormatBMP:
		img, err = bmp.Decode(f)
	case FormatTIFF:
		img, err = tiff.Decode(f)
	case FormatGIF:
		img, err = gif.Decode(f)
	case FormatPPM:
		img, err = DecodePPM(f)
	}
	if err != nil {
		return nil, fmt.Errorf("image: decode %s: %w", path, err)
	}
	return img, nil
}
