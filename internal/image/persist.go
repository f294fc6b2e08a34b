package image

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/mdl/internal/raster"
)

// tempPattern names raw raster files while they wait for conversion.
const tempPattern = ".mdl-*.ppm"

// FrameWriter persists screens: it writes the raw raster to a temporary file
// next to the destination, converts it, and removes the temporary file.
// It is safe for concurrent use as long as the Converter is.
type FrameWriter struct {
	Converter Converter
	Logger    *slog.Logger
}

// NewFrameWriter creates a FrameWriter. A nil converter encodes in process.
func NewFrameWriter(c Converter, logger *slog.Logger) *FrameWriter {
	if c == nil {
		c = EncodeConverter{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FrameWriter{Converter: c, Logger: logger}
}

// Persist writes s to outPath, creating the parent directory if needed.
func (w *FrameWriter) Persist(outPath string, s *raster.Screen) error {
	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("image: create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return fmt.Errorf("image: create raster: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			w.Logger.Warn("remove raster", "path", tmpPath, "err", err)
		}
	}()

	if err := WritePPM(tmp, s); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("image: close raster: %w", err)
	}
	if err := w.Converter.Convert(tmpPath, outPath); err != nil {
		return err
	}
	w.Logger.Debug("frame persisted", "path", outPath)
	return nil
}

// RemoveTemps deletes raw raster files left in dir, for example by a process
// that was killed mid-conversion. It returns the number removed.
func RemoveTemps(dir string) (int, error) {
	matches, err := filepath.Glob(filepath.Join(dir, tempPattern))
	if err != nil {
		return 0, fmt.Errorf("image: %w", err)
	}
	n := 0
	for _, m := range matches {
		if !strings.HasSuffix(m, ".ppm") {
			continue
		}
		if err := os.Remove(m); err != nil {
			return n, fmt.Errorf("image: remove %s: %w", m, err)
		}
		n++
	}
	return n, nil
}
