package mdl

import (
	"log/slog"

	mdlimage "github.com/gogpu/mdl/internal/image"
	"github.com/gogpu/mdl/internal/parallel"
)

// Option configures a Scene.
//
// Example:
//
//	err := mdl.RunScript(f,
//		mdl.WithSize(250, 250),
//		mdl.WithWorkers(4),
//		mdl.WithOutputDir("out"))
type Option func(*options)

// options holds the configuration of a Scene.
type options struct {
	width, height int
	workers       int
	queueSize     int
	outputDir     string
	format        string
	converter     Converter
	assembler     Assembler
	viewer        Viewer
	ambient       RGB
	lights        []Light
	lineColor     [3]uint8
	keepFrames    bool
	logger        *slog.Logger
}

// Defaults.
const (
	DefaultWidth     = 500
	DefaultHeight    = 500
	DefaultWorkers   = parallel.DefaultWorkers
	DefaultOutputDir = "anim"
	DefaultFormat    = "png"
)

// defaultOptions returns the default scene options.
func defaultOptions() options {
	return options{
		width:      DefaultWidth,
		height:     DefaultHeight,
		workers:    DefaultWorkers,
		outputDir:  DefaultOutputDir,
		format:     DefaultFormat,
		converter:  mdlimage.EncodeConverter{},
		assembler:  mdlimage.GIFAssembler{Delay: 3},
		ambient:    RGB{50, 50, 50},
		lights:     []Light{{Color: RGB{200, 200, 200}, Direction: Pt(0.5, -1, -1)}},
		lineColor:  [3]uint8{255, 255, 255},
		keepFrames: true,
	}
}

// WithSize sets the screen size in pixels. Non-positive values are ignored.
func WithSize(width, height int) Option {
	return func(o *options) {
		if width > 0 && height > 0 {
			o.width, o.height = width, height
		}
	}
}

// WithWorkers sets the number of goroutines persisting frames.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithQueueSize bounds the number of finished frames waiting to be
// persisted. Rendering blocks while the queue is full. The default is twice
// the number of workers.
func WithQueueSize(n int) Option {
	return func(o *options) {
		o.queueSize = n
	}
}

// WithOutputDir sets the directory animation frames are written to.
func WithOutputDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.outputDir = dir
		}
	}
}

// WithFormat sets the file extension of animation frames, such as "png" or
// "bmp".
func WithFormat(ext string) Option {
	return func(o *options) {
		if ext != "" {
			o.format = ext
		}
	}
}

// WithConverter sets how raw rasters become image files.
// The default encodes in process.
func WithConverter(c Converter) Option {
	return func(o *options) {
		if c != nil {
			o.converter = c
		}
	}
}

// WithAssembler sets how animation frames are combined after rendering.
// A nil Assembler leaves the frames as separate files.
func WithAssembler(a Assembler) Option {
	return func(o *options) {
		o.assembler = a
	}
}

// WithViewer sets where display commands send the current frame.
// Without a viewer display commands are ignored.
func WithViewer(v Viewer) Option {
	return func(o *options) {
		o.viewer = v
	}
}

// WithAmbient sets the ambient light.
func WithAmbient(c RGB) Option {
	return func(o *options) {
		o.ambient = c
	}
}

// WithLights replaces the default directional lights. Scripts that declare
// their own lights ignore these.
func WithLights(lights ...Light) Option {
	return func(o *options) {
		o.lights = append([]Light(nil), lights...)
	}
}

// WithLineColor sets the initial colour of lines and curves.
func WithLineColor(r, g, b uint8) Option {
	return func(o *options) {
		o.lineColor = [3]uint8{r, g, b}
	}
}

// WithKeepFrames controls whether animation frames are kept once they have
// been assembled. The default keeps them.
func WithKeepFrames(keep bool) Option {
	return func(o *options) {
		o.keepFrames = keep
	}
}

// WithLogger sets the logger of one scene. The default is the package
// logger, see SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
