package mdl

import (
	"log/slog"
	"sync/atomic"
)

// silent discards everything; its handler reports every level disabled, so
// log calls skip formatting.
var silent = slog.New(slog.DiscardHandler)

// current holds the package logger. Frame workers log through it while the
// caller may swap it, hence the atomic pointer.
var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(silent)
}

// SetLogger sets the logger scenes use unless WithLogger overrides it.
// Scenes hand it down to the frame pipeline and the frame writer. mdl is
// silent until SetLogger is called; nil makes it silent again.
//
// Levels:
//   - [slog.LevelDebug]: per-frame and per-command detail
//   - [slog.LevelInfo]: run lifecycle (rendering started, animation assembled)
//   - [slog.LevelWarn]: recovered problems (leftover temporary files)
//   - [slog.LevelError]: a frame that could not be written
//
// Example:
//
//	mdl.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the package logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return current.Load()
}
