// Command mdl renders a scene script.
//
// Usage:
//
//	mdl [flags] [script]
//
// The script defaults to the file "script"; "-" reads standard input.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/shlex"

	"github.com/gogpu/mdl"
	mdlimage "github.com/gogpu/mdl/internal/image"
	"github.com/gogpu/mdl/internal/viewer"
)

// flags holds the command line settings.
type flags struct {
	width, height *int
	workers       *int
	queue         *int
	out, format   *string
	convert       *string
	assemble      *string
	scale         *float64
	view, display *string
	keep          *bool
	verbose       *bool
}

// defineFlags registers the command line flags on fs.
func defineFlags(fs *flag.FlagSet) *flags {
	return &flags{
		width:    fs.Int("width", mdl.DefaultWidth, "image width"),
		height:   fs.Int("height", mdl.DefaultHeight, "image height"),
		workers:  fs.Int("workers", mdl.DefaultWorkers, "goroutines writing frames"),
		queue:    fs.Int("queue", 0, "frames waiting to be written (default 2*workers)"),
		out:      fs.String("out", mdl.DefaultOutputDir, "directory for animation frames"),
		format:   fs.String("format", mdl.DefaultFormat, "file extension of animation frames"),
		convert:  fs.String("convert", "", `external converter, invoked as "<convert> <in.ppm> <out>" (default: encode in process)`),
		assemble: fs.String("assemble", "", `external animation assembler, e.g. "convert -delay 3" (default: encode GIF in process)`),
		scale:    fs.Float64("scale", 1, "resize saved images by this factor"),
		view:     fs.String("viewer", "window", "where display shows frames: window, exec or none"),
		display:  fs.String("display", "display -", "program for -viewer exec, reading a PPM on stdin"),
		keep:     fs.Bool("keep", true, "keep animation frames after assembly"),
		verbose:  fs.Bool("v", false, "log debug detail"),
	}
}

func main() {
	fl := defineFlags(flag.CommandLine)
	flag.Parse()

	level := slog.LevelInfo
	if *fl.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	mdl.SetLogger(logger)

	path := "script"
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	opts := []mdl.Option{
		mdl.WithSize(*fl.width, *fl.height),
		mdl.WithWorkers(*fl.workers),
		mdl.WithQueueSize(*fl.queue),
		mdl.WithOutputDir(*fl.out),
		mdl.WithFormat(*fl.format),
		mdl.WithKeepFrames(*fl.keep),
	}
	conv, err := converter(*fl.convert, *fl.scale)
	if err != nil {
		fatal(logger, err)
	}
	opts = append(opts, mdl.WithConverter(conv))
	if *fl.assemble != "" {
		prog, args, err := command(*fl.assemble)
		if err != nil {
			fatal(logger, err)
		}
		opts = append(opts, mdl.WithAssembler(mdlimage.ExecAssembler{Program: prog, Args: args}))
	}

	switch *fl.view {
	case "window":
		err = runWindowed(path, *fl.width, *fl.height, opts)
	case "exec":
		prog, args, perr := command(*fl.display)
		if perr != nil {
			fatal(logger, perr)
		}
		err = run(path, append(opts, mdl.WithViewer(viewer.Exec{Program: prog, Args: args})))
	case "none":
		err = run(path, opts)
	default:
		err = fmt.Errorf("unknown viewer %q", *fl.view)
	}
	if err != nil {
		fatal(logger, err)
	}
}

// run executes the script at path.
func run(path string, opts []mdl.Option) error {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	return mdl.RunScript(r, opts...)
}

// runWindowed renders on a separate goroutine while the window, which must
// own the main goroutine, shows displayed frames. The window stays open
// after rendering until the user closes it.
func runWindowed(path string, width, height int, opts []mdl.Option) error {
	win := viewer.NewWindow("mdl: "+path, width, height, 1)
	done := make(chan error, 1)
	go func() {
		done <- run(path, append(opts, mdl.WithViewer(win)))
	}()

	winErr := win.Run()
	renderErr := <-done
	if errors.Is(renderErr, viewer.ErrWindowClosed) {
		renderErr = nil
	}
	return errors.Join(renderErr, winErr)
}

// converter builds the converter selected by the flags.
func converter(program string, scale float64) (mdl.Converter, error) {
	if program == "" {
		return mdlimage.EncodeConverter{Scale: scale}, nil
	}
	prog, args, err := command(program)
	if err != nil {
		return nil, err
	}
	return mdlimage.ExecConverter{Program: prog, Args: args}, nil
}

// command splits a shell-like command line into program and arguments.
func command(s string) (string, []string, error) {
	words, err := shlex.Split(s)
	if err != nil {
		return "", nil, fmt.Errorf("command %q: %w", s, err)
	}
	if len(words) == 0 {
		return "", nil, fmt.Errorf("empty command")
	}
	return words[0], words[1:], nil
}

func fatal(logger *slog.Logger, err error) {
	logger.Error("mdl failed", "err", err)
	os.Exit(1)
}
