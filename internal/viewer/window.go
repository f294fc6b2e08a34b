package viewer

import (
	"errors"
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrWindowClosed is returned by Show once the window has been closed.
var ErrWindowClosed = errors.New("viewer: window closed")

// Window shows the most recent frame in a desktop window. Show may be
// called from any goroutine. Run must be called from the main goroutine and
// blocks until the window closes.
type Window struct {
	title string
	scale int

	mu      sync.Mutex
	pending *image.RGBA
	closed  bool
	quit    bool

	width, height int
	img           *ebiten.Image
}

// NewWindow creates a window viewer for frames of the given size.
// The window opens on Run.
func NewWindow(title string, width, height, scale int) *Window {
	return &Window{
		title:  title,
		scale:  max(scale, 1),
		width:  width,
		height: height,
	}
}

// Show implements Viewer. A frame not yet drawn is replaced.
func (w *Window) Show(img *image.RGBA) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWindowClosed
	}
	w.pending = img
	return nil
}

// Close asks a running window to close at its next tick.
func (w *Window) Close() {
	w.mu.Lock()
	w.quit = true
	w.mu.Unlock()
}

// take returns the pending frame, if any, and whether the window should quit.
func (w *Window) take() (*image.RGBA, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	img := w.pending
	w.pending = nil
	return img, w.quit
}

// Run opens the window and blocks until it is closed.
func (w *Window) Run() error {
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowSize(w.width*w.scale, w.height*w.scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(30)

	err := ebiten.RunGame(&windowGame{w: w})

	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type windowGame struct {
	w     *Window
	frame *image.RGBA
}

func (g *windowGame) Update() error {
	img, quit := g.w.take()
	if quit || ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if img != nil {
		g.frame = img
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	if g.frame == nil {
		return
	}
	w, h := g.frame.Bounds().Dx(), g.frame.Bounds().Dy()
	if g.w.img == nil || g.w.img.Bounds().Dx() != w || g.w.img.Bounds().Dy() != h {
		if g.w.img != nil {
			g.w.img.Deallocate()
		}
		g.w.img = ebiten.NewImage(w, h)
		g.w.width, g.w.height = w, h
	}
	g.w.img.WritePixels(g.frame.Pix)
	screen.DrawImage(g.w.img, nil)
}

func (g *windowGame) Layout(_, _ int) (int, int) {
	return g.w.width, g.w.height
}
