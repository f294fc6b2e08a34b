package mdl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/mdl/internal/cache"
	mdlimage "github.com/gogpu/mdl/internal/image"
	"github.com/gogpu/mdl/internal/parallel"
	"github.com/gogpu/mdl/internal/raster"
	"github.com/gogpu/mdl/internal/shape"
	"github.com/gogpu/mdl/script"
)

// Scene executes a script. Geometry is drawn as soon as its command runs;
// no scene graph is kept. A script with a frame count above one is an
// animation: it runs once per frame and every frame is written to the
// output directory, then the frames are assembled.
//
// Rendering happens on the goroutine calling Run. Finished frames are
// persisted by a pool of workers.
type Scene struct {
	cmds []script.Command
	opts options
	log  *slog.Logger

	meshes *cache.Cache[meshKey, []r3.Vec]

	clock     *AnimationClock
	animated  bool
	basename  string
	pad       int
	ownLights bool
	saveDirs  []string
}

// NewScene validates the script structure: frame count, vary windows and
// names. Nothing is drawn or written.
func NewScene(cmds []script.Command, opts ...Option) (*Scene, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = Logger()
	}
	s := &Scene{
		cmds:   cmds,
		opts:   o,
		log:    log,
		meshes: cache.New[meshKey, []r3.Vec](meshCacheSize),
	}
	if err := s.plan(); err != nil {
		return nil, err
	}
	return s, nil
}

// plan scans the commands that shape the run as a whole.
func (s *Scene) plan() error {
	frames := 1
	var varies []Variation
	var setKnobs []string
	for i, c := range s.cmds {
		switch c := c.(type) {
		case script.Frames:
			if c.N < 1 {
				return fmt.Errorf("command %d: frames %d: %w", i+1, c.N, ErrInvalidFrames)
			}
			frames = c.N
		case script.Basename:
			if c.Name == "" {
				return fmt.Errorf("command %d: basename: %w", i+1, ErrMissingName)
			}
			s.basename = c.Name
		case script.Save:
			if c.Name == "" {
				return fmt.Errorf("command %d: save: %w", i+1, ErrMissingName)
			}
			if dir := filepath.Dir(c.Name); !slices.Contains(s.saveDirs, dir) {
				s.saveDirs = append(s.saveDirs, dir)
			}
		case script.Vary:
			varies = append(varies, Variation{
				Knob: c.Knob, First: c.First, Last: c.Last, Min: c.Min, Max: c.Max,
			})
		case script.Set:
			setKnobs = append(setKnobs, c.Knob)
		case script.Light:
			s.ownLights = true
		}
	}
	if len(varies) > 0 && frames < 2 {
		return fmt.Errorf("%d vary commands: %w", len(varies), ErrVaryWithoutFrames)
	}

	clock, err := NewAnimationClock(frames, varies)
	if err != nil {
		return err
	}
	clock.Declare(setKnobs...)
	s.clock = clock
	s.animated = frames > 1
	s.pad = len(strconv.Itoa(frames))
	if s.animated && s.basename == "" {
		s.basename = "frame"
		s.log.Warn("animation without basename", "basename", s.basename)
	}
	return nil
}

// Frames returns the number of frames the script renders.
func (s *Scene) Frames() int { return s.clock.Frames() }

// Animated reports whether the script renders more than one frame.
func (s *Scene) Animated() bool { return s.animated }

// Clock returns the animation clock built from the script's vary commands.
func (s *Scene) Clock() *AnimationClock { return s.clock }

// FramePath returns the file an animation frame is written to:
// <dir>/<basename><index>.<ext>, the index zero-padded to the number of
// digits of the frame count.
func (s *Scene) FramePath(i int) string {
	name := fmt.Sprintf("%s%0*d.%s", s.basename, s.pad, i, s.opts.format)
	return filepath.Join(s.opts.outputDir, name)
}

// SavePath returns the file a save command writes in the given frame. A
// name without an extension gets the configured format. In an animation
// the frame index is inserted before the extension, padded as in
// FramePath, so that every frame keeps its own file.
func (s *Scene) SavePath(name string, frame int) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if ext == "" {
		ext = "." + s.opts.format
	}
	if s.animated {
		stem = fmt.Sprintf("%s%0*d", stem, s.pad, frame)
	}
	return stem + ext
}

// AnimationPath returns the file the assembled animation is written to.
func (s *Scene) AnimationPath() string {
	return filepath.Join(s.opts.outputDir, s.basename+".gif")
}

// Run renders every frame. A failing command stops rendering; frames
// already finished are still written. Run returns the command error joined
// with any persistence and assembly errors.
func (s *Scene) Run() error {
	o := s.opts
	if s.animated {
		if err := os.MkdirAll(o.outputDir, 0o755); err != nil {
			return fmt.Errorf("mdl: create output directory: %w", err)
		}
	}

	pool := raster.NewScreenPool(o.workers + 1)
	pipe := parallel.NewFramePipeline(mdlimage.NewFrameWriter(o.converter, s.log), parallel.Config{
		Workers:   o.workers,
		QueueSize: o.queueSize,
		Release:   pool.Put,
		Logger:    s.log,
	})
	s.log.Info("rendering", "frames", s.Frames(), "commands", len(s.cmds),
		"width", o.width, "height", o.height, "workers", pipe.Workers())

	ctx := context.Background()
	zbuf := raster.NewZBuffer(o.width, o.height)
	written := make([]string, 0, s.Frames())
	var runErr error
	for i := range s.Frames() {
		zbuf.Clear()
		f := &frame{
			index: i,
			stack: NewTransformStack(),
			knobs: s.clock.NewKnobTable(i),
			r:     raster.NewRasterizer(pool.Get(o.width, o.height), zbuf, s.lighting()),
			line:  raster.Color{R: o.lineColor[0], G: o.lineColor[1], B: o.lineColor[2]},
			pool:  pool,
			pipe:  pipe,
		}
		if err := s.render(ctx, f); err != nil {
			runErr = fmt.Errorf("frame %d: %w", i, err)
			break
		}
		if !s.animated {
			pool.Put(f.r.Screen())
			continue
		}
		path := s.FramePath(i)
		if err := pipe.Submit(ctx, parallel.Frame{Path: path, Screen: f.r.Screen()}); err != nil {
			runErr = fmt.Errorf("frame %d: %w", i, err)
			break
		}
		written = append(written, path)
		s.log.Debug("frame rendered", "frame", i, "path", path)
	}

	persistErr := pipe.Wait()
	var assembleErr error
	if s.animated && runErr == nil && persistErr == nil && o.assembler != nil {
		assembleErr = s.assemble(written)
	}
	s.removeTemps()

	err := errors.Join(runErr, persistErr, assembleErr)
	if err == nil {
		st := s.meshes.Stats()
		s.log.Info("done", "frames", len(written), "meshes", st.Len, "mesh_hit_rate", st.HitRate())
	}
	return err
}

// assemble combines the frames and, unless they are to be kept, removes
// them.
func (s *Scene) assemble(frames []string) error {
	out := s.AnimationPath()
	if err := s.opts.assembler.Assemble(frames, out); err != nil {
		return fmt.Errorf("mdl: assemble %s: %w", out, err)
	}
	s.log.Info("animation assembled", "path", out, "frames", len(frames))
	if s.opts.keepFrames {
		return nil
	}
	var errs []error
	for _, p := range frames {
		if err := os.Remove(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// removeTemps deletes raw rasters a failed conversion may have left behind.
func (s *Scene) removeTemps() {
	dirs := s.saveDirs
	if s.animated && !slices.Contains(dirs, s.opts.outputDir) {
		dirs = append(slices.Clip(dirs), s.opts.outputDir)
	}
	for _, dir := range dirs {
		n, err := mdlimage.RemoveTemps(dir)
		if err != nil {
			s.log.Warn("remove temporary rasters", "dir", dir, "err", err)
		} else if n > 0 {
			s.log.Debug("removed temporary rasters", "dir", dir, "count", n)
		}
	}
}

// lighting returns the lighting a frame starts with. Scripts declaring
// lights start with none of the configured ones.
func (s *Scene) lighting() raster.Lighting {
	l := raster.Lighting{Ambient: s.opts.ambient.raster()}
	if s.ownLights {
		return l
	}
	for _, light := range s.opts.lights {
		l.Lights = append(l.Lights, raster.DirectionalLight{
			Color:     light.Color.raster(),
			Direction: toVec(light.Direction),
		})
	}
	return l
}

// Run executes parsed commands with the given options. See Scene.
func Run(cmds []script.Command, opts ...Option) error {
	s, err := NewScene(cmds, opts...)
	if err != nil {
		return err
	}
	return s.Run()
}

// RunScript parses a script and runs it.
func RunScript(r io.Reader, opts ...Option) error {
	cmds, err := script.Parse(r)
	if err != nil {
		return err
	}
	return Run(cmds, opts...)
}

// frame is the state of one pass over the script.
type frame struct {
	index int
	stack *TransformStack
	knobs *KnobTable
	r     *raster.Rasterizer
	line  raster.Color
	pool  *raster.ScreenPool
	pipe  *parallel.FramePipeline
}

// render runs every command against f.
func (s *Scene) render(ctx context.Context, f *frame) error {
	for i, c := range s.cmds {
		if err := s.exec(ctx, f, c); err != nil {
			return fmt.Errorf("command %d (%T): %w", i+1, c, err)
		}
	}
	return nil
}

// exec runs one command.
func (s *Scene) exec(ctx context.Context, f *frame, c script.Command) error {
	switch c := c.(type) {
	case script.Push:
		f.stack.Push()
	case script.Pop:
		return f.stack.Pop()
	case script.Ident:
		f.stack.SetTop(Identity())

	case script.Move:
		k, err := f.knobs.Value(c.Knob)
		if err != nil {
			return err
		}
		f.stack.Transform(Translate(c.X*k, c.Y*k, c.Z*k))
	case script.Scale:
		k, err := f.knobs.Value(c.Knob)
		if err != nil {
			return err
		}
		f.stack.Transform(Scale(c.X*k, c.Y*k, c.Z*k))
	case script.Rotate:
		k, err := f.knobs.Value(c.Knob)
		if err != nil {
			return err
		}
		m, err := rotation(c.Axis, c.Degrees*k*math.Pi/180)
		if err != nil {
			return err
		}
		f.stack.Transform(m)

	case script.Line:
		f.edges([]r3.Vec{{X: c.X0, Y: c.Y0, Z: c.Z0}, {X: c.X1, Y: c.Y1, Z: c.Z1}})
	case script.Circle:
		f.edges(shape.Circle(c.X, c.Y, c.Z, c.R))
	case script.Bezier:
		f.edges(shape.Bezier(c.X0, c.Y0, c.X1, c.Y1, c.X2, c.Y2, c.X3, c.Y3))
	case script.Hermite:
		f.edges(shape.Hermite(c.X0, c.Y0, c.X1, c.Y1, c.RX0, c.RY0, c.RX1, c.RY1))
	case script.Box:
		f.triangles(s.mesh(meshKey{'b', [6]float64{c.X, c.Y, c.Z, c.W, c.H, c.D}}, func() []r3.Vec {
			return shape.Box(c.X, c.Y, c.Z, c.W, c.H, c.D)
		}))
	case script.Sphere:
		f.triangles(s.mesh(meshKey{'s', [6]float64{c.X, c.Y, c.Z, c.R}}, func() []r3.Vec {
			return shape.Sphere(c.X, c.Y, c.Z, c.R)
		}))
	case script.Torus:
		f.triangles(s.mesh(meshKey{'t', [6]float64{c.X, c.Y, c.Z, c.R1, c.R2}}, func() []r3.Vec {
			return shape.Torus(c.X, c.Y, c.Z, c.R1, c.R2)
		}))

	case script.Clear:
		f.r.Clear()
	case script.Color:
		f.line = raster.Color{R: c.R, G: c.G, B: c.B}
	case script.Ambient:
		l := f.r.Lighting()
		l.Ambient = raster.RGB{R: c.R, G: c.G, B: c.B}
		f.r.SetLighting(l)
	case script.Light:
		l := f.r.Lighting()
		l.Lights = append(l.Lights, raster.DirectionalLight{
			Color:     raster.RGB{R: c.R, G: c.G, B: c.B},
			Direction: r3.Vec{X: c.X, Y: c.Y, Z: c.Z},
		})
		f.r.SetLighting(l)

	case script.Save:
		screen := f.r.Screen()
		snap := f.pool.Get(screen.Width(), screen.Height())
		copy(snap.Pix(), screen.Pix())
		path := s.SavePath(c.Name, f.index)
		if err := f.pipe.Submit(ctx, parallel.Frame{Path: path, Screen: snap}); err != nil {
			return err
		}
		s.log.Debug("save", "frame", f.index, "path", path)
	case script.Display:
		if s.opts.viewer == nil {
			s.log.Debug("display without viewer", "frame", f.index)
			return nil
		}
		if err := s.opts.viewer.Show(f.r.Screen().Image()); err != nil {
			return fmt.Errorf("mdl: display: %w", err)
		}

	case script.Set:
		f.knobs.Set(c.Knob, c.Value)
	case script.SetKnobs:
		f.knobs.SetAll(c.Value)
	case script.Frames, script.Basename, script.Vary:
		// Applied by plan.

	default:
		panic(fmt.Sprintf("mdl: unhandled command %T", c))
	}
	return nil
}

// meshCacheSize bounds the number of tessellated solids kept between frames.
const meshCacheSize = 64

// meshKey identifies a solid by kind and generator arguments.
type meshKey struct {
	kind byte
	args [6]float64
}

// mesh returns the cached triangles of a solid, generating them on first
// use. The result is shared and must not be modified.
func (s *Scene) mesh(key meshKey, generate func() []r3.Vec) []r3.Vec {
	return s.meshes.GetOrCreate(key, generate)
}

// rotation returns the rotation by angle radians about axis.
func rotation(axis script.Axis, angle float64) (Matrix, error) {
	switch axis {
	case script.AxisX:
		return RotateX(angle), nil
	case script.AxisY:
		return RotateY(angle), nil
	case script.AxisZ:
		return RotateZ(angle), nil
	default:
		return Matrix{}, fmt.Errorf("mdl: rotation about %v", axis)
	}
}

// transformed loads generated points into a geometry buffer and maps it
// into the current coordinate system.
func (f *frame) transformed(pts []r3.Vec) *GeometryBuffer {
	g := NewGeometryBuffer(len(pts))
	for _, p := range pts {
		g.Append(Pt(p.X, p.Y, p.Z))
	}
	g.Transform(f.stack.Top())
	return g
}

// edges draws an edge list in the current line colour.
func (f *frame) edges(pts []r3.Vec) {
	vs := f.transformed(pts).Vertices()
	for i := 0; i+1 < len(vs); i += 2 {
		p, q := vs[i], vs[i+1]
		f.r.DrawLine(int(p.X()), int(p.Y()), int(q.X()), int(q.Y()), f.line)
	}
}

// triangles draws a triangle list, flat shaded.
func (f *frame) triangles(pts []r3.Vec) {
	vs := f.transformed(pts).Vertices()
	for i := 0; i+2 < len(vs); i += 3 {
		f.r.DrawTriangle(toVec(vs[i]), toVec(vs[i+1]), toVec(vs[i+2]))
	}
}

func toVec(v Vertex) r3.Vec {
	return r3.Vec{X: v.X(), Y: v.Y(), Z: v.Z()}
}
