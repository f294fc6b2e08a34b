package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"golang.org/x/text/cases"
)

// ErrSyntax is returned for malformed scripts. The wrapping error carries
// the line number.
var ErrSyntax = errors.New("script: syntax error")

// token is one word of a script and the line it came from.
type token struct {
	text string
	line int
}

// Parse reads a script and returns its commands in order.
//
// Words are separated by white space and may be quoted. "//" and "#" start a
// comment that runs to the end of the line. Arguments of a command may
// continue on the following lines. Move, scale and rotate accept an optional
// trailing knob name.
func Parse(r io.Reader) ([]Command, error) {
	toks, err := lex(r)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, fold: cases.Fold()}
	var cmds []Command
	for !p.done() {
		cmd, err := p.command()
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// ParseString parses a script held in a string.
func ParseString(s string) ([]Command, error) {
	return Parse(strings.NewReader(s))
}

func lex(r io.Reader) ([]token, error) {
	var toks []token
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.Index(text, "//"); i >= 0 {
			text = text[:i]
		}
		words, err := shlex.Split(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %v: %w", line, err, ErrSyntax)
		}
		for _, w := range words {
			toks = append(toks, token{text: w, line: line})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("script: read: %w", err)
	}
	return toks, nil
}

type parser struct {
	toks []token
	pos  int

	// fold normalises keywords and axis names so that "Box" and "BOX" parse
	// like "box". Knob names and file names are not folded. A Caser holds
	// state, so each parser has its own.
	fold cases.Caser
}

// parseFunc parses the arguments of one command; the keyword has already
// been consumed.
type parseFunc func(p *parser) (Command, error)

var keywords map[string]parseFunc

func init() {
	keywords = map[string]parseFunc{
		"push":     func(*parser) (Command, error) { return Push{}, nil },
		"pop":      func(*parser) (Command, error) { return Pop{}, nil },
		"ident":    func(*parser) (Command, error) { return Ident{}, nil },
		"clear":    func(*parser) (Command, error) { return Clear{}, nil },
		"display":  func(*parser) (Command, error) { return Display{}, nil },
		"move":     parseMove,
		"scale":    parseScale,
		"rotate":   parseRotate,
		"line":     parseLine,
		"circle":   parseCircle,
		"bezier":   parseBezier,
		"hermite":  parseHermite,
		"box":      parseBox,
		"sphere":   parseSphere,
		"torus":    parseTorus,
		"color":    parseColor,
		"ambient":  parseAmbient,
		"light":    parseLight,
		"save":     parseSave,
		"frames":   parseFrames,
		"basename": parseBasename,
		"vary":     parseVary,
		"set":      parseSet,
		"setknobs": parseSetKnobs,
	}
}

func (p *parser) isKeyword(s string) bool {
	_, ok := keywords[p.fold.String(s)]
	return ok
}

func (p *parser) done() bool { return p.pos >= len(p.toks) }

func (p *parser) lastLine() int {
	if len(p.toks) == 0 {
		return 0
	}
	if p.pos < len(p.toks) {
		return p.toks[p.pos].line
	}
	return p.toks[len(p.toks)-1].line
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s: %w", p.lastLine(), fmt.Sprintf(format, args...), ErrSyntax)
}

func (p *parser) command() (Command, error) {
	t := p.toks[p.pos]
	fn, ok := keywords[p.fold.String(t.text)]
	if !ok {
		return nil, p.errorf("unknown command %q", t.text)
	}
	p.pos++
	return fn(p)
}

func (p *parser) word(what string) (string, error) {
	if p.done() {
		return "", p.errorf("expected %s, found end of script", what)
	}
	t := p.toks[p.pos]
	p.pos++
	return t.text, nil
}

// numbers reads n floating-point arguments.
func (p *parser) numbers(n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		w, err := p.word("number")
		if err != nil {
			return nil, err
		}
		v, ok := number(w)
		if !ok {
			p.pos--
			return nil, p.errorf("expected number, found %q", w)
		}
		out[i] = v
	}
	return out, nil
}

func (p *parser) integer() (int, error) {
	w, err := p.word("integer")
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(w)
	if err != nil {
		p.pos--
		return 0, p.errorf("expected integer, found %q", w)
	}
	return v, nil
}

func (p *parser) name(what string) (string, error) {
	w, err := p.word(what)
	if err != nil {
		return "", err
	}
	if p.isKeyword(w) {
		p.pos--
		return "", p.errorf("expected %s, found command %q", what, w)
	}
	return w, nil
}

// optionalKnob consumes a trailing knob name if the next word is neither a
// number nor a command.
func (p *parser) optionalKnob() string {
	if p.done() {
		return ""
	}
	w := p.toks[p.pos].text
	if p.isKeyword(w) {
		return ""
	}
	if _, ok := number(w); ok {
		return ""
	}
	p.pos++
	return w
}

// number parses a finite decimal number. Words such as "inf" and "nan"
// are names, not numbers.
func number(w string) (float64, bool) {
	if !strings.ContainsAny(w, "0123456789") {
		return 0, false
	}
	v, err := strconv.ParseFloat(w, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func parseMove(p *parser) (Command, error) {
	v, err := p.numbers(3)
	if err != nil {
		return nil, err
	}
	return Move{X: v[0], Y: v[1], Z: v[2], Knob: p.optionalKnob()}, nil
}

func parseScale(p *parser) (Command, error) {
	v, err := p.numbers(3)
	if err != nil {
		return nil, err
	}
	return Scale{X: v[0], Y: v[1], Z: v[2], Knob: p.optionalKnob()}, nil
}

func parseRotate(p *parser) (Command, error) {
	w, err := p.word("axis")
	if err != nil {
		return nil, err
	}
	var axis Axis
	switch p.fold.String(w) {
	case "x":
		axis = AxisX
	case "y":
		axis = AxisY
	case "z":
		axis = AxisZ
	default:
		p.pos--
		return nil, p.errorf("expected x, y or z, found %q", w)
	}
	v, err := p.numbers(1)
	if err != nil {
		return nil, err
	}
	return Rotate{Axis: axis, Degrees: v[0], Knob: p.optionalKnob()}, nil
}

func parseLine(p *parser) (Command, error) {
	v, err := p.numbers(6)
	if err != nil {
		return nil, err
	}
	return Line{X0: v[0], Y0: v[1], Z0: v[2], X1: v[3], Y1: v[4], Z1: v[5]}, nil
}

func parseCircle(p *parser) (Command, error) {
	v, err := p.numbers(4)
	if err != nil {
		return nil, err
	}
	return Circle{X: v[0], Y: v[1], Z: v[2], R: v[3]}, nil
}

func parseBezier(p *parser) (Command, error) {
	v, err := p.numbers(8)
	if err != nil {
		return nil, err
	}
	return Bezier{X0: v[0], Y0: v[1], X1: v[2], Y1: v[3], X2: v[4], Y2: v[5], X3: v[6], Y3: v[7]}, nil
}

func parseHermite(p *parser) (Command, error) {
	v, err := p.numbers(8)
	if err != nil {
		return nil, err
	}
	return Hermite{X0: v[0], Y0: v[1], X1: v[2], Y1: v[3], RX0: v[4], RY0: v[5], RX1: v[6], RY1: v[7]}, nil
}

func parseBox(p *parser) (Command, error) {
	v, err := p.numbers(6)
	if err != nil {
		return nil, err
	}
	return Box{X: v[0], Y: v[1], Z: v[2], W: v[3], H: v[4], D: v[5]}, nil
}

func parseSphere(p *parser) (Command, error) {
	v, err := p.numbers(4)
	if err != nil {
		return nil, err
	}
	return Sphere{X: v[0], Y: v[1], Z: v[2], R: v[3]}, nil
}

func parseTorus(p *parser) (Command, error) {
	v, err := p.numbers(5)
	if err != nil {
		return nil, err
	}
	return Torus{X: v[0], Y: v[1], Z: v[2], R1: v[3], R2: v[4]}, nil
}

func parseColor(p *parser) (Command, error) {
	v, err := p.numbers(3)
	if err != nil {
		return nil, err
	}
	var c [3]uint8
	for i, x := range v {
		if x < 0 || x > 255 {
			return nil, p.errorf("color component %v out of range [0, 255]", x)
		}
		c[i] = uint8(x)
	}
	return Color{R: c[0], G: c[1], B: c[2]}, nil
}

func parseAmbient(p *parser) (Command, error) {
	v, err := p.numbers(3)
	if err != nil {
		return nil, err
	}
	return Ambient{R: v[0], G: v[1], B: v[2]}, nil
}

func parseLight(p *parser) (Command, error) {
	v, err := p.numbers(6)
	if err != nil {
		return nil, err
	}
	return Light{R: v[0], G: v[1], B: v[2], X: v[3], Y: v[4], Z: v[5]}, nil
}

func parseSave(p *parser) (Command, error) {
	name, err := p.name("file name")
	if err != nil {
		return nil, err
	}
	return Save{Name: name}, nil
}

func parseFrames(p *parser) (Command, error) {
	n, err := p.integer()
	if err != nil {
		return nil, err
	}
	return Frames{N: n}, nil
}

func parseBasename(p *parser) (Command, error) {
	name, err := p.name("base name")
	if err != nil {
		return nil, err
	}
	return Basename{Name: name}, nil
}

func parseVary(p *parser) (Command, error) {
	knob, err := p.name("knob name")
	if err != nil {
		return nil, err
	}
	first, err := p.integer()
	if err != nil {
		return nil, err
	}
	last, err := p.integer()
	if err != nil {
		return nil, err
	}
	v, err := p.numbers(2)
	if err != nil {
		return nil, err
	}
	return Vary{Knob: knob, First: first, Last: last, Min: v[0], Max: v[1]}, nil
}

func parseSet(p *parser) (Command, error) {
	knob, err := p.name("knob name")
	if err != nil {
		return nil, err
	}
	v, err := p.numbers(1)
	if err != nil {
		return nil, err
	}
	return Set{Knob: knob, Value: v[0]}, nil
}

func parseSetKnobs(p *parser) (Command, error) {
	v, err := p.numbers(1)
	if err != nil {
		return nil, err
	}
	return SetKnobs{Value: v[0]}, nil
}
