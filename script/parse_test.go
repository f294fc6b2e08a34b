package script

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommands(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Command
	}{
		{"stack", "push\npop\nident", []Command{Push{}, Pop{}, Ident{}}},
		{"move", "move 1 2 3", []Command{Move{X: 1, Y: 2, Z: 3}}},
		{"move with knob", "move 1 2 3 spin", []Command{Move{X: 1, Y: 2, Z: 3, Knob: "spin"}}},
		{"scale with knob", "scale 2 2 2 grow", []Command{Scale{X: 2, Y: 2, Z: 2, Knob: "grow"}}},
		{"rotate", "rotate y 90", []Command{Rotate{Axis: AxisY, Degrees: 90}}},
		{"rotate upper axis", "ROTATE Z -45 k", []Command{Rotate{Axis: AxisZ, Degrees: -45, Knob: "k"}}},
		{"line", "line 0 0 0 10 20 30", []Command{Line{X1: 10, Y1: 20, Z1: 30}}},
		{"box", "box 0 0 0 10 10 10", []Command{Box{W: 10, H: 10, D: 10}}},
		{"sphere", "sphere 250 250 0 100", []Command{Sphere{X: 250, Y: 250, R: 100}}},
		{"torus", "torus 1 2 3 4 5", []Command{Torus{X: 1, Y: 2, Z: 3, R1: 4, R2: 5}}},
		{"circle", "circle 1 2 3 4", []Command{Circle{X: 1, Y: 2, Z: 3, R: 4}}},
		{"bezier", "bezier 1 2 3 4 5 6 7 8", []Command{Bezier{X0: 1, Y0: 2, X1: 3, Y1: 4, X2: 5, Y2: 6, X3: 7, Y3: 8}}},
		{"hermite", "hermite 1 2 3 4 5 6 7 8", []Command{Hermite{X0: 1, Y0: 2, X1: 3, Y1: 4, RX0: 5, RY0: 6, RX1: 7, RY1: 8}}},
		{"color", "color 255 128 0", []Command{Color{R: 255, G: 128}}},
		{"lighting", "ambient 10 20 30\nlight 255 255 255 0 0 -1", []Command{
			Ambient{R: 10, G: 20, B: 30},
			Light{R: 255, G: 255, B: 255, Z: -1},
		}},
		{"save", "save out.png", []Command{Save{Name: "out.png"}}},
		{"quoted save", `save "my frame.png"`, []Command{Save{Name: "my frame.png"}}},
		{"animation", "frames 10\nbasename anim\nvary k 0 9 0 1", []Command{
			Frames{N: 10},
			Basename{Name: "anim"},
			Vary{Knob: "k", First: 0, Last: 9, Min: 0, Max: 1},
		}},
		{"knobs", "set k 0.5\nsetknobs 1", []Command{Set{Knob: "k", Value: 0.5}, SetKnobs{Value: 1}}},
		{"display clear", "display\nclear", []Command{Display{}, Clear{}}},
		{"args on next line", "line\n0 0 0\n1 1 1", []Command{Line{X1: 1, Y1: 1, Z1: 1}}},
		{"comments", "// header\npush # enter\n\n  pop // leave", []Command{Push{}, Pop{}}},
		{"knob named like a float word", "move 1 2 3 inf\nscale 1 1 1 NaN", []Command{
			Move{X: 1, Y: 2, Z: 3, Knob: "inf"},
			Scale{X: 1, Y: 1, Z: 1, Knob: "NaN"},
		}},
		{"knob is not a keyword", "move 1 1 1\npush", []Command{Move{X: 1, Y: 1, Z: 1}, Push{}}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantLine string
	}{
		{"unknown command", "push\nfrobnicate", "line 2"},
		{"missing number", "move 1 2", "line 1"},
		{"bad number", "box 0 0 zero 1 1 1", "line 1"},
		{"infinite number", "move 1 inf 3", "line 1"},
		{"overflowing number", "move 1 1e999 3", "line 1"},
		{"bad axis", "rotate w 90", "line 1"},
		{"missing save name", "save", "line 1"},
		{"keyword as name", "save\npush", "line 2"},
		{"bad frames", "frames ten", "line 1"},
		{"color range", "color 300 0 0", "line 1"},
		{"unterminated quote", `save "oops`, "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSyntax), "error %v should wrap ErrSyntax", err)
			assert.True(t, strings.Contains(err.Error(), tt.wantLine), "error %q should mention %s", err, tt.wantLine)
		})
	}
}

func TestAxisString(t *testing.T) {
	assert.Equal(t, "x", AxisX.String())
	assert.Equal(t, "y", AxisY.String())
	assert.Equal(t, "z", AxisZ.String())
	assert.Equal(t, "Axis(7)", Axis(7).String())
}
