package mdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariationValueAt(t *testing.T) {
	v := Variation{Knob: "k", First: 10, Last: 20, Min: 0, Max: 100}
	tests := []struct {
		frame int
		want  float64
	}{
		{10, 0},
		{15, 50},
		{20, 100},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, v.ValueAt(tt.frame), 1e-12, "frame %d", tt.frame)
	}
	assert.True(t, v.Contains(10))
	assert.True(t, v.Contains(20))
	assert.False(t, v.Contains(9))
	assert.False(t, v.Contains(21))

	single := Variation{Knob: "k", First: 3, Last: 3, Min: 2, Max: 7}
	assert.Equal(t, 7.0, single.ValueAt(3))
}

func TestNewAnimationClockValidation(t *testing.T) {
	tests := []struct {
		name    string
		frames  int
		vars    []Variation
		wantErr error
	}{
		{"zero frames", 0, nil, ErrInvalidFrames},
		{"last past end", 10, []Variation{{Knob: "a", First: 0, Last: 10}}, ErrInvalidFrames},
		{"negative first", 10, []Variation{{Knob: "a", First: -1, Last: 3}}, ErrInvalidFrames},
		{"reversed", 10, []Variation{{Knob: "a", First: 5, Last: 3}}, ErrInvalidFrames},
		{"overlap", 10, []Variation{
			{Knob: "a", First: 0, Last: 5},
			{Knob: "a", First: 5, Last: 9},
		}, ErrOverlappingVary},
		{"adjacent windows", 10, []Variation{
			{Knob: "a", First: 0, Last: 4},
			{Knob: "a", First: 5, Last: 9},
		}, nil},
		{"different knobs overlap", 10, []Variation{
			{Knob: "a", First: 0, Last: 9},
			{Knob: "b", First: 0, Last: 9},
		}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAnimationClock(tt.frames, tt.vars)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestKnobsForFrame(t *testing.T) {
	c, err := NewAnimationClock(50, []Variation{
		{Knob: "spin", First: 0, Last: 49, Min: 0, Max: 1},
		{Knob: "grow", First: 10, Last: 19, Min: 1, Max: 2},
		{Knob: "grow", First: 20, Last: 29, Min: 2, Max: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"spin": 0}, c.KnobsForFrame(0))
	assert.InDelta(t, 1.0, c.KnobsForFrame(49)["spin"], 1e-12)

	k := c.KnobsForFrame(10)
	assert.Equal(t, 1.0, k["grow"], "min at first frame")
	k = c.KnobsForFrame(19)
	assert.Equal(t, 2.0, k["grow"], "max at last frame")
	k = c.KnobsForFrame(29)
	assert.Equal(t, 1.0, k["grow"])
	_, active := c.KnobsForFrame(30)["grow"]
	assert.False(t, active)

	// Pure: same frame, same answer, independent maps.
	a, b := c.KnobsForFrame(25), c.KnobsForFrame(25)
	assert.Equal(t, a, b)
	a["spin"] = 99
	assert.NotEqual(t, 99.0, c.KnobsForFrame(25)["spin"])

	assert.Equal(t, []string{"grow", "spin"}, c.Knobs())
	assert.Equal(t, 50, c.Frames())
}

func TestKnobTable(t *testing.T) {
	c, err := NewAnimationClock(10, []Variation{{Knob: "a", First: 5, Last: 9, Min: 0, Max: 10}})
	require.NoError(t, err)
	c.Declare("b")

	early := c.NewKnobTable(0)
	v, err := early.Value("a")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v, "declared but inactive")

	v, err = early.Value("")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	v, err = early.Value("b")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	_, err = early.Value("nope")
	assert.ErrorIs(t, err, ErrUnknownKnob)

	late := c.NewKnobTable(7)
	v, err = late.Value("a")
	require.NoError(t, err)
	assert.InDelta(t, 5.0, v, 1e-12)

	late.Set("b", 3)
	late.Set("fresh", 4)
	v, _ = late.Value("b")
	assert.Equal(t, 3.0, v)
	v, err = late.Value("fresh")
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)

	late.SetAll(0.5)
	for _, name := range []string{"a", "b", "fresh"} {
		v, err := late.Value(name)
		require.NoError(t, err)
		assert.Equal(t, 0.5, v, name)
	}

	// Changes stay in the table; the next frame starts from the clock.
	next := c.NewKnobTable(7)
	v, _ = next.Value("a")
	assert.InDelta(t, 5.0, v, 1e-12)
}
