package mdl

import (
	"fmt"
	"maps"
	"slices"
)

// Variation interpolates a knob linearly from Min at frame First to Max at
// frame Last.
type Variation struct {
	Knob        string
	First, Last int
	Min, Max    float64
}

// Contains reports whether frame lies in [First, Last].
func (v Variation) Contains(frame int) bool {
	return frame >= v.First && frame <= v.Last
}

// ValueAt returns the interpolated value at frame. A single-frame window
// yields Max.
func (v Variation) ValueAt(frame int) float64 {
	if v.Last == v.First {
		return v.Max
	}
	progress := float64(frame-v.First) / float64(v.Last-v.First)
	return v.Min + (v.Max-v.Min)*progress
}

// AnimationClock computes knob values per frame. It is immutable once built
// and safe for concurrent use.
type AnimationClock struct {
	frames     int
	variations []Variation
	known      map[string]struct{}
}

// NewAnimationClock validates the variations against the frame count.
//
// Windows must satisfy 0 <= First <= Last < frames, and two variations of the
// same knob must not share a frame.
func NewAnimationClock(frames int, variations []Variation) (*AnimationClock, error) {
	if frames < 1 {
		return nil, fmt.Errorf("%d frames: %w", frames, ErrInvalidFrames)
	}
	c := &AnimationClock{
		frames:     frames,
		variations: slices.Clone(variations),
		known:      make(map[string]struct{}, len(variations)),
	}
	byKnob := make(map[string][]Variation)
	for _, v := range variations {
		if v.First < 0 || v.Last < v.First || v.Last >= frames {
			return nil, fmt.Errorf("vary %s %d..%d with %d frames: %w",
				v.Knob, v.First, v.Last, frames, ErrInvalidFrames)
		}
		for _, o := range byKnob[v.Knob] {
			if v.First <= o.Last && o.First <= v.Last {
				return nil, fmt.Errorf("knob %s: frames %d..%d and %d..%d: %w",
					v.Knob, o.First, o.Last, v.First, v.Last, ErrOverlappingVary)
			}
		}
		byKnob[v.Knob] = append(byKnob[v.Knob], v)
		c.known[v.Knob] = struct{}{}
	}
	return c, nil
}

// Declare marks knobs as known without giving them a variation, as a set
// command does. Declared knobs read as 1 until set. Declare must not be
// called once the clock is in use.
func (c *AnimationClock) Declare(names ...string) {
	for _, n := range names {
		c.known[n] = struct{}{}
	}
}

// Frames returns the total number of frames.
func (c *AnimationClock) Frames() int { return c.frames }

// Knows reports whether a variation or Declare defines the knob.
func (c *AnimationClock) Knows(name string) bool {
	_, ok := c.known[name]
	return ok
}

// Knobs returns the names of all known knobs, sorted.
func (c *AnimationClock) Knobs() []string {
	return slices.Sorted(maps.Keys(c.known))
}

// KnobsForFrame returns the value of every knob with a variation active at
// frame. Knobs without an active variation are absent.
func (c *AnimationClock) KnobsForFrame(frame int) map[string]float64 {
	out := make(map[string]float64)
	for _, v := range c.variations {
		if v.Contains(frame) {
			out[v.Knob] = v.ValueAt(frame)
		}
	}
	return out
}

// KnobTable holds the knob values of one frame while its commands run. Set
// and SetAll change values for the rest of the frame only; the next frame
// starts again from the clock.
type KnobTable struct {
	clock  *AnimationClock
	values map[string]float64
}

// NewKnobTable creates the table for frame.
func (c *AnimationClock) NewKnobTable(frame int) *KnobTable {
	return &KnobTable{clock: c, values: c.KnobsForFrame(frame)}
}

// Value returns the knob's value. A knob that is declared but not active in
// this frame is 1, which applies the transform it scales unchanged. An
// empty name also yields 1. Undeclared knobs return ErrUnknownKnob.
func (t *KnobTable) Value(name string) (float64, error) {
	if name == "" {
		return 1, nil
	}
	if v, ok := t.values[name]; ok {
		return v, nil
	}
	if t.clock.Knows(name) {
		return 1, nil
	}
	return 0, fmt.Errorf("knob %q: %w", name, ErrUnknownKnob)
}

// Set overrides one knob. The knob need not be declared by a variation.
func (t *KnobTable) Set(name string, v float64) {
	t.values[name] = v
}

// SetAll sets every known knob: those declared by variations and those
// set earlier in this frame.
func (t *KnobTable) SetAll(v float64) {
	for name := range t.clock.known {
		t.values[name] = v
	}
	for name := range t.values {
		t.values[name] = v
	}
}
