package mdl

import "errors"

// Script execution errors. Every one of them stops the run; frames that were
// already handed to the pipeline are still persisted.
var (
	// ErrStackUnderflow is returned when a script pops the base coordinate
	// system.
	ErrStackUnderflow = errors.New("mdl: transform stack underflow")

	// ErrUnknownKnob is returned when a command references a knob that no
	// vary or set command defines.
	ErrUnknownKnob = errors.New("mdl: unknown knob")

	// ErrOverlappingVary is returned when two vary commands for the same knob
	// have overlapping frame windows.
	ErrOverlappingVary = errors.New("mdl: overlapping vary windows")

	// ErrVaryWithoutFrames is returned when a script uses vary but never sets
	// a frame count greater than one.
	ErrVaryWithoutFrames = errors.New("mdl: vary used without frames")

	// ErrInvalidFrames is returned for non-positive frame counts and vary
	// windows outside the frame range.
	ErrInvalidFrames = errors.New("mdl: invalid frame range")

	// ErrMissingName is returned for save and basename commands without a
	// name.
	ErrMissingName = errors.New("mdl: missing name")
)
