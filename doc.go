// Package mdl renders scene scripts into images and animations.
//
// # Overview
//
// A script is a flat list of commands (see package script): transforms that
// change the current coordinate system, geometry that is drawn as soon as it
// appears, and output commands that save or display the current frame.
// There is no scene graph; every solid is transformed by the top of the
// transform stack and rasterized immediately.
//
// # Quick Start
//
//	f, _ := os.Open("robot.mdl")
//	defer f.Close()
//	err := mdl.RunScript(f, mdl.WithSize(500, 500))
//
// # Coordinate System
//
//   - Origin (0,0) at the bottom-left of the image
//   - X increases right, Y increases up
//   - Z points toward the viewer; larger z is closer
//   - Rotation angles in scripts are in degrees
//
// Transform commands right-multiply the top of the stack, so each one acts
// in the coordinate system built by the commands before it.
//
// # Rendering
//
// Lines and curves are drawn with Bresenham's algorithm. Solids are
// triangle meshes, back-face culled, scan converted against a depth buffer
// and flat shaded with ambient plus directional lights.
//
// # Animation
//
// A script with "frames N" (N > 1) runs once per frame. "vary" commands
// interpolate knobs linearly across frame windows, and move, scale and
// rotate may name a knob that scales their amount. Frames are written to
// the output directory as <basename><index> with the index zero-padded,
// then assembled into <basename>.gif.
//
// Rendering runs on the caller's goroutine. Finished frames are handed
// over a bounded queue to a pool of workers that write them, so encoding
// overlaps with drawing the next frame.
//
// # Logging
//
// The package logs through log/slog. It is silent by default; see
// SetLogger.
package mdl
