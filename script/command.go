// Package script defines the commands of the scene description language
// and parses script text into them.
//
// A script is a flat list of commands executed top to bottom. Commands form
// a closed set: every command type implements the unexported command method,
// so a type switch over Command in the executor can be checked for
// exhaustiveness by review and by the default branch panicking.
package script

import "fmt"

// Command is one instruction of a script.
type Command interface {
	command()
}

// Axis selects a coordinate axis for Rotate.
type Axis int

// Rotation axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Push enters a child coordinate system.
type Push struct{}

// Pop returns to the parent coordinate system.
type Pop struct{}

// Ident resets the current coordinate system to the identity.
type Ident struct{}

// Move translates the current coordinate system. If Knob is set the offset
// is multiplied by the knob's value for the frame.
type Move struct {
	X, Y, Z float64
	Knob    string
}

// Scale scales the current coordinate system. If Knob is set every factor
// is multiplied by the knob's value for the frame.
type Scale struct {
	X, Y, Z float64
	Knob    string
}

// Rotate rotates the current coordinate system about an axis. The angle is
// in degrees; if Knob is set it is multiplied by the knob's value.
type Rotate struct {
	Axis    Axis
	Degrees float64
	Knob    string
}

// Line draws an edge between two points.
type Line struct {
	X0, Y0, Z0 float64
	X1, Y1, Z1 float64
}

// Circle draws a circle of radius R centred at (X, Y, Z) in the xy plane.
type Circle struct {
	X, Y, Z, R float64
}

// Bezier draws a cubic Bezier curve in the z = 0 plane.
type Bezier struct {
	X0, Y0, X1, Y1, X2, Y2, X3, Y3 float64
}

// Hermite draws a cubic Hermite curve in the z = 0 plane from (X0, Y0) to
// (X1, Y1) with tangents (RX0, RY0) and (RX1, RY1).
type Hermite struct {
	X0, Y0, X1, Y1     float64
	RX0, RY0, RX1, RY1 float64
}

// Box draws an axis-aligned box spanning [X, X+W] × [Y, Y+H] × [Z, Z+D].
type Box struct {
	X, Y, Z, W, H, D float64
}

// Sphere draws a sphere of radius R centred at (X, Y, Z).
type Sphere struct {
	X, Y, Z, R float64
}

// Torus draws a torus centred at (X, Y, Z) around the y axis. R1 is the
// radius of the tube, R2 the distance from the centre to the tube.
type Torus struct {
	X, Y, Z, R1, R2 float64
}

// Clear clears the screen and the depth buffer of the current frame.
type Clear struct{}

// Color sets the colour used for lines and curves.
type Color struct {
	R, G, B uint8
}

// Ambient sets the ambient light colour.
type Ambient struct {
	R, G, B float64
}

// Light adds a directional light of colour (R, G, B) travelling in direction
// (X, Y, Z).
type Light struct {
	R, G, B float64
	X, Y, Z float64
}

// Save saves the current frame under Name. A Name without an extension
// gets the default image format; in an animation each frame's index is
// added to the name.
type Save struct {
	Name string
}

// Display shows the current frame in the viewer.
type Display struct{}

// Frames sets the number of frames of an animation.
type Frames struct {
	N int
}

// Basename sets the file name prefix of animation frames.
type Basename struct {
	Name string
}

// Vary interpolates Knob linearly from Min to Max over the frames
// First..Last (inclusive).
type Vary struct {
	Knob        string
	First, Last int
	Min, Max    float64
}

// Set sets Knob to Value for the rest of the frame.
type Set struct {
	Knob  string
	Value float64
}

// SetKnobs sets every known knob to Value for the rest of the frame.
type SetKnobs struct {
	Value float64
}

func (Push) command()     {}
func (Pop) command()      {}
func (Ident) command()    {}
func (Move) command()     {}
func (Scale) command()    {}
func (Rotate) command()   {}
func (Line) command()     {}
func (Circle) command()   {}
func (Bezier) command()   {}
func (Hermite) command()  {}
func (Box) command()      {}
func (Sphere) command()   {}
func (Torus) command()    {}
func (Clear) command()    {}
func (Color) command()    {}
func (Ambient) command()  {}
func (Light) command()    {}
func (Save) command()     {}
func (Display) command()  {}
func (Frames) command()   {}
func (Basename) command() {}
func (Vary) command()     {}
func (Set) command()      {}
func (SetKnobs) command() {}
