package mdl

import "fmt"

// TransformStack is a stack of coordinate systems. It is never empty: it
// starts with a single identity matrix, and Pop refuses to remove the last
// element.
//
// Push enters a child coordinate system by duplicating the top; Pop returns
// to the parent.
type TransformStack struct {
	stack []Matrix
}

// NewTransformStack creates a stack holding only the identity matrix.
func NewTransformStack() *TransformStack {
	s := &TransformStack{stack: make([]Matrix, 1, 8)}
	s.stack[0] = Identity()
	return s
}

// Top returns a copy of the current coordinate system.
func (s *TransformStack) Top() Matrix {
	return s.stack[len(s.stack)-1]
}

// Depth returns the number of matrices on the stack (at least 1).
func (s *TransformStack) Depth() int {
	return len(s.stack)
}

// Push duplicates the top of the stack.
func (s *TransformStack) Push() {
	s.stack = append(s.stack, s.Top())
}

// Pop removes the top of the stack. Popping the base coordinate system
// returns ErrStackUnderflow and leaves the stack unchanged.
func (s *TransformStack) Pop() error {
	if len(s.stack) <= 1 {
		return fmt.Errorf("pop at depth %d: %w", len(s.stack), ErrStackUnderflow)
	}
	s.stack = s.stack[:len(s.stack)-1]
	return nil
}

// Transform right-multiplies the top by m (top = top * m), so m acts in the
// current local coordinate system.
func (s *TransformStack) Transform(m Matrix) {
	top := len(s.stack) - 1
	s.stack[top] = s.stack[top].Multiply(m)
}

// SetTop replaces the top of the stack.
func (s *TransformStack) SetTop(m Matrix) {
	s.stack[len(s.stack)-1] = m
}
