package mdl

import (
	"errors"
	"testing"
)

func TestTransformStackInitial(t *testing.T) {
	s := NewTransformStack()
	if s.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", s.Depth())
	}
	if !s.Top().IsIdentity() {
		t.Errorf("Top() = %v, want identity", s.Top())
	}
}

func TestTransformStackPushPop(t *testing.T) {
	s := NewTransformStack()
	s.Transform(Translate(1, 2, 3))
	before := s.Top()

	s.Push()
	if s.Top() != before {
		t.Errorf("Push did not duplicate the top")
	}
	s.Transform(RotateZ(1))
	s.Transform(Scale(2, 2, 2))
	if s.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", s.Depth())
	}

	if err := s.Pop(); err != nil {
		t.Fatalf("Pop() error = %v", err)
	}
	if s.Top() != before {
		t.Errorf("Top() after push/pop = %v, want %v", s.Top(), before)
	}
}

func TestTransformStackUnderflow(t *testing.T) {
	s := NewTransformStack()
	s.Transform(Translate(5, 0, 0))
	top := s.Top()

	err := s.Pop()
	if !errors.Is(err, ErrStackUnderflow) {
		t.Fatalf("Pop() error = %v, want ErrStackUnderflow", err)
	}
	if s.Depth() != 1 || s.Top() != top {
		t.Error("failed Pop changed the stack")
	}
}

func TestTransformStackLocalFrame(t *testing.T) {
	// Transforms compose in the local frame: move, then rotate, then a point
	// is rotated about the moved origin.
	s := NewTransformStack()
	s.Transform(Translate(100, 0, 0))
	s.Transform(RotateZ(0.5 * 3.141592653589793))

	got := s.Top().Apply(Pt(10, 0, 0))
	if !vertexNear(got, Pt(100, 10, 0)) {
		t.Errorf("Apply = %v, want (100, 10, 0)", got)
	}
}

func TestTransformStackSetTop(t *testing.T) {
	s := NewTransformStack()
	s.Push()
	s.Transform(Scale(3, 3, 3))
	s.SetTop(Identity())
	if !s.Top().IsIdentity() {
		t.Error("SetTop(Identity()) did not reset the top")
	}
	if s.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", s.Depth())
	}
}
