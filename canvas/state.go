package canvas

import "fmt"

// state is the saved/restored portion of canvas drawing state (spec.md §3
// "Canvas state": "{affine transform, stroke color, fill color, clip rect
// + enabled flag, global alpha, line width, feather, image binding,
// alpha-test threshold, blend mode}").
type state struct {
	transform   Matrix
	clip        Rect
	clipOn      bool
	fillColor   [4]float32
	strokeColor [4]float32
	strokeWidth float64
	blend       BlendMode

	// globalAlpha multiplies every draw's output alpha, independent of the
	// per-vertex feather alpha.
	globalAlpha float32
	// feather is the antialiasing band width in local units; FillResults
	// and StrokeResults default to 1 device pixel when unset (feather <=
	// 0), and a positive value replaces that default (spec.md §3's
	// "feather" state field). A zero or negative value cannot disable the
	// band; it selects the default.
	feather float64
	// imageBinding is the fill style's bound image (spec.md §4.2 "Style":
	// "fill style with image binding"), consumed by
	// SDFFillImageRectRounded. Nil means no image is bound.
	imageBinding *Image
	// alphaTestThreshold is the minimum alpha a fragment must clear to
	// survive BlendAlphaTest.
	alphaTestThreshold float32
}

func defaultState() state {
	return state{
		transform:   Identity(),
		fillColor:   [4]float32{1, 1, 1, 1},
		strokeColor: [4]float32{1, 1, 1, 1},
		strokeWidth: 1,
		blend:       BlendSourceAlphaAll,
		globalAlpha: 1,
	}
}

// stateStack is a fixed-depth save/restore stack (spec.md §6 "max_states").
// Depth is bounded at construction time; Save past the bound is a caller
// error, matching the ADK's "no hidden growth" allocator philosophy.
type stateStack struct {
	stack []state
	max   int
}

func newStateStack(max int, initial state) *stateStack {
	if max < 1 {
		max = 1
	}
	s := &stateStack{max: max}
	s.stack = make([]state, 1, max)
	s.stack[0] = initial
	return s
}

// Top returns the current (top-of-stack) state by value.
func (s *stateStack) Top() state { return s.stack[len(s.stack)-1] }

// Save pushes a copy of the current state. Returns an error if the stack
// is already at MaxStates.
func (s *stateStack) Save() error {
	if len(s.stack) >= s.max {
		return fmt.Errorf("canvas: state stack overflow (max %d)", s.max)
	}
	s.stack = append(s.stack, s.Top())
	return nil
}

// Restore pops the current state, returning to the previously saved one.
// Restoring past the base state is a no-op, matching the teacher's
// tolerant save/restore discipline in painter.go.
func (s *stateStack) Restore() {
	if len(s.stack) > 1 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

// Depth returns the current stack depth (1 = base state only).
func (s *stateStack) Depth() int { return len(s.stack) }

// mutate applies fn to the top state in place.
func (s *stateStack) mutate(fn func(*state)) {
	fn(&s.stack[len(s.stack)-1])
}
