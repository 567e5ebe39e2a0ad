package recording

import (
	"fmt"
	"io"
	"strings"
)

// A Frame is one level of nested iterative context. Frames are immutable
// once pushed and are only removed by LIFO pop.
type Frame struct {
	Name      string
	IterCount int
}

// An IterationStack tracks the recording scopes that are currently open in
// one logical thread of execution, outermost first. The stack carries no
// internal locking. Each logical thread of execution should own its own
// stack instead of sharing one behind a mutex.
type IterationStack struct {
	frames []Frame
	prefix string
}

// NewStack creates an empty IterationStack.
func NewStack() *IterationStack {
	return &IterationStack{}
}

// Push appends a frame at the innermost position. Duplicated names are
// allowed, as re-entrant solvers commonly repeat them.
func (s *IterationStack) Push(name string, iterCount int) {
	s.frames = append(s.frames, Frame{Name: name, IterCount: iterCount})
}

// Pop removes the innermost frame. Popping an empty stack means the scopes
// were not balanced and panics.
func (s *IterationStack) Pop() {
	if len(s.frames) == 0 {
		panic("pop on empty iteration stack")
	}

	s.frames = s.frames[:len(s.frames)-1]
}

// Depth returns the number of open frames.
func (s *IterationStack) Depth() int {
	return len(s.frames)
}

// Frames returns a copy of the open frames, outermost first.
func (s *IterationStack) Frames() []Frame {
	frames := make([]Frame, len(s.frames))
	copy(frames, s.frames)

	return frames
}

// Reset clears the frames and the prefix, returning the stack to its
// initial state. It can be called at any time, including while scopes are
// open. The caller is responsible for the resulting inconsistency.
func (s *IterationStack) Reset() {
	s.frames = nil
	s.prefix = ""
}

// SetPrefix sets the prefix that is prepended to every coordinate formatted
// from this stack. An empty string means no prefix.
func (s *IterationStack) SetPrefix(prefix string) {
	s.prefix = prefix
}

// Prefix returns the current prefix.
func (s *IterationStack) Prefix() string {
	return s.prefix
}

// Dump writes the open frames to w, innermost first. Used for manual
// debugging only.
func (s *IterationStack) Dump(w io.Writer) {
	fmt.Fprintln(w)

	for i := len(s.frames) - 1; i >= 0; i-- {
		fmt.Fprintln(w, "^^^", s.frames[i].Name, s.frames[i].IterCount)
	}

	fmt.Fprintln(w, strings.Repeat("^", 60))
}
