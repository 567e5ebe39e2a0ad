package recording

// Frame names that mark internal bookkeeping contexts. A scope that closes
// while any of these is anywhere on the stack does not fire its callback.
// An ancestor bookkeeping frame suppresses every descendant scope, not just
// the innermost one.
var suppressedFrameNames = []string{
	"_run_apply",
	"_compute_totals",
}

type scopeState int

const (
	scopeUnopened scopeState = iota
	scopeOpen
	scopeClosed
)

// A Recording is a one-shot guard around a single recorded iteration. Open
// pushes the scope's frame onto the stack; Close decides whether to fire
// the requester's recording callback, then pops the frame. The usual
// pattern is:
//
//	rec := recording.NewRecording(stack, "mda", iterCount, solver).Open()
//	defer rec.Close()
//
// Close pops the frame on every exit path, so the stack depth after the
// scope closes always equals the depth before it opened.
type Recording struct {
	// AbsError and RelError may be set by the caller while the scope is
	// open. They are consumed on Close for solver-kind requesters.
	AbsError float64
	RelError float64

	stack     *IterationStack
	name      string
	iterCount int
	requester Recordable
	isSolver  bool
	state     scopeState
}

// NewRecording creates a scope bound to the given stack and requester. The
// requester is borrowed, not owned. It is released again when the scope
// closes. Whether the requester has solver semantics is determined here,
// once, and fixed for the scope's lifetime.
func NewRecording(
	stack *IterationStack,
	name string,
	iterCount int,
	requester Recordable,
) *Recording {
	if stack == nil {
		panic("recording stack must not be nil")
	}

	if requester == nil {
		panic("recording requester must not be nil")
	}

	_, isSolver := requester.(SolverRecordable)

	return &Recording{
		stack:     stack,
		name:      name,
		iterCount: iterCount,
		requester: requester,
		isSolver:  isSolver,
	}
}

// Open pushes the scope's frame onto the stack. A scope can only be opened
// once. Open returns the scope so that it can be chained with a deferred
// Close.
func (r *Recording) Open() *Recording {
	if r.state != scopeUnopened {
		panic("recording scope opened twice")
	}

	r.state = scopeOpen
	r.stack.Push(r.name, r.iterCount)

	return r
}

// Close fires the requester's recording callback unless a bookkeeping
// frame suppresses it, releases the requester, and pops the scope's frame.
// The pop happens unconditionally. When the callback fails or panics, the
// failure surfaces only after the stack is rebalanced.
func (r *Recording) Close() error {
	if r.state != scopeOpen {
		panic("recording scope must be open to close")
	}

	defer func() {
		r.requester = nil
		r.state = scopeClosed
		r.stack.Pop()
	}()

	if r.suppressed() {
		return nil
	}

	if r.isSolver {
		return r.requester.(SolverRecordable).
			RecordSolverIteration(r.AbsError, r.RelError)
	}

	return r.requester.RecordIteration()
}

// suppressed scans the whole stack, ancestors included, for bookkeeping
// frame names.
func (r *Recording) suppressed() bool {
	for _, frame := range r.stack.frames {
		for _, name := range suppressedFrameNames {
			if frame.Name == name {
				return true
			}
		}
	}

	return false
}
