// Package recording tracks the nesting of iterative computations and
// labels recorded events with iteration coordinates.
//
// An IterationStack holds one frame per currently open iterative context.
// A Recording scope pushes a frame while an iteration runs and, on close,
// dispatches the requester's recording callback unless an internal
// bookkeeping frame on the stack suppresses it. Coordinate renders the
// stack into a single deterministic string, such as
// "rank0:root|6|mda|45", that identifies where in the nested hierarchy a
// recorded event occurred.
package recording
