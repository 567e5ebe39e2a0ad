package datarecording

import (
	"time"

	"github.com/solverlab/iterrec/rank"
	"github.com/solverlab/iterrec/recording"
)

// Standard table names of a recording database.
const (
	DriverIterationTable = "driver_iterations"
	SolverIterationTable = "solver_iterations"
	RunInfoTable         = "run_info"
)

const timestampLayout = "2006-01-02 15:04:05.000000000"

// IterationEntry is one recorded iteration of a plain requester.
type IterationEntry struct {
	Coordinate string
	Timestamp  string
}

// SolverIterationEntry is one recorded solver iteration.
type SolverIterationEntry struct {
	Coordinate string
	AbsError   float64
	RelError   float64
	Timestamp  string
}

// IterationRecorder persists driver iterations into the backend, each
// labeled with the coordinate of the stack it observes. It implements
// recording.Recordable.
type IterationRecorder struct {
	backend DataRecorder
	stack   *recording.IterationStack
	ranks   rank.Provider
}

// NewIterationRecorder creates the recorder and its table.
func NewIterationRecorder(
	backend DataRecorder,
	stack *recording.IterationStack,
	ranks rank.Provider,
) *IterationRecorder {
	if stack == nil {
		panic("iteration recorder stack must not be nil")
	}

	backend.CreateTable(DriverIterationTable, IterationEntry{})

	return &IterationRecorder{
		backend: backend,
		stack:   stack,
		ranks:   ranks,
	}
}

// RecordIteration writes one row labeled with the current coordinate.
func (r *IterationRecorder) RecordIteration() error {
	r.backend.InsertData(DriverIterationTable, IterationEntry{
		Coordinate: recording.Coordinate(r.stack, rank.RankOrZero(r.ranks)),
		Timestamp:  time.Now().Format(timestampLayout),
	})

	return nil
}

// SolverIterationRecorder persists solver iterations together with their
// error metrics. It implements recording.SolverRecordable.
type SolverIterationRecorder struct {
	backend DataRecorder
	stack   *recording.IterationStack
	ranks   rank.Provider
}

// NewSolverIterationRecorder creates the recorder and its table.
func NewSolverIterationRecorder(
	backend DataRecorder,
	stack *recording.IterationStack,
	ranks rank.Provider,
) *SolverIterationRecorder {
	if stack == nil {
		panic("solver iteration recorder stack must not be nil")
	}

	backend.CreateTable(SolverIterationTable, SolverIterationEntry{})

	return &SolverIterationRecorder{
		backend: backend,
		stack:   stack,
		ranks:   ranks,
	}
}

// RecordSolverIteration writes one row carrying the error metrics.
func (r *SolverIterationRecorder) RecordSolverIteration(
	absError, relError float64,
) error {
	r.backend.InsertData(SolverIterationTable, SolverIterationEntry{
		Coordinate: recording.Coordinate(r.stack, rank.RankOrZero(r.ranks)),
		AbsError:   absError,
		RelError:   relError,
		Timestamp:  time.Now().Format(timestampLayout),
	})

	return nil
}

// RecordIteration records an iteration with zero error metrics. Recording
// scopes prefer RecordSolverIteration for this recorder.
func (r *SolverIterationRecorder) RecordIteration() error {
	return r.RecordSolverIteration(0, 0)
}
