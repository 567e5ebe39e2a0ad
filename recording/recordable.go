package recording

// A Recordable is an object that wants its iterations recorded.
type Recordable interface {
	// RecordIteration records one completed iteration of the requester.
	RecordIteration() error
}

// A SolverRecordable is a Recordable that carries solver error metrics.
// Recording scopes deliver the absolute and relative error of the
// iteration to solver-kind requesters instead of calling RecordIteration.
type SolverRecordable interface {
	Recordable

	// RecordSolverIteration records one completed solver iteration
	// together with its error metrics.
	RecordSolverIteration(absError, relError float64) error
}
