package datarecording

import (
	"os"
	"strings"
	"time"
)

// RunInfo is one metadata property of a recorded run.
type RunInfo struct {
	Property string
	Value    string
}

// RunLogger records metadata about the run that produced a recording
// database: start time, command line, working directory, and end time.
type RunLogger struct {
	backend DataRecorder
	entries []RunInfo
}

// NewRunLogger creates the logger and its table.
func NewRunLogger(backend DataRecorder) *RunLogger {
	backend.CreateTable(RunInfoTable, RunInfo{})

	return &RunLogger{backend: backend}
}

// Start captures the start time, the command line, and the working
// directory of the current run.
func (l *RunLogger) Start() {
	l.entries = append(l.entries, RunInfo{
		Property: "Start Time",
		Value:    time.Now().Format(timestampLayout),
	})

	l.entries = append(l.entries, RunInfo{
		Property: "Command",
		Value:    strings.Join(os.Args, " "),
	})

	wd, err := os.Getwd()
	if err == nil {
		l.entries = append(l.entries, RunInfo{
			Property: "Working Directory",
			Value:    wd,
		})
	}
}

// End writes the collected entries along with the end time and flushes the
// backend.
func (l *RunLogger) End() {
	for _, entry := range l.entries {
		l.backend.InsertData(RunInfoTable, entry)
	}

	l.backend.InsertData(RunInfoTable, RunInfo{
		Property: "End Time",
		Value:    time.Now().Format(timestampLayout),
	})

	l.entries = nil

	l.backend.Flush()
}
