package datarecording

import (
	"os"
	"strings"
	"time"

	"github.com/rs/xid"
)

// ExecInfo is one property of a program execution.
type ExecInfo struct {
	Property string
	Value    string
}

// ExecTable is the table execution properties are recorded in.
const ExecTable = "exec_info"

const timeLayout = "2006-01-02 15:04:05.000000000"

// ExecRecorder records how and when the program ran.
type ExecRecorder struct {
	recorder DataRecorder
	runID    string
	entries  []ExecInfo
}

// NewExecRecorder creates the execution table in the recorder and gives the
// run a new ID.
func NewExecRecorder(recorder DataRecorder) *ExecRecorder {
	e := &ExecRecorder{
		recorder: recorder,
		runID:    xid.New().String(),
	}

	recorder.CreateTable(ExecTable, ExecInfo{})

	return e
}

// RunID identifies the run in every table.
func (e *ExecRecorder) RunID() string {
	return e.runID
}

// Start notes the start time, the command line and the working directory.
func (e *ExecRecorder) Start() {
	e.entries = append(e.entries,
		ExecInfo{"Run ID", e.runID},
		ExecInfo{"Start Time", time.Now().Format(timeLayout)},
		ExecInfo{"Command", strings.Join(os.Args, " ")},
	)

	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	e.entries = append(e.entries, ExecInfo{"Working Directory", cwd})
}

// Note adds a property of the run, such as the seed.
func (e *ExecRecorder) Note(property, value string) {
	e.entries = append(e.entries, ExecInfo{property, value})
}

// End writes the properties along with the exit time.
func (e *ExecRecorder) End() {
	for _, entry := range e.entries {
		e.recorder.InsertData(ExecTable, entry)
	}

	e.recorder.InsertData(ExecTable,
		ExecInfo{"End Time", time.Now().Format(timeLayout)})

	e.entries = nil

	e.recorder.Flush()
}
