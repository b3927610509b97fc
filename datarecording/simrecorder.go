package datarecording

import (
	"github.com/ackslab/rck/sim"
)

// The tables written by a SimRecorder.
const (
	DispatchTable  = "dispatch"
	CrossingTable  = "crossing"
	NarrativeTable = "narrative"
)

// DispatchEntry is one dispatched turn.
type DispatchEntry struct {
	RunID     string
	Time      float64
	Subsystem string
	Handle    int
	Name      string
	Interrupt bool
}

// CrossingEntry is one periodic notification.
type CrossingEntry struct {
	RunID  string
	Time   float64
	Rounds int
	Turns  int
	Hours  int
	Days   int
	Weeks  int
	Months int
}

// NarrativeEntry is one line of the action log.
type NarrativeEntry struct {
	RunID string
	Seq   int
	Time  float64
	Line  string
}

// Clock tells the simulated time.
type Clock interface {
	Now() sim.VTimeInSec
}

// SimRecorder is a scheduler hook that records the dispatched turns and the
// periodic notifications. It also records narrative lines given to
// RecordLine.
type SimRecorder struct {
	recorder DataRecorder
	registry *sim.Registry
	clock    Clock
	runID    string
	lines    int
}

// NewSimRecorder creates the tables of the recorder. The registry is used
// for entity names and may be nil.
func NewSimRecorder(
	recorder DataRecorder,
	runID string,
	registry *sim.Registry,
	clock Clock,
) *SimRecorder {
	r := &SimRecorder{
		recorder: recorder,
		registry: registry,
		clock:    clock,
		runID:    runID,
	}

	recorder.CreateTable(DispatchTable, DispatchEntry{})
	recorder.CreateTable(CrossingTable, CrossingEntry{})
	recorder.CreateTable(NarrativeTable, NarrativeEntry{})

	return r
}

// Func implements sim.Hook.
func (r *SimRecorder) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case sim.HookPosAfterEvent:
		evt, ok := ctx.Item.(sim.ScheduledEvent)
		if !ok {
			return
		}

		interrupt, _ := ctx.Detail.(bool)

		r.recorder.InsertData(DispatchTable, DispatchEntry{
			RunID:     r.runID,
			Time:      float64(ctx.Now),
			Subsystem: evt.Tag.String(),
			Handle:    int(evt.Handle),
			Name:      r.name(evt.Key()),
			Interrupt: interrupt,
		})
	case sim.HookPosPeriodic:
		c, ok := ctx.Item.(sim.Crossing)
		if !ok {
			return
		}

		r.recorder.InsertData(CrossingTable, CrossingEntry{
			RunID:  r.runID,
			Time:   float64(ctx.Now),
			Rounds: c.Rounds,
			Turns:  c.Turns,
			Hours:  c.Hours,
			Days:   c.Days,
			Weeks:  c.Weeks,
			Months: c.Months,
		})
	}
}

// RecordLine records a narrative line at the current simulated time.
func (r *SimRecorder) RecordLine(line string) {
	r.lines++

	now := 0.0
	if r.clock != nil {
		now = float64(r.clock.Now())
	}

	r.recorder.InsertData(NarrativeTable, NarrativeEntry{
		RunID: r.runID,
		Seq:   r.lines,
		Time:  now,
		Line:  line,
	})
}

func (r *SimRecorder) name(key sim.EventKey) string {
	if r.registry == nil {
		return key.String()
	}

	return r.registry.NameOf(key)
}
