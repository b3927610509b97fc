package roster

import (
	"fmt"

	"github.com/ackslab/rck/sim"
)

// Camp is the subsystem of the party's bases. Every base acts once per day
// and lets the resting characters recover.
type Camp struct {
	world *World
	names []string
}

// Establish creates a base whose first day ends one day from now.
func (cp *Camp) Establish(name string) sim.EntityHandle {
	h := sim.EntityHandle(len(cp.names))
	cp.names = append(cp.names, name)

	cp.world.scheduler.Reschedule(h, sim.TagBase, sim.PeriodLength(sim.PeriodDay))

	return h
}

// EntityName implements sim.EntityNamer.
func (cp *Camp) EntityName(h sim.EntityHandle) string {
	if !h.Valid() || int(h) >= len(cp.names) {
		return sim.EventKey{Handle: h, Tag: sim.TagBase}.String()
	}

	return cp.names[h]
}

// TurnHandler implements sim.Subsystem. Characters on bed rest heal 1d3
// hit points and one day of recovery. A base always interrupts so that
// the operator sees every day pass.
func (cp *Camp) TurnHandler(h sim.EntityHandle, now sim.VTimeInSec) bool {
	if !h.Valid() || int(h) >= len(cp.names) {
		return false
	}

	w := cp.world
	day := sim.PeriodLength(sim.PeriodDay)

	for _, member := range w.Party.Members() {
		c, found := w.Characters.Get(member)
		if !found || !c.Active || !c.BedRest {
			continue
		}

		c.Conditions.Reduce(ConditionRecovering, day)

		healed := w.roller.Roll(1, 3, 0)
		c.HitPoints += healed
		if c.HitPoints > c.MaxHitPoints {
			c.HitPoints = c.MaxHitPoints
		}

		w.narrator.AddActionLog(fmt.Sprintf("%s rests at %s.", c.Name, cp.names[h]))
	}

	w.scheduler.Reschedule(h, sim.TagBase, now+day)

	return true
}

// TargetHandler implements sim.Subsystem.
func (cp *Camp) TargetHandler(sim.EntityHandle, sim.ReturnCode) bool {
	return true
}

// PeriodicHandler implements sim.Subsystem. Bases only act on their own
// turns.
func (cp *Camp) PeriodicHandler(sim.Crossing) {}
