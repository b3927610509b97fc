package roster

import (
	"github.com/ackslab/rck/combat"
	"github.com/ackslab/rck/sim"
)

// Character is a player character or companion.
type Character struct {
	Name        string
	Progression string
	Level       int

	ArmourClass  int
	HitPoints    int
	MaxHitPoints int

	// AttackThrow is the d20 target before armour class. Lower is better.
	AttackThrow int
	DamageBonus int
	Weapon      combat.Weapon

	// Speed is the movement rate. See World.MovementTime.
	Speed float64

	Position   combat.Point
	Conditions Conditions
	Behaviour  Behaviour

	// BedRest is true for characters resting at camp.
	BedRest bool

	Active bool
}

// Characters is the subsystem of player characters.
type Characters struct {
	world *World
	list  []*Character
}

// Add puts a new character into the world and schedules its first turn.
func (cs *Characters) Add(c Character) sim.EntityHandle {
	h := sim.EntityHandle(len(cs.list))

	c.Active = true
	if c.Conditions == nil {
		c.Conditions = make(Conditions)
	}

	cs.list = append(cs.list, &c)
	cs.world.Grid.Place(characterRef(h), c.Position, c.Position)
	cs.world.scheduler.Register(h, sim.TagCharacter)

	return h
}

// Get returns the character of the handle.
func (cs *Characters) Get(h sim.EntityHandle) (*Character, bool) {
	if !h.Valid() || int(h) >= len(cs.list) {
		return nil, false
	}

	return cs.list[h], true
}

// Len returns the number of characters ever added.
func (cs *Characters) Len() int {
	return len(cs.list)
}

// EntityName implements sim.EntityNamer.
func (cs *Characters) EntityName(h sim.EntityHandle) string {
	c, found := cs.Get(h)
	if !found {
		return characterRef(h).String()
	}

	return c.Name
}

// TurnHandler implements sim.Subsystem. The operated character interrupts
// the advance and is left for the operator to reschedule. A companion is
// not rescheduled if the queue was cleared during its action.
func (cs *Characters) TurnHandler(h sim.EntityHandle, now sim.VTimeInSec) bool {
	c, found := cs.Get(h)
	if !found || !c.Active {
		return false
	}

	if cs.world.operated(h) {
		return true
	}

	w := cs.world
	ref := characterRef(h)
	self := &character{world: w, handle: h, c: c}
	generation := w.scheduler.Generation()

	pickNew := false
	var wait sim.VTimeInSec

	switch c.Behaviour {
	case BehaviourUnset:
		pickNew = true
	case BehaviourIdle:
		wait = w.idleWait()
		c.Behaviour = BehaviourUnset
	case BehaviourWander:
		wait = w.wander(self, c.Speed)
		if _, _, seen := w.nearestEnemy(ref, c.Position); seen {
			pickNew = true
		}
	case BehaviourHunt:
		var hunting bool
		wait, hunting = w.hunt(ref, self, c.Speed)
		pickNew = !hunting
	case BehaviourUnconscious:
		if !c.Conditions.Has(ConditionUnconscious) {
			pickNew = true
		}
	}

	if w.scheduler.Generation() == generation {
		if wait == 0 {
			wait = w.MovementTime(c.Speed)
		}
		w.scheduler.Reschedule(h, sim.TagCharacter, now+wait)
	}

	if pickNew {
		c.Behaviour = cs.selectBehaviour(ref, c)
		w.narrator.AddActionLog(c.Name + " sets behaviour:" + c.Behaviour.String() + ".")
	}

	return false
}

func (cs *Characters) selectBehaviour(ref combat.Ref, c *Character) Behaviour {
	if c.Conditions.Has(ConditionUnconscious) {
		return BehaviourUnconscious
	}

	if _, _, found := cs.world.nearestEnemy(ref, c.Position); found {
		return BehaviourHunt
	}

	return BehaviourWander
}

// TargetHandler implements sim.Subsystem. Characters have no suspended
// actions of their own.
func (cs *Characters) TargetHandler(sim.EntityHandle, sim.ReturnCode) bool {
	return true
}

// PeriodicHandler implements sim.Subsystem. It lets conditions wear off. A
// character whose Dying condition runs out dies.
func (cs *Characters) PeriodicHandler(crossing sim.Crossing) {
	elapsed := sim.VTimeInSec(crossing.Rounds) * sim.PeriodLength(sim.PeriodRound)

	for i, c := range cs.list {
		if !c.Active {
			continue
		}

		for _, name := range c.Conditions.Decay(elapsed) {
			if name == ConditionDying {
				cs.Kill(sim.EntityHandle(i))
			}
		}
	}
}

// Move steps the character into a free cell. It returns false if the cell
// is taken or off the grid.
func (cs *Characters) Move(h sim.EntityHandle, to combat.Point) bool {
	c, found := cs.Get(h)
	if !found || !c.Active || !cs.world.Grid.Free(to) {
		return false
	}

	cs.world.Grid.Place(characterRef(h), c.Position, to)
	c.Position = to

	return true
}

// Kill removes a character from the world for good.
func (cs *Characters) Kill(h sim.EntityHandle) {
	c, found := cs.Get(h)
	if !found || !c.Active {
		return
	}

	c.Active = false
	cs.world.Grid.Leave(characterRef(h), c.Position)
	cs.world.Party.Remove(h)
	cs.world.scheduler.Deregister(h, sim.TagCharacter)
	cs.world.narrator.AddActionLog(c.Name + " dies.")
}

func (cs *Characters) capable(h sim.EntityHandle) bool {
	c, found := cs.Get(h)
	return found && c.Active && !c.Conditions.Has(ConditionUnconscious)
}

func (cs *Characters) activeRefs() []combat.Ref {
	var refs []combat.Ref
	for i, c := range cs.list {
		if c.Active {
			refs = append(refs, characterRef(sim.EntityHandle(i)))
		}
	}

	return refs
}

func (cs *Characters) combatant(h sim.EntityHandle) (combat.Combatant, bool) {
	c, found := cs.Get(h)
	if !found || !c.Active {
		return nil, false
	}

	return &character{world: cs.world, handle: h, c: c}, true
}

func characterRef(h sim.EntityHandle) combat.Ref {
	return combat.Ref{Tag: sim.TagCharacter, Handle: h}
}

// character adapts a Character to combat.Combatant.
type character struct {
	world  *World
	handle sim.EntityHandle
	c      *Character
}

func (a *character) Name() string        { return a.c.Name }
func (a *character) ArmourClass() int    { return a.c.ArmourClass }
func (a *character) HitPoints() int      { return a.c.HitPoints }
func (a *character) SetHitPoints(hp int) { a.c.HitPoints = hp }
func (a *character) Position() combat.Point {
	return a.c.Position
}

func (a *character) Conscious() bool {
	return !a.c.Conditions.Has(ConditionUnconscious)
}

func (a *character) Disable() {
	if a.world.Party.Has(a.handle) {
		a.world.partyFalls++
	}

	a.c.Conditions.Set(ConditionUnconscious, Permanent)
	a.c.Conditions.Set(ConditionInjured, Permanent)
	a.c.Behaviour = BehaviourUnconscious
}

func (a *character) MoveTo(p combat.Point) {
	a.world.Grid.Place(characterRef(a.handle), a.c.Position, p)
	a.c.Position = p
}

func (a *character) AttackProfile(bool) combat.Profile {
	return combat.SingleStrike(a.c.AttackThrow, a.c.DamageBonus, a.c.Weapon)
}

func (a *character) CleaveCount() int {
	return combat.CleaveCount(a.c.Progression, a.c.Level)
}
