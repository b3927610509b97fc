package roster

import (
	"github.com/ackslab/rck/combat"
	"github.com/ackslab/rck/dice"
	"github.com/ackslab/rck/sim"
)

// Monster is a creature of the map.
type Monster struct {
	Name    string
	HitDice int

	ArmourClass int
	HitPoints   int
	Movement    float64

	// AttackThrow is the d20 target before armour class for the monster's
	// hit dice.
	AttackThrow int

	// Attacks are the named strikes. Sequences refer to them by name.
	Attacks   map[string]combat.Strike
	Sequences [][]string

	Hostile    bool
	Behaviours []Behaviour

	Position   combat.Point
	Conditions Conditions
	Behaviour  Behaviour

	Active bool
}

// Monsters is the subsystem of monsters.
type Monsters struct {
	world *World
	list  []*Monster
}

// Spawn puts a monster into the world and schedules its first turn.
func (ms *Monsters) Spawn(m Monster) sim.EntityHandle {
	h := sim.EntityHandle(len(ms.list))

	m.Active = true
	if m.Conditions == nil {
		m.Conditions = make(Conditions)
	}

	ms.list = append(ms.list, &m)
	ms.world.Grid.Place(monsterRef(h), m.Position, m.Position)
	ms.world.scheduler.Register(h, sim.TagMonster)

	return h
}

// Get returns the monster of the handle.
func (ms *Monsters) Get(h sim.EntityHandle) (*Monster, bool) {
	if !h.Valid() || int(h) >= len(ms.list) {
		return nil, false
	}

	return ms.list[h], true
}

// Len returns the number of monsters ever spawned.
func (ms *Monsters) Len() int {
	return len(ms.list)
}

// Standing returns the handles of the active monsters that are still
// conscious.
func (ms *Monsters) Standing() []sim.EntityHandle {
	var out []sim.EntityHandle
	for i, m := range ms.list {
		if m.Active && !m.Conditions.Has(ConditionUnconscious) {
			out = append(out, sim.EntityHandle(i))
		}
	}

	return out
}

// EntityName implements sim.EntityNamer.
func (ms *Monsters) EntityName(h sim.EntityHandle) string {
	m, found := ms.Get(h)
	if !found {
		return monsterRef(h).String()
	}

	return m.Name
}

// TurnHandler implements sim.Subsystem. A monster interrupts the advance
// when its action put a party member out of action. It is not rescheduled
// if the queue was cleared during its action.
func (ms *Monsters) TurnHandler(h sim.EntityHandle, now sim.VTimeInSec) bool {
	m, found := ms.Get(h)
	if !found || !m.Active {
		return false
	}

	w := ms.world
	ref := monsterRef(h)
	self := &monster{world: w, handle: h, m: m}
	falls, generation := w.partyFalls, w.scheduler.Generation()

	pickNew := false
	var wait sim.VTimeInSec

	switch m.Behaviour {
	case BehaviourUnset:
		pickNew = true
	case BehaviourIdle:
		wait = w.idleWait()
		m.Behaviour = BehaviourUnset
	case BehaviourWander:
		wait = w.wander(self, m.Movement)
	case BehaviourHunt:
		var hunting bool
		wait, hunting = w.hunt(ref, self, m.Movement)
		pickNew = !hunting
	}

	if w.scheduler.Generation() == generation {
		if wait == 0 {
			wait = w.MovementTime(m.Movement)
		}
		w.scheduler.Reschedule(h, sim.TagMonster, now+wait)
	}

	if pickNew {
		m.Behaviour = ms.selectBehaviour(m)
		w.narrator.AddActionLog(m.Name + " sets behaviour:" + m.Behaviour.String() + ".")
	}

	return w.partyFalls != falls
}

func (ms *Monsters) selectBehaviour(m *Monster) Behaviour {
	if m.Conditions.Has(ConditionUnconscious) {
		return BehaviourUnconscious
	}

	switch len(m.Behaviours) {
	case 0:
		return BehaviourIdle
	case 1:
		return m.Behaviours[0]
	default:
		return m.Behaviours[dice.Pick(ms.world.roller, len(m.Behaviours))]
	}
}

// TargetHandler implements sim.Subsystem.
func (ms *Monsters) TargetHandler(sim.EntityHandle, sim.ReturnCode) bool {
	return true
}

// PeriodicHandler implements sim.Subsystem. It lets conditions wear off.
func (ms *Monsters) PeriodicHandler(crossing sim.Crossing) {
	elapsed := sim.VTimeInSec(crossing.Rounds) * sim.PeriodLength(sim.PeriodRound)

	for _, m := range ms.list {
		if m.Active {
			m.Conditions.Decay(elapsed)
		}
	}
}

func (ms *Monsters) retireAll() {
	for _, m := range ms.list {
		m.Active = false
	}
}

func (ms *Monsters) hostileRefs() []combat.Ref {
	var refs []combat.Ref
	for i, m := range ms.list {
		if m.Active && m.Hostile {
			refs = append(refs, monsterRef(sim.EntityHandle(i)))
		}
	}

	return refs
}

func (ms *Monsters) combatant(h sim.EntityHandle) (combat.Combatant, bool) {
	m, found := ms.Get(h)
	if !found || !m.Active {
		return nil, false
	}

	return &monster{world: ms.world, handle: h, m: m}, true
}

func monsterRef(h sim.EntityHandle) combat.Ref {
	return combat.Ref{Tag: sim.TagMonster, Handle: h}
}

// monster adapts a Monster to combat.Combatant.
type monster struct {
	world  *World
	handle sim.EntityHandle
	m      *Monster
}

func (a *monster) Name() string        { return a.m.Name }
func (a *monster) ArmourClass() int    { return a.m.ArmourClass }
func (a *monster) HitPoints() int      { return a.m.HitPoints }
func (a *monster) SetHitPoints(hp int) { a.m.HitPoints = hp }
func (a *monster) Position() combat.Point {
	return a.m.Position
}

func (a *monster) Conscious() bool {
	return !a.m.Conditions.Has(ConditionUnconscious)
}

func (a *monster) Disable() {
	a.m.Conditions.Set(ConditionUnconscious, Permanent)
	a.m.Conditions.Set(ConditionInjured, Permanent)
	a.m.Behaviour = BehaviourUnconscious
}

func (a *monster) MoveTo(p combat.Point) {
	a.world.Grid.Place(monsterRef(a.handle), a.m.Position, p)
	a.m.Position = p
}

func (a *monster) AttackProfile(bool) combat.Profile {
	p := combat.Profile{AttackBonus: a.m.AttackThrow}

	for _, names := range a.m.Sequences {
		var sequence []combat.Strike
		for _, name := range names {
			if strike, found := a.m.Attacks[name]; found {
				sequence = append(sequence, strike)
			}
		}

		if len(sequence) > 0 {
			p.Sequences = append(p.Sequences, sequence)
		}
	}

	return p
}

func (a *monster) CleaveCount() int {
	return combat.MonsterCleaveCount(a.m.HitDice)
}
