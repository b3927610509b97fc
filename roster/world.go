// Package roster provides in-memory subsystems of characters, monsters and
// camps that act through the scheduler and fight through the combat
// resolver.
package roster

import (
	"github.com/ackslab/rck/combat"
	"github.com/ackslab/rck/dice"
	"github.com/ackslab/rck/sim"
)

// DefaultIdleMovement is the movement an entity waits for when it chose no
// action, the size of one square in feet.
const DefaultIdleMovement = 5.0

// SightRange is how far, in squares, entities look for enemies.
const SightRange = 12

// lostTrackWait is the wait of a hunter that lost its prey.
const lostTrackWait sim.VTimeInSec = 3

// Selection tells which character the operator controls.
type Selection interface {
	Selected() sim.EntityHandle
}

// An Attacker resolves attack actions.
type Attacker interface {
	ResolveAttacks(attacker, defender combat.Ref, missile bool) (done bool)
}

// World owns the grid and every subsystem. It is also the combat.Roster the
// resolver looks combatants up in.
type World struct {
	Grid       *Grid
	Characters *Characters
	Monsters   *Monsters
	Party      *Party
	Camp       *Camp

	scheduler    *sim.Scheduler
	roller       dice.Roller
	narrator     combat.Narrator
	selection    Selection
	attacker     Attacker
	idleMovement float64

	// partyFalls counts the party members put out of action.
	partyFalls int
}

// Builder can build Worlds.
type Builder struct {
	scheduler    *sim.Scheduler
	roller       dice.Roller
	narrator     combat.Narrator
	selection    Selection
	grid         *Grid
	idleMovement float64
}

// MakeBuilder creates a Builder with the default idle movement.
func MakeBuilder() Builder {
	return Builder{
		idleMovement: DefaultIdleMovement,
	}
}

// WithScheduler sets the scheduler the subsystems are registered to.
func (b Builder) WithScheduler(s *sim.Scheduler) Builder {
	b.scheduler = s
	return b
}

// WithRoller sets the random source of behaviours and healing.
func (b Builder) WithRoller(r dice.Roller) Builder {
	b.roller = r
	return b
}

// WithNarrator sets where narrative lines go.
func (b Builder) WithNarrator(n combat.Narrator) Builder {
	b.narrator = n
	return b
}

// WithSelection sets who tells the operated character.
func (b Builder) WithSelection(s Selection) Builder {
	b.selection = s
	return b
}

// WithGrid sets the grid.
func (b Builder) WithGrid(g *Grid) Builder {
	b.grid = g
	return b
}

// WithIdleMovement sets the movement waited for by an entity that chose no
// action.
func (b Builder) WithIdleMovement(m float64) Builder {
	b.idleMovement = m
	return b
}

// Build creates the World and registers its subsystems to the scheduler.
// Without a grid, a 64x64 one is used.
func (b Builder) Build() *World {
	if b.scheduler == nil {
		panic("world requires a scheduler")
	}

	if b.roller == nil {
		panic("world requires a roller")
	}

	w := &World{
		Grid:         b.grid,
		scheduler:    b.scheduler,
		roller:       b.roller,
		narrator:     b.narrator,
		selection:    b.selection,
		idleMovement: b.idleMovement,
	}

	if w.Grid == nil {
		w.Grid = NewGrid(64, 64)
	}

	if w.narrator == nil {
		w.narrator = discard{}
	}

	if w.idleMovement <= 0 {
		w.idleMovement = DefaultIdleMovement
	}

	w.Characters = &Characters{world: w}
	w.Monsters = &Monsters{world: w}
	w.Party = &Party{characters: w.Characters}
	w.Camp = &Camp{world: w}

	registry := b.scheduler.Registry()
	registry.Register(sim.TagCharacter, w.Characters)
	registry.Register(sim.TagMonster, w.Monsters)
	registry.Register(sim.TagBase, w.Camp)

	return w
}

type discard struct{}

func (discard) AddActionLog(string) {}

// SetAttacker sets who resolves the attacks started by behaviours.
func (w *World) SetAttacker(a Attacker) {
	w.attacker = a
}

// Scheduler returns the scheduler the subsystems are registered to.
func (w *World) Scheduler() *sim.Scheduler {
	return w.scheduler
}

// MovementTime returns the seconds an entity of the speed needs to move
// the idle movement.
func (w *World) MovementTime(speed float64) sim.VTimeInSec {
	if speed <= 0 {
		speed = 3
	}

	return sim.VTimeInSec(w.idleMovement / (speed / 3))
}

func (w *World) idleWait() sim.VTimeInSec {
	// 1.00 to 17.00 seconds.
	return sim.VTimeInSec(w.roller.Roll(1, 1601, 99)) / 100
}

func (w *World) operated(h sim.EntityHandle) bool {
	return w.selection != nil && w.selection.Selected() == h
}

// Combatant implements combat.Roster.
func (w *World) Combatant(ref combat.Ref) (combat.Combatant, bool) {
	switch ref.Tag {
	case sim.TagCharacter:
		return w.Characters.combatant(ref.Handle)
	case sim.TagMonster:
		return w.Monsters.combatant(ref.Handle)
	default:
		return nil, false
	}
}

// EnemiesInRange implements combat.Roster. Characters fight hostile
// monsters. Hostile monsters fight characters.
func (w *World) EnemiesInRange(
	attacker combat.Ref,
	center combat.Point,
	squares int,
	missile bool,
) []combat.Ref {
	var candidates []combat.Ref

	switch attacker.Tag {
	case sim.TagCharacter:
		candidates = w.Monsters.hostileRefs()
	case sim.TagMonster:
		m, found := w.Monsters.Get(attacker.Handle)
		if !found || !m.Hostile {
			return nil
		}
		candidates = w.Characters.activeRefs()
	}

	var out []combat.Ref
	for _, ref := range candidates {
		c, found := w.Combatant(ref)
		if !found || !c.Conscious() {
			continue
		}

		pos := c.Position()
		if missile {
			if center.Squares(pos) > float64(squares) || !w.Grid.Visible(center, pos) {
				continue
			}
		} else if pos == center || center.Chebyshev(pos) > squares {
			continue
		}

		out = append(out, ref)
	}

	return out
}

func (w *World) nearestEnemy(self combat.Ref, from combat.Point) (
	combat.Ref, combat.Point, bool,
) {
	best := combat.NoRef
	var bestPos combat.Point
	bestDist := 0.0

	for _, ref := range w.EnemiesInRange(self, from, SightRange, true) {
		c, _ := w.Combatant(ref)
		d := from.Squares(c.Position())

		if !best.Valid() || d < bestDist {
			best, bestPos, bestDist = ref, c.Position(), d
		}
	}

	return best, bestPos, best.Valid()
}

// hunt attacks the nearest enemy if it is adjacent or steps toward it. It
// returns false if there is nothing to hunt.
func (w *World) hunt(self combat.Ref, c combat.Combatant, speed float64) (
	sim.VTimeInSec, bool,
) {
	target, pos, found := w.nearestEnemy(self, c.Position())
	if !found {
		return lostTrackWait, false
	}

	if c.Position().Adjacent(pos) {
		if w.attacker != nil {
			w.attacker.ResolveAttacks(self, target, false)
		}

		return w.MovementTime(speed), true
	}

	return w.step(c, StepToward(c.Position(), pos), speed), true
}

func (w *World) wander(c combat.Combatant, speed float64) sim.VTimeInSec {
	to := Neighbour(c.Position(), dice.Pick(w.roller, 8))
	return w.step(c, to, speed)
}

// step moves c to the cell if it is free. It returns 0 if c did not move.
func (w *World) step(c combat.Combatant, to combat.Point, speed float64) sim.VTimeInSec {
	if !w.Grid.Free(to) {
		return 0
	}

	c.MoveTo(to)

	return w.MovementTime(speed)
}

// EnterMap replaces the grid. The party members that are still active are
// placed around spawn and scheduled again. Every other entity is left
// behind. The scheduler queue is expected to be cleared beforehand.
func (w *World) EnterMap(g *Grid, spawn combat.Point) {
	w.Monsters.retireAll()
	w.Grid = g

	for i, c := range w.Characters.list {
		h := sim.EntityHandle(i)
		if !c.Active {
			continue
		}

		if !w.Party.Has(h) {
			c.Active = false
			continue
		}

		c.Position = g.FreeNear(spawn)
		g.Place(characterRef(h), c.Position, c.Position)
		w.scheduler.Register(h, sim.TagCharacter)
	}
}
