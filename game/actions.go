package game

import (
	"github.com/ackslab/rck/combat"
	"github.com/ackslab/rck/roster"
	"github.com/ackslab/rck/sim"
)

// AdvanceBy lets the simulation run for duration. Time only passes in the
// main mode.
func (c *Context) AdvanceBy(duration sim.VTimeInSec) sim.AdvanceResult {
	if c.mode != ModeMain {
		return sim.AdvanceResult{NoOp: true}
	}

	return c.scheduler.AdvanceBy(duration)
}

// AdvanceToNext lets the simulation run until the next entity acts.
func (c *Context) AdvanceToNext() sim.AdvanceResult {
	if c.mode != ModeMain {
		return sim.AdvanceResult{NoOp: true}
	}

	return c.scheduler.AdvanceToNext()
}

// Awaiting returns true if the operated character is ready and waits for
// the operator to act.
func (c *Context) Awaiting() bool {
	if c.mode != ModeMain || !c.current.Valid() {
		return false
	}

	ch, found := c.world.Characters.Get(c.current)
	if !found || !ch.Active {
		return false
	}

	_, pending := c.scheduler.Find(c.current, sim.TagCharacter)

	return !pending
}

// ToggleMenu enters or leaves the menu. Time does not pass in the menu.
func (c *Context) ToggleMenu() {
	switch c.mode {
	case ModeMain:
		c.mode = ModeMenu
	case ModeMenu:
		c.mode = ModeMain
	}
}

func (c *Context) currentRef() combat.Ref {
	return combat.Ref{Tag: sim.TagCharacter, Handle: c.current}
}

func (c *Context) ready() (*roster.Character, bool) {
	if !c.Awaiting() {
		return nil, false
	}

	ch, _ := c.world.Characters.Get(c.current)
	if ch.Conditions.Has(roster.ConditionUnconscious) {
		return nil, false
	}

	return ch, true
}

// Wait lets the ready character pass its turn.
func (c *Context) Wait() bool {
	if _, ok := c.ready(); !ok {
		return false
	}

	c.finishAction()

	return true
}

// Move steps the ready character in a direction, numbered clockwise from
// north. Stepping into a hostile monster attacks it.
func (c *Context) Move(direction int) bool {
	ch, ok := c.ready()
	if !ok {
		return false
	}

	to := roster.Neighbour(ch.Position, direction)
	if ref, taken := c.world.Grid.Occupant(to); taken && ref.Tag == sim.TagMonster {
		if m, found := c.world.Monsters.Get(ref.Handle); found && m.Hostile {
			return c.Attack(ref)
		}
	}

	if !c.world.Characters.Move(c.current, to) {
		return false
	}

	c.finishAction()

	return true
}

// Attack starts a melee attack action of the ready character. It returns
// false if the action could not start. An action that waits for a cleave
// target leaves the game in the target mode.
func (c *Context) Attack(defender combat.Ref) bool {
	ch, ok := c.ready()
	if !ok {
		return false
	}

	d, found := c.world.Combatant(defender)
	if !found || !d.Conscious() || !ch.Position.Adjacent(d.Position()) {
		return false
	}

	c.acting = true
	if c.resolver.ResolveAttacks(c.currentRef(), defender, false) {
		c.finishAction()
	}

	return true
}

// Fire starts the target selection of a missile attack. It returns false if
// the ready character has nothing to shoot at.
func (c *Context) Fire() bool {
	if _, ok := c.ready(); !ok {
		return false
	}

	p, ok := c.resolver.MissileTargets(c.currentRef())
	if !ok {
		return false
	}

	c.TriggerTargeting(p)

	return true
}

// Look starts a target selection over the visible enemies without acting.
func (c *Context) Look() bool {
	if c.mode != ModeMain || !c.current.Valid() {
		return false
	}

	ch, found := c.world.Characters.Get(c.current)
	if !found || !ch.Active {
		return false
	}

	candidates := c.world.EnemiesInRange(
		c.currentRef(), ch.Position, roster.SightRange, true)
	if len(candidates) == 0 {
		return false
	}

	c.TriggerTargeting(combat.PendingAction{
		Attacker:   c.currentRef(),
		Code:       combat.ReturnLook,
		Candidates: candidates,
		Range:      roster.SightRange,
	})

	return true
}

// CycleTarget moves the target cursor by delta, wrapping around.
func (c *Context) CycleTarget(delta int) (combat.Ref, bool) {
	if c.targeting == nil || len(c.targeting.Pending.Candidates) == 0 {
		return combat.NoRef, false
	}

	n := len(c.targeting.Pending.Candidates)
	c.targeting.Index = ((c.targeting.Index+delta)%n + n) % n

	return c.targeting.Current()
}

// ConfirmTarget feeds the target under the cursor to the game's
// TargetHandler with the code of the pending action.
func (c *Context) ConfirmTarget() bool {
	if c.targeting == nil {
		return false
	}

	ref, ok := c.targeting.Current()
	if !ok {
		return false
	}

	return c.registry.Get(sim.TagGame).
		TargetHandler(ref.Handle, c.targeting.Pending.Code)
}

// CancelTarget leaves the target mode. A cleave that was waiting for its
// target ends there.
func (c *Context) CancelTarget() bool {
	if c.targeting == nil {
		return false
	}

	return c.registry.Get(sim.TagGame).
		TargetHandler(c.current, combat.ReturnLook)
}

// finishAction ends the operator's action and schedules the operated
// character's next turn.
func (c *Context) finishAction() {
	c.acting = false

	if c.mode == ModeEnd || !c.current.Valid() {
		return
	}

	ch, found := c.world.Characters.Get(c.current)
	if !found || !ch.Active {
		return
	}

	c.scheduler.Reschedule(c.current, sim.TagCharacter,
		c.world.MovementTime(ch.Speed))
}
