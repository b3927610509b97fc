// Package game ties the scheduler, the roster and the combat resolver into
// one game that an operator drives.
package game

import (
	"fmt"
	"time"

	"github.com/ackslab/rck/combat"
	"github.com/ackslab/rck/dice"
	"github.com/ackslab/rck/roster"
	"github.com/ackslab/rck/sim"
)

// Mode is what the operator is doing.
type Mode int

// The modes of a game.
const (
	ModeMain Mode = iota
	ModeTarget
	ModeMenu
	ModeEnd
)

var modeNames = map[Mode]string{
	ModeMain:   "main",
	ModeTarget: "target",
	ModeMenu:   "menu",
	ModeEnd:    "end",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}

	return fmt.Sprintf("Mode(%d)", int(m))
}

// Targeting is the state of the target selection mode.
type Targeting struct {
	Pending combat.PendingAction
	Index   int
}

// Current returns the candidate under the cursor.
func (t Targeting) Current() (combat.Ref, bool) {
	if len(t.Pending.Candidates) == 0 {
		return combat.NoRef, false
	}

	return t.Pending.Candidates[t.Index], true
}

// Context is one game. It is the operator's view of the simulation: it
// knows which character is controlled, collects the narrative, and holds the
// attack action waiting for a target.
type Context struct {
	config    Config
	registry  *sim.Registry
	scheduler *sim.Scheduler
	roller    dice.Roller
	world     *roster.World
	resolver  *combat.Resolver
	log       *ActionLog

	mode      Mode
	current   sim.EntityHandle
	targeting *Targeting
	acting    bool
	crossing  sim.Crossing
}

// NewContext creates an empty game rolling seeded dice.
func NewContext(config Config) *Context {
	if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}

	return NewContextWithRoller(config, dice.NewSeededRoller(config.Seed))
}

// NewContextWithRoller creates an empty game rolling the given dice.
func NewContextWithRoller(config Config, roller dice.Roller) *Context {
	c := &Context{
		config:  config,
		current: sim.NoEntity,
		log:     NewActionLog(config.LogLimit),
		roller:  roller,
	}

	c.registry = sim.NewRegistry()
	c.scheduler = sim.NewScheduler(c.registry)

	c.world = roster.MakeBuilder().
		WithScheduler(c.scheduler).
		WithRoller(c.roller).
		WithNarrator(c.log).
		WithSelection(c).
		WithIdleMovement(config.IdleMovement).
		Build()

	c.resolver = combat.MakeBuilder().
		WithRoster(c.world).
		WithRoller(c.roller).
		WithController(c).
		WithTargeter(c).
		WithNarrator(c.log).
		Build()

	c.world.SetAttacker(c.resolver)
	c.registry.Register(sim.TagGame, c)

	return c
}

// Config returns the settings the game was created with.
func (c *Context) Config() Config {
	return c.config
}

// Scheduler returns the scheduler of the game.
func (c *Context) Scheduler() *sim.Scheduler {
	return c.scheduler
}

// Registry returns the subsystems of the game.
func (c *Context) Registry() *sim.Registry {
	return c.registry
}

// World returns the entities of the game.
func (c *Context) World() *roster.World {
	return c.world
}

// Resolver returns the combat resolver of the game.
func (c *Context) Resolver() *combat.Resolver {
	return c.resolver
}

// Roller returns the dice of the game.
func (c *Context) Roller() dice.Roller {
	return c.roller
}

// Log returns the narrative of the game.
func (c *Context) Log() *ActionLog {
	return c.log
}

// Mode returns what the operator is doing.
func (c *Context) Mode() Mode {
	return c.mode
}

// LastCrossing returns the calendar boundaries crossed by the latest
// advance that crossed any.
func (c *Context) LastCrossing() sim.Crossing {
	return c.crossing
}

// Targeting returns the target selection state, if in target mode.
func (c *Context) Targeting() (Targeting, bool) {
	if c.targeting == nil {
		return Targeting{}, false
	}

	return *c.targeting, true
}

// Current returns the operated character.
func (c *Context) Current() sim.EntityHandle {
	return c.current
}

// Selected implements roster.Selection.
func (c *Context) Selected() sim.EntityHandle {
	return c.current
}

// Select hands the control to a party member. A member that is waiting for
// the operator when it loses control is scheduled to act on its own.
func (c *Context) Select(h sim.EntityHandle) bool {
	if !c.world.Party.Has(h) {
		return false
	}

	c.release(c.current)
	c.current = h

	return true
}

// SwitchCharacter hands the control to the next capable party member.
func (c *Context) SwitchCharacter() bool {
	if c.mode != ModeMain {
		return false
	}

	next := c.world.Party.NextCapable(c.current)
	if next == sim.NoEntity || next == c.current {
		return false
	}

	return c.Select(next)
}

func (c *Context) release(h sim.EntityHandle) {
	if !h.Valid() {
		return
	}

	ch, found := c.world.Characters.Get(h)
	if !found || !ch.Active {
		return
	}

	if _, pending := c.scheduler.Find(h, sim.TagCharacter); !pending {
		c.scheduler.Register(h, sim.TagCharacter)
	}
}

// IsOperator implements combat.Controller.
func (c *Context) IsOperator(ref combat.Ref) bool {
	return ref.Tag == sim.TagCharacter && ref.Handle.Valid() &&
		ref.Handle == c.current
}

// Disabled implements combat.Controller. When the operated character falls,
// the control goes to the next capable member. The game is over if there is
// none.
func (c *Context) Disabled(ref combat.Ref) {
	if !c.IsOperator(ref) {
		return
	}

	next := c.world.Party.NextCapable(c.current)
	if next == sim.NoEntity {
		c.GameOver()
		return
	}

	c.current = next
}

// GameOver ends the game.
func (c *Context) GameOver() {
	c.log.AddActionLog("Game over!")
	c.scheduler.Clear()
	c.current = sim.NoEntity
	c.targeting = nil
	c.acting = false
	c.mode = ModeEnd
}

// TriggerTargeting implements combat.Targeter.
func (c *Context) TriggerTargeting(p combat.PendingAction) {
	c.targeting = &Targeting{Pending: p}
	c.mode = ModeTarget
}

// AddActionLog implements combat.Narrator.
func (c *Context) AddActionLog(text string) {
	c.log.AddActionLog(text)
}

// EnterMap moves the party to a new grid around spawn. Scheduling starts
// over but the calendar goes on.
func (c *Context) EnterMap(grid *roster.Grid, spawn combat.Point) {
	c.scheduler.Clear()
	c.targeting = nil
	c.acting = false
	if c.mode == ModeTarget {
		c.mode = ModeMain
	}

	c.world.EnterMap(grid, spawn)
}

// TurnHandler implements sim.Subsystem. The game owns no entity.
func (c *Context) TurnHandler(sim.EntityHandle, sim.VTimeInSec) bool {
	return false
}

// TargetHandler implements sim.Subsystem. It completes the suspended action
// of the code with the chosen monster. A look only returns to the main mode.
func (c *Context) TargetHandler(h sim.EntityHandle, code sim.ReturnCode) bool {
	switch code {
	case combat.ReturnLook:
		c.targeting = nil
		c.mode = ModeMain
		if c.acting {
			c.finishAction()
		}
	case combat.ReturnMissile, combat.ReturnMeleeCleave:
		if c.targeting == nil {
			return true
		}

		p := c.targeting.Pending
		c.targeting = nil
		c.mode = ModeMain
		c.acting = true

		chosen := combat.Ref{Tag: sim.TagMonster, Handle: h}
		if c.resolver.Resume(p, chosen) {
			c.finishAction()
		}
	}

	return true
}

// PeriodicHandler implements sim.Subsystem. It runs after the roster's, so
// an operated character that just died hands the control over.
func (c *Context) PeriodicHandler(crossing sim.Crossing) {
	c.crossing = crossing

	if !c.current.Valid() {
		return
	}

	if ch, found := c.world.Characters.Get(c.current); !found || !ch.Active {
		c.Disabled(c.currentRef())
	}
}
