package game

import (
	"fmt"

	"github.com/ackslab/rck/combat"
	"github.com/ackslab/rck/roster"
	"github.com/ackslab/rck/sim"
)

// Outcome is how a skirmish ended.
type Outcome int

// The outcomes of a skirmish.
const (
	OutcomeUndecided Outcome = iota
	OutcomeVictory
	OutcomeDefeat
	OutcomeTimeout
	OutcomeStalled
)

var outcomeNames = map[Outcome]string{
	OutcomeUndecided: "undecided",
	OutcomeVictory:   "victory",
	OutcomeDefeat:    "defeat",
	OutcomeTimeout:   "timeout",
	OutcomeStalled:   "stalled",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}

	return fmt.Sprintf("Outcome(%d)", int(o))
}

// SkirmishOptions describes the opposing sides of a skirmish.
type SkirmishOptions struct {
	Width, Height int
	Level         int
	Goblins       int
	Trolls        int
}

// DefaultSkirmish is a party of three against five goblins and a troll.
func DefaultSkirmish() SkirmishOptions {
	return SkirmishOptions{
		Width:   24,
		Height:  12,
		Level:   2,
		Goblins: 5,
		Trolls:  1,
	}
}

// SetUpSkirmish places a party on the west side of a fresh map and the
// monsters on the east side. The first member is operated.
func SetUpSkirmish(c *Context, o SkirmishOptions) {
	g := roster.NewGrid(o.Width, o.Height)
	c.EnterMap(g, combat.Point{})

	w := c.world
	mid := o.Height / 2

	members := []roster.Character{
		Fighter("Aldo", o.Level),
		Thief("Brin", o.Level),
		Cleric("Cato", o.Level),
	}
	for i, ch := range members {
		ch.Position = g.FreeNear(combat.Point{X: 1, Y: mid - 1 + i})
		w.Party.Add(w.Characters.Add(ch))
	}

	for i := 0; i < o.Goblins; i++ {
		m := Goblin()
		m.Name = fmt.Sprintf("Goblin %d", i+1)
		m.Position = g.FreeNear(combat.Point{X: o.Width - 2, Y: mid - o.Goblins/2 + i})
		w.Monsters.Spawn(m)
	}

	for i := 0; i < o.Trolls; i++ {
		m := Troll()
		if o.Trolls > 1 {
			m.Name = fmt.Sprintf("Troll %d", i+1)
		}
		m.Position = g.FreeNear(combat.Point{X: o.Width - 1, Y: mid + i})
		w.Monsters.Spawn(m)
	}

	c.mode = ModeMain
	c.current = w.Party.NextCapable(sim.NoEntity)
}

// Decide tells whether the skirmish is over.
func (c *Context) Decide() Outcome {
	if c.mode == ModeEnd {
		return OutcomeDefeat
	}

	if len(c.world.Monsters.Standing()) == 0 {
		return OutcomeVictory
	}

	return OutcomeUndecided
}

// RunSkirmish lets the pilot play until one side is down or the simulated
// time reaches limit.
func RunSkirmish(c *Context, pilot *Autopilot, limit sim.VTimeInSec) Outcome {
	for {
		if o := c.Decide(); o != OutcomeUndecided {
			return o
		}

		if c.scheduler.Now() >= limit {
			return OutcomeTimeout
		}

		if pilot.Act() {
			continue
		}

		if c.AdvanceToNext().NoOp {
			return OutcomeStalled
		}
	}
}
