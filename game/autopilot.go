package game

import (
	"github.com/ackslab/rck/combat"
	"github.com/ackslab/rck/roster"
)

// Autopilot plays the operated character: it attacks adjacent enemies,
// shoots when it can and otherwise closes in on the nearest enemy.
type Autopilot struct {
	ctx *Context
}

// NewAutopilot creates an Autopilot playing the game.
func NewAutopilot(c *Context) *Autopilot {
	return &Autopilot{ctx: c}
}

// Act performs one operator input. It returns false if the game does not
// expect any.
func (a *Autopilot) Act() bool {
	c := a.ctx

	if c.mode == ModeTarget {
		if c.targeting.Pending.Code == combat.ReturnLook {
			return c.CancelTarget()
		}

		return c.ConfirmTarget()
	}

	ch, ok := c.ready()
	if !ok {
		return false
	}

	self := c.currentRef()
	if adjacent := c.world.EnemiesInRange(self, ch.Position, 1, false); len(adjacent) > 0 {
		return c.Attack(adjacent[0])
	}

	if c.Fire() {
		return true
	}

	target, found := a.nearest(self, ch.Position)
	if !found {
		return c.Wait()
	}

	dir := roster.DirectionOf(ch.Position, roster.StepToward(ch.Position, target))
	if dir >= 0 && c.Move(dir) {
		return true
	}

	return c.Wait()
}

func (a *Autopilot) nearest(self combat.Ref, from combat.Point) (combat.Point, bool) {
	var best combat.Point
	found := false
	bestDist := 0.0

	w := a.ctx.world
	for _, ref := range w.EnemiesInRange(self, from, roster.SightRange, true) {
		e, ok := w.Combatant(ref)
		if !ok {
			continue
		}

		d := from.Squares(e.Position())
		if !found || d < bestDist {
			best, bestDist, found = e.Position(), d, true
		}
	}

	return best, found
}
