package roster

import (
	"sort"

	"github.com/ackslab/rck/sim"
)

// Condition names used by the rules.
const (
	ConditionUnconscious = "Unconscious"
	ConditionInjured     = "Injured"
	ConditionDying       = "Dying"
	ConditionRecovering  = "Recovering"
)

// Permanent is the remaining time of a condition that never wears off.
const Permanent sim.VTimeInSec = -255

// Conditions maps condition names to their remaining time in seconds.
type Conditions map[string]sim.VTimeInSec

// Set adds or replaces a condition.
func (c Conditions) Set(name string, remaining sim.VTimeInSec) {
	c[name] = remaining
}

// Has returns true if the condition is present.
func (c Conditions) Has(name string) bool {
	_, found := c[name]
	return found
}

// Remove drops a condition.
func (c Conditions) Remove(name string) {
	delete(c, name)
}

// Reduce shortens a timed condition and drops it once it runs out.
// Permanent conditions are not affected.
func (c Conditions) Reduce(name string, by sim.VTimeInSec) {
	remaining, found := c[name]
	if !found || remaining == Permanent {
		return
	}

	remaining -= by
	if remaining <= 0 {
		delete(c, name)
		return
	}

	c[name] = remaining
}

// Decay lets elapsed seconds pass on every timed condition. It returns the
// names of the conditions that ran out, sorted. Expired conditions are
// removed, except Dying which is left for the caller to act on.
func (c Conditions) Decay(elapsed sim.VTimeInSec) []string {
	var expired []string

	for name, remaining := range c {
		if remaining == Permanent {
			continue
		}

		remaining -= elapsed
		c[name] = remaining

		if remaining < 0 {
			expired = append(expired, name)
			if name != ConditionDying {
				delete(c, name)
			}
		}
	}

	sort.Strings(expired)

	return expired
}
