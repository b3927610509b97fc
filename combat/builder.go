package combat

import (
	"github.com/ackslab/rck/dice"
)

// Builder can build Resolvers.
type Builder struct {
	roster     Roster
	roller     dice.Roller
	controller Controller
	targeter   Targeter
	narrator   Narrator
}

// MakeBuilder creates a Builder with no collaborators.
func MakeBuilder() Builder {
	return Builder{}
}

// WithRoster sets where combatants are looked up.
func (b Builder) WithRoster(r Roster) Builder {
	b.roster = r
	return b
}

// WithRoller sets the random source.
func (b Builder) WithRoller(r dice.Roller) Builder {
	b.roller = r
	return b
}

// WithController sets who decides whether an attacker is operated.
func (b Builder) WithController(c Controller) Builder {
	b.controller = c
	return b
}

// WithTargeter sets what starts the interactive target selection.
func (b Builder) WithTargeter(t Targeter) Builder {
	b.targeter = t
	return b
}

// WithNarrator sets where narrative lines go.
func (b Builder) WithNarrator(n Narrator) Builder {
	b.narrator = n
	return b
}

// Build creates the Resolver. The roster and the roller are required.
func (b Builder) Build() *Resolver {
	if b.roster == nil {
		panic("combat resolver requires a roster")
	}

	if b.roller == nil {
		panic("combat resolver requires a roller")
	}

	r := &Resolver{
		roster:     b.roster,
		roller:     b.roller,
		controller: b.controller,
		targeter:   b.targeter,
		narrator:   b.narrator,
	}

	if r.controller == nil {
		r.controller = nobodyOperates{}
	}

	if r.narrator == nil {
		r.narrator = silentNarrator{}
	}

	return r
}

type nobodyOperates struct{}

func (nobodyOperates) IsOperator(Ref) bool { return false }
func (nobodyOperates) Disabled(Ref)        {}

type silentNarrator struct{}

func (silentNarrator) AddActionLog(string) {}
