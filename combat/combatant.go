package combat

import (
	"github.com/ackslab/rck/dice"
	"github.com/ackslab/rck/sim"
)

// A Strike is one named attack of a sequence, such as a claw or a bite.
type Strike struct {
	Name   string
	Damage dice.Spec
}

// Profile is how a combatant attacks during one action.
type Profile struct {
	// AttackBonus is the target number before the defender's armour class
	// is added. Lower is better.
	AttackBonus int

	// Sequences lists the alternative strike sequences. One of them is
	// chosen at random for every action. Characters have a single sequence
	// of a single strike.
	Sequences [][]Strike

	// Weapon is used for range penalties and cleave targeting. Monsters may
	// leave it nil.
	Weapon *Weapon
}

// SingleStrike builds the profile of a combatant that strikes once with a
// weapon.
func SingleStrike(attackBonus, damageBonus int, w Weapon) Profile {
	return Profile{
		AttackBonus: attackBonus,
		Sequences: [][]Strike{{{
			Name:   w.Name,
			Damage: dice.Spec{Count: 1, Sides: w.DamageDie(), Bonus: damageBonus},
		}}},
		Weapon: &w,
	}
}

// Combatant is the part of an entity that the Resolver reads and changes.
type Combatant interface {
	Name() string
	ArmourClass() int
	HitPoints() int
	SetHitPoints(hp int)

	// Conscious returns false once the combatant has been disabled.
	Conscious() bool

	// Disable makes the combatant unconscious and injured and stops its
	// behaviour.
	Disable()

	Position() Point
	MoveTo(p Point)

	// AttackProfile returns the attack profile for a melee or missile
	// attack.
	AttackProfile(missile bool) Profile

	// CleaveCount returns the cleaves available at the start of an action.
	CleaveCount() int
}

// Roster finds combatants.
type Roster interface {
	// Combatant returns the combatant or false if the reference does not
	// point to a live entity.
	Combatant(ref Ref) (Combatant, bool)

	// EnemiesInRange returns the conscious enemies of the attacker within
	// squares of center. Missile searches only return visible enemies.
	EnemiesInRange(attacker Ref, center Point, squares int, missile bool) []Ref
}

// Controller knows which combatant the operator controls.
type Controller interface {
	// IsOperator returns true if the combatant is controlled by the operator
	// and should choose targets interactively.
	IsOperator(ref Ref) bool

	// Disabled is told after a combatant falls.
	Disabled(ref Ref)
}

// Targeter lets the operator choose among candidates.
type Targeter interface {
	// TriggerTargeting starts the target selection. The chosen target is
	// fed back through the TargetHandler of the pending action's code.
	TriggerTargeting(p PendingAction)
}

// Narrator receives the narrative lines describing the outcomes.
type Narrator interface {
	AddActionLog(text string)
}

// The target selection return codes of the game.
const (
	ReturnLook        sim.ReturnCode = 0
	ReturnMissile     sim.ReturnCode = 1
	ReturnMeleeCleave sim.ReturnCode = 2
)

// PendingAction is an attack action waiting for the operator to choose the
// next target.
type PendingAction struct {
	Attacker         Ref
	RemainingCleaves int
	Code             sim.ReturnCode
	Candidates       []Ref

	// Range is the targeting range in squares.
	Range int
}

// Missile returns true if the action continues with missile attacks.
func (p PendingAction) Missile() bool {
	return p.Code == ReturnMissile
}

// HasCandidate returns true if ref is one of the candidates.
func (p PendingAction) HasCandidate(ref Ref) bool {
	for _, c := range p.Candidates {
		if c == ref {
			return true
		}
	}

	return false
}
