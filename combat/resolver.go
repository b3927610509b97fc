package combat

import (
	"github.com/ackslab/rck/dice"
)

// AttackOutcome describes one resolved strike.
type AttackOutcome struct {
	Defender Ref
	Missile  bool

	// Roll is the d20 result and Target the number it had to reach.
	Roll   int
	Target int

	Hit      bool
	Damage   int
	Disabled bool
}

// A Resolver resolves attack actions. An action is a strike sequence against
// a defender, followed by a cleave attack each time the defender falls and
// cleaves remain.
//
// When the operator's attacker has several cleave candidates, the action is
// suspended and Resume continues it once the target has been chosen.
type Resolver struct {
	roster     Roster
	roller     dice.Roller
	controller Controller
	targeter   Targeter
	narrator   Narrator

	attacks int
}

// Attacks returns the number of strikes resolved so far.
func (r *Resolver) Attacks() int {
	return r.attacks
}

// ResolveAttacks starts a new attack action. The attacker's cleaves are
// counted afresh. It returns false if the action is suspended waiting for a
// target.
func (r *Resolver) ResolveAttacks(attacker, defender Ref, missile bool) (done bool) {
	a, found := r.lookup(attacker)
	if !found {
		return true
	}

	return r.resolveAttacks(attacker, a.CleaveCount(), defender, missile)
}

// Resume continues a suspended action against the chosen target. A target
// that is not one of the candidates ends the action.
func (r *Resolver) Resume(p PendingAction, chosen Ref) (done bool) {
	if !p.HasCandidate(chosen) {
		return true
	}

	return r.resolveAttacks(p.Attacker, p.RemainingCleaves, chosen, p.Missile())
}

// MissileTargets prepares the targeting of a new missile action. It returns
// false if the attacker has no missile weapon or no visible enemy is in
// range.
func (r *Resolver) MissileTargets(attacker Ref) (PendingAction, bool) {
	a, found := r.lookup(attacker)
	if !found {
		return PendingAction{}, false
	}

	w := a.AttackProfile(true).Weapon
	if w == nil || !w.HasTag(TagMissile) {
		return PendingAction{}, false
	}

	squares := w.MaxRangeSquares()
	candidates := r.roster.EnemiesInRange(attacker, a.Position(), squares, true)
	if len(candidates) == 0 {
		return PendingAction{}, false
	}

	return PendingAction{
		Attacker:         attacker,
		RemainingCleaves: a.CleaveCount(),
		Code:             ReturnMissile,
		Candidates:       candidates,
		Range:            squares,
	}, true
}

func (r *Resolver) resolveAttacks(
	attacker Ref,
	remaining int,
	defender Ref,
	missile bool,
) bool {
	a, found := r.lookup(attacker)
	if !found || !a.Conscious() {
		return true
	}

	d, found := r.lookup(defender)
	if !found || !d.Conscious() {
		return true
	}

	r.narrator.AddActionLog(a.Name() + " attacks " + d.Name() + ".")

	profile := a.AttackProfile(missile)
	bonus := profile.AttackBonus

	if missile {
		penalty := NoShot
		if profile.Weapon != nil {
			penalty = profile.Weapon.RangePenalty(a.Position().Feet(d.Position()))
		}

		if penalty == NoShot {
			r.narrator.AddActionLog("The attack misses!")
			return true
		}

		bonus += penalty
	}

	sequence := r.chooseSequence(profile.Sequences)
	for _, strike := range sequence {
		fallenAt := d.Position()

		outcome := r.ResolveAttack(bonus, strike.Damage, defender, missile)
		if !outcome.Disabled {
			continue
		}

		if remaining <= 0 {
			return true
		}

		return r.cleave(attacker, a, remaining-1, defender, fallenAt, missile)
	}

	return true
}

func (r *Resolver) chooseSequence(sequences [][]Strike) []Strike {
	switch len(sequences) {
	case 0:
		return nil
	case 1:
		return sequences[0]
	default:
		return sequences[dice.Pick(r.roller, len(sequences))]
	}
}

func (r *Resolver) cleave(
	attacker Ref,
	a Combatant,
	remaining int,
	fallen Ref,
	fallenAt Point,
	missile bool,
) bool {
	r.narrator.AddActionLog("Cleave!")

	code := ReturnMeleeCleave
	squares := 1
	if missile {
		code = ReturnMissile
		squares = 0
		if w := a.AttackProfile(true).Weapon; w != nil {
			squares = w.MaxRangeSquares()
		}
	} else {
		a.MoveTo(fallenAt)
	}

	candidates := r.without(
		r.roster.EnemiesInRange(attacker, a.Position(), squares, missile),
		fallen,
	)

	switch {
	case len(candidates) == 0:
		return true
	case len(candidates) == 1:
		return r.resolveAttacks(attacker, remaining, candidates[0], missile)
	case !r.controller.IsOperator(attacker) || r.targeter == nil:
		next := candidates[dice.Pick(r.roller, len(candidates))]
		return r.resolveAttacks(attacker, remaining, next, missile)
	}

	r.targeter.TriggerTargeting(PendingAction{
		Attacker:         attacker,
		RemainingCleaves: remaining,
		Code:             code,
		Candidates:       candidates,
		Range:            squares,
	})

	return false
}

func (r *Resolver) without(refs []Ref, excluded Ref) []Ref {
	out := make([]Ref, 0, len(refs))
	for _, ref := range refs {
		if ref != excluded {
			out = append(out, ref)
		}
	}

	return out
}

// ResolveAttack resolves a single strike. The strike hits if a d20 reaches
// attackBonus plus the defender's armour class. A defender that cannot be
// found is never hit.
func (r *Resolver) ResolveAttack(
	attackBonus int,
	damage dice.Spec,
	defender Ref,
	missile bool,
) AttackOutcome {
	outcome := AttackOutcome{Defender: defender, Missile: missile}

	d, found := r.lookup(defender)
	if !found {
		return outcome
	}

	r.attacks++
	outcome.Target = attackBonus + d.ArmourClass()
	outcome.Roll = r.roller.Roll(1, 20, 0)

	if outcome.Roll < outcome.Target {
		r.narrator.AddActionLog("The attack misses!")
		return outcome
	}

	r.narrator.AddActionLog("The attack hits!")
	outcome.Hit = true
	outcome.Damage, outcome.Disabled = r.ResolveDamage(damage, defender)

	return outcome
}

// ResolveDamage rolls the damage and takes it from the defender's hit
// points. It returns the damage dealt and whether the defender fell. Damage
// never heals.
func (r *Resolver) ResolveDamage(damage dice.Spec, defender Ref) (int, bool) {
	d, found := r.lookup(defender)
	if !found {
		return 0, false
	}

	dealt := damage.Roll(r.roller)
	if dealt < 0 {
		dealt = 0
	}

	hp := d.HitPoints() - dealt
	d.SetHitPoints(hp)

	if hp >= 1 {
		return dealt, false
	}

	r.narrator.AddActionLog(d.Name() + " falls!")
	d.Disable()
	r.controller.Disabled(defender)

	return dealt, true
}

func (r *Resolver) lookup(ref Ref) (Combatant, bool) {
	if !ref.Valid() {
		return nil, false
	}

	c, found := r.roster.Combatant(ref)
	if !found || c == nil {
		return nil, false
	}

	return c, true
}
