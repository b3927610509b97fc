package combat

// Weapon tags that change the damage die or the range bands.
const (
	TagLight     = "Light"
	TagGrab      = "Grab"
	TagOneHanded = "One-Handed"
	TagTwoHanded = "Two-Handed"
	TagBows      = "Bows"
	TagCrossbows = "Crossbows"
	TagMissile   = "Missile"
)

// NoShot is the range penalty of a target that cannot be shot at all.
const NoShot = -255

// RangeBands gives the short, medium and long range limits of a missile
// weapon family in feet and the attack penalty inside each band.
//
// A distance is inside a band if it is strictly less than the band limit.
type RangeBands struct {
	Limits    [3]int
	Penalties [3]int
}

// Penalty returns the attack penalty at the distance, or NoShot if the
// distance is beyond long range.
func (b RangeBands) Penalty(feet float64) int {
	for i, limit := range b.Limits {
		if feet < float64(limit) {
			return b.Penalties[i]
		}
	}

	return NoShot
}

// MaxFeet returns the long range limit.
func (b RangeBands) MaxFeet() int {
	return b.Limits[2]
}

// A Weapon is what a character attacks with.
type Weapon struct {
	Name string
	Tags []string

	// BothHands is true if the weapon is held in the main and off hand.
	BothHands bool

	// Ranges is nil for weapons that cannot be used at range.
	Ranges *RangeBands
}

// HasTag returns true if the weapon carries the tag.
func (w Weapon) HasTag(tag string) bool {
	for _, t := range w.Tags {
		if t == tag {
			return true
		}
	}

	return false
}

// DamageDie returns the number of faces of the damage die.
func (w Weapon) DamageDie() int {
	if w.HasTag(TagBows) || w.HasTag(TagCrossbows) {
		return 6
	}

	if w.BothHands {
		if w.HasTag(TagOneHanded) {
			return 8
		}

		return 10
	}

	switch {
	case w.HasTag(TagGrab):
		return 2
	case w.HasTag(TagLight):
		return 4
	default:
		return 6
	}
}

// RangePenalty returns the attack penalty against a target at the distance.
// Weapons without range bands always return NoShot.
func (w Weapon) RangePenalty(feet float64) int {
	if w.Ranges == nil {
		return NoShot
	}

	return w.Ranges.Penalty(feet)
}

// MaxRangeSquares returns the long range of the weapon in squares, or 0 for
// weapons without range bands.
func (w Weapon) MaxRangeSquares() int {
	if w.Ranges == nil {
		return 0
	}

	return w.Ranges.MaxFeet() / SquareFeet
}
