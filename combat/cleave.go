package combat

// Attack progressions that grant cleaves.
const (
	ProgressionFighter = "Fighter"
	ProgressionThief   = "Thief"
	ProgressionCleric  = "Cleric"
	ProgressionMage    = "Mage"
)

// CleaveCount returns how many follow-up attacks a character of the attack
// progression and level may make in one action.
func CleaveCount(progression string, level int) int {
	switch progression {
	case ProgressionFighter:
		return level
	case ProgressionThief, ProgressionCleric:
		return level / 2
	default:
		return 0
	}
}

// MonsterCleaveCount returns the cleaves of a monster, one per hit die.
func MonsterCleaveCount(hitDice int) int {
	if hitDice < 0 {
		return 0
	}

	return hitDice
}
