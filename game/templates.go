package game

import (
	"github.com/ackslab/rck/combat"
	"github.com/ackslab/rck/dice"
	"github.com/ackslab/rck/roster"
)

// ShortBowRanges are the range bands of short bows, in feet.
var ShortBowRanges = combat.RangeBands{
	Limits:    [3]int{50, 100, 150},
	Penalties: [3]int{0, 2, 5},
}

// Fighter returns a first level fighter with a sword.
func Fighter(name string, level int) roster.Character {
	return roster.Character{
		Name:         name,
		Progression:  combat.ProgressionFighter,
		Level:        level,
		ArmourClass:  4,
		HitPoints:    8 * level,
		MaxHitPoints: 8 * level,
		AttackThrow:  10 - level/2,
		Weapon:       combat.Weapon{Name: "Sword", Tags: []string{combat.TagOneHanded}},
		Speed:        9,
	}
}

// Thief returns a thief with a short bow.
func Thief(name string, level int) roster.Character {
	return roster.Character{
		Name:         name,
		Progression:  combat.ProgressionThief,
		Level:        level,
		ArmourClass:  7,
		HitPoints:    4 * level,
		MaxHitPoints: 4 * level,
		AttackThrow:  10 - level/4,
		Weapon: combat.Weapon{
			Name:      "Short bow",
			Tags:      []string{combat.TagMissile, combat.TagBows},
			BothHands: true,
			Ranges:    &ShortBowRanges,
		},
		Speed: 12,
	}
}

// Cleric returns a cleric with a mace.
func Cleric(name string, level int) roster.Character {
	return roster.Character{
		Name:         name,
		Progression:  combat.ProgressionCleric,
		Level:        level,
		ArmourClass:  3,
		HitPoints:    6 * level,
		MaxHitPoints: 6 * level,
		AttackThrow:  10 - level/3,
		Weapon:       combat.Weapon{Name: "Mace"},
		Speed:        6,
	}
}

// Goblin returns a hostile goblin.
func Goblin() roster.Monster {
	return roster.Monster{
		Name:        "Goblin",
		HitDice:     1,
		ArmourClass: 6,
		HitPoints:   4,
		Movement:    6,
		AttackThrow: 10,
		Attacks: map[string]combat.Strike{
			"Spear": {Name: "Spear", Damage: dice.MustParse("1d6")},
		},
		Sequences:  [][]string{{"Spear"}},
		Hostile:    true,
		Behaviours: []roster.Behaviour{roster.BehaviourHunt},
	}
}

// Troll returns a hostile troll that claws twice and bites.
func Troll() roster.Monster {
	return roster.Monster{
		Name:        "Troll",
		HitDice:     6,
		ArmourClass: 4,
		HitPoints:   30,
		Movement:    12,
		AttackThrow: 6,
		Attacks: map[string]combat.Strike{
			"Claw": {Name: "Claw", Damage: dice.MustParse("1d6")},
			"Bite": {Name: "Bite", Damage: dice.MustParse("1d10")},
		},
		Sequences: [][]string{
			{"Claw", "Claw", "Bite"},
			{"Bite"},
		},
		Hostile:    true,
		Behaviours: []roster.Behaviour{roster.BehaviourHunt, roster.BehaviourWander},
	}
}
