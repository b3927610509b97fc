// Package dice provides the random source of the combat rules.
package dice

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

var (
	// ErrInvalidSpec is returned when a dice notation cannot be parsed or
	// describes dice with no faces.
	ErrInvalidSpec = errors.New("invalid dice spec")
)

// A Roller rolls dice.
type Roller interface {
	// Roll rolls nbDice dice of nbFaces faces and adds addBonus to the
	// total. Zero dice roll only the bonus.
	Roll(nbDice, nbFaces, addBonus int) int
}

// Spec is a parsed dice notation such as 2d6+1.
type Spec struct {
	Count int
	Sides int
	Bonus int
}

func (s Spec) String() string {
	switch {
	case s.Bonus > 0:
		return fmt.Sprintf("%dd%d+%d", s.Count, s.Sides, s.Bonus)
	case s.Bonus < 0:
		return fmt.Sprintf("%dd%d%d", s.Count, s.Sides, s.Bonus)
	default:
		return fmt.Sprintf("%dd%d", s.Count, s.Sides)
	}
}

// Roll rolls the spec with the roller.
func (s Spec) Roll(r Roller) int {
	return r.Roll(s.Count, s.Sides, s.Bonus)
}

// Max returns the highest possible result.
func (s Spec) Max() int {
	return s.Count*s.Sides + s.Bonus
}

// Parse reads notations like "1d20", "d8", "2d6+1" and "1d4-1".
func Parse(notation string) (Spec, error) {
	text := strings.ToLower(strings.TrimSpace(notation))

	countText, rest, found := strings.Cut(text, "d")
	if !found {
		return Spec{}, fmt.Errorf("%w: %q", ErrInvalidSpec, notation)
	}

	spec := Spec{Count: 1}
	if countText != "" {
		n, err := strconv.Atoi(countText)
		if err != nil || n < 0 {
			return Spec{}, fmt.Errorf("%w: %q", ErrInvalidSpec, notation)
		}
		spec.Count = n
	}

	sidesText := rest
	if i := strings.IndexAny(rest, "+-"); i >= 0 {
		sidesText = rest[:i]

		bonus, err := strconv.Atoi(rest[i:])
		if err != nil {
			return Spec{}, fmt.Errorf("%w: %q", ErrInvalidSpec, notation)
		}
		spec.Bonus = bonus
	}

	sides, err := strconv.Atoi(sidesText)
	if err != nil || sides <= 0 {
		return Spec{}, fmt.Errorf("%w: %q", ErrInvalidSpec, notation)
	}
	spec.Sides = sides

	return spec, nil
}

// MustParse is like Parse but panics on invalid notations. It is meant for
// constant tables.
func MustParse(notation string) Spec {
	spec, err := Parse(notation)
	if err != nil {
		panic(err)
	}

	return spec
}

// SeededRoller is a deterministic Roller. The same seed always produces the
// same sequence of rolls.
type SeededRoller struct {
	seed  int64
	src   *rand.Rand
	rolls int64
}

// NewSeededRoller creates a roller from a seed.
func NewSeededRoller(seed int64) *SeededRoller {
	return &SeededRoller{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the roller was created with.
func (r *SeededRoller) Seed() int64 {
	return r.seed
}

// Rolls returns the number of dice rolled so far.
func (r *SeededRoller) Rolls() int64 {
	return r.rolls
}

// Roll implements Roller.
func (r *SeededRoller) Roll(nbDice, nbFaces, addBonus int) int {
	total := addBonus
	if nbFaces <= 0 {
		return total
	}

	for i := 0; i < nbDice; i++ {
		r.rolls++
		total += r.src.Intn(nbFaces) + 1
	}

	return total
}

// Pick returns an index in [0, n) rolled with r. n must be positive.
func Pick(r Roller, n int) int {
	return r.Roll(1, n, -1)
}
