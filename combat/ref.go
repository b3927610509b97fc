// Package combat resolves attacks between combatants, including attack
// sequences and follow-up cleave attacks that may pause to let the operator
// pick the next target.
package combat

import (
	"fmt"
	"math"

	"github.com/ackslab/rck/sim"
)

// A Ref addresses a combatant through the subsystem that owns it. It does
// not keep the combatant alive and must be looked up again on every use.
type Ref struct {
	Tag    sim.SubsystemTag
	Handle sim.EntityHandle
}

// NoRef refers to no combatant.
var NoRef = Ref{Tag: sim.TagGame, Handle: sim.NoEntity}

// Valid returns true if the reference points to an entity.
func (r Ref) Valid() bool {
	return r.Handle.Valid()
}

// Key converts the reference to the key of its scheduled event.
func (r Ref) Key() sim.EventKey {
	return sim.EventKey{Handle: r.Handle, Tag: r.Tag}
}

func (r Ref) String() string {
	return r.Key().String()
}

// SquareFeet is the size of one grid square in feet.
const SquareFeet = 5

// Point is a grid cell.
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Adjacent returns true if q touches p, diagonals included. A point is not
// adjacent to itself.
func (p Point) Adjacent(q Point) bool {
	return p != q && p.Chebyshev(q) <= 1
}

// Chebyshev returns the number of king moves from p to q.
func (p Point) Chebyshev(q Point) int {
	dx := abs(p.X - q.X)
	dy := abs(p.Y - q.Y)

	if dx > dy {
		return dx
	}

	return dy
}

// Squares returns the straight-line distance from p to q in squares.
func (p Point) Squares(q Point) float64 {
	return math.Hypot(float64(p.X-q.X), float64(p.Y-q.Y))
}

// Feet returns the straight-line distance from p to q in feet.
func (p Point) Feet(q Point) float64 {
	return p.Squares(q) * SquareFeet
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
