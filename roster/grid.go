package roster

import (
	"github.com/ackslab/rck/combat"
)

// LineOfSight decides whether to can be seen from from.
type LineOfSight func(from, to combat.Point) bool

// Grid tracks which combatants stand on which cell. A cell can hold a
// fallen combatant and the one that stepped over it.
type Grid struct {
	Width, Height int

	// LineOfSight defaults to everything being visible.
	LineOfSight LineOfSight

	occupants map[combat.Point][]combat.Ref
}

// NewGrid creates an empty grid.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:     width,
		Height:    height,
		occupants: make(map[combat.Point][]combat.Ref),
	}
}

// InBounds returns true if p is on the grid.
func (g *Grid) InBounds(p combat.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.Width && p.Y < g.Height
}

// Visible returns true if to can be seen from from.
func (g *Grid) Visible(from, to combat.Point) bool {
	if g.LineOfSight == nil {
		return true
	}

	return g.LineOfSight(from, to)
}

// Occupant returns who arrived last on p.
func (g *Grid) Occupant(p combat.Point) (combat.Ref, bool) {
	refs := g.occupants[p]
	if len(refs) == 0 {
		return combat.NoRef, false
	}

	return refs[len(refs)-1], true
}

// Free returns true if p is on the grid and nobody stands on it.
func (g *Grid) Free(p combat.Point) bool {
	return g.InBounds(p) && len(g.occupants[p]) == 0
}

// Place puts ref on p, leaving whatever cell it stood on before. Others on
// either cell stay where they are.
func (g *Grid) Place(ref combat.Ref, from, to combat.Point) {
	g.Leave(ref, from)
	g.occupants[to] = append(g.occupants[to], ref)
}

// Leave removes ref from p.
func (g *Grid) Leave(ref combat.Ref, p combat.Point) {
	refs := g.occupants[p]
	for i, r := range refs {
		if r != ref {
			continue
		}

		refs = append(refs[:i], refs[i+1:]...)
		break
	}

	if len(refs) == 0 {
		delete(g.occupants, p)
		return
	}

	g.occupants[p] = refs
}

// FreeNear returns the free cell closest to p, searching rings of growing
// Chebyshev distance. It returns p if the grid is full.
func (g *Grid) FreeNear(p combat.Point) combat.Point {
	limit := g.Width
	if g.Height > limit {
		limit = g.Height
	}

	for r := 0; r <= limit; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				q := combat.Point{X: p.X + dx, Y: p.Y + dy}
				if p.Chebyshev(q) == r && g.Free(q) {
					return q
				}
			}
		}
	}

	return p
}

var directions = [8]combat.Point{
	{X: 0, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 0}, {X: 1, Y: 1},
	{X: 0, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: 0}, {X: -1, Y: -1},
}

// Neighbour returns the cell next to p in one of the eight directions,
// numbered clockwise from north.
func Neighbour(p combat.Point, direction int) combat.Point {
	d := directions[((direction%8)+8)%8]
	return combat.Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// DirectionOf returns the direction of the neighbouring cell to, or -1 if
// to is not a neighbour of from.
func DirectionOf(from, to combat.Point) int {
	d := combat.Point{X: to.X - from.X, Y: to.Y - from.Y}
	for i, dir := range directions {
		if dir == d {
			return i
		}
	}

	return -1
}

// StepToward returns the cell next to from that gets closest to to.
func StepToward(from, to combat.Point) combat.Point {
	return combat.Point{X: from.X + sign(to.X-from.X), Y: from.Y + sign(to.Y-from.Y)}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
